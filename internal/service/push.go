package service

import (
	"bitwise74/medflow-api/internal/metrics"
	"bitwise74/medflow-api/internal/store"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// FCM refuses multicast messages with more tokens than this
const multicastLimit = 500

var ErrNoPushToken = errors.New("user has no registered device")

type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type PushResult struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
	PrunedCount  int `json:"prunedCount"`
}

// PushSender talks to the push provider. Every call is a single attempt.
type PushSender interface {
	Send(ctx context.Context, token string, n Notification) error
	// SendMulticast returns one entry per token, nil meaning delivered.
	// The error is set only when the whole batch failed.
	SendMulticast(ctx context.Context, tokens []string, n Notification) ([]error, error)
	// IsTokenInvalid reports whether the provider rejected the token for
	// good (app uninstalled, malformed token, wrong sender)
	IsTokenInvalid(err error) bool
}

type Notifier struct {
	users  store.Users
	sender PushSender
	now    func() time.Time
}

func NewNotifier(users store.Users, sender PushSender) *Notifier {
	return &Notifier{
		users:  users,
		sender: sender,
		now:    time.Now,
	}
}

func (p *Notifier) NotifyUser(ctx context.Context, uid string, n Notification) (*PushResult, error) {
	if err := validateNotification(n); err != nil {
		return nil, err
	}

	u, err := p.users.ByUID(ctx, uid)
	if err != nil {
		return nil, mapStoreErr(err, "User")
	}

	if u.FCMToken == nil || *u.FCMToken == "" {
		return nil, &ValidationError{Msg: ErrNoPushToken.Error()}
	}

	res := &PushResult{}

	err = p.sender.Send(ctx, *u.FCMToken, n)
	p.record(ctx, res, *u.FCMToken, err)

	return res, nil
}

// NotifyRole pushes to every user of a role that has a device token
func (p *Notifier) NotifyRole(ctx context.Context, role string, n Notification) (*PushResult, error) {
	if err := validateNotification(n); err != nil {
		return nil, err
	}

	tokens, err := p.users.FCMTokens(ctx, role)
	if err != nil {
		return nil, err
	}

	res := &PushResult{}

	for start := 0; start < len(tokens); start += multicastLimit {
		batch := tokens[start:min(start+multicastLimit, len(tokens))]

		errs, err := p.sender.SendMulticast(ctx, batch, n)
		if err != nil {
			res.FailureCount += len(batch)
			metrics.PushFailed.Add(float64(len(batch)))
			zap.L().Error("Multicast batch failed", zap.Error(err), zap.Int("tokens", len(batch)))
			continue
		}

		for i, token := range batch {
			var sendErr error
			if i < len(errs) {
				sendErr = errs[i]
			}
			p.record(ctx, res, token, sendErr)
		}
	}

	return res, nil
}

func (p *Notifier) Broadcast(ctx context.Context, n Notification) (*PushResult, error) {
	return p.NotifyRole(ctx, "", n)
}

// record counts the outcome for one token and prunes it when the provider
// says it will never work again
func (p *Notifier) record(ctx context.Context, res *PushResult, token string, err error) {
	if err == nil {
		res.SuccessCount++
		metrics.PushSent.Inc()
		return
	}

	res.FailureCount++
	metrics.PushFailed.Inc()

	if !p.sender.IsTokenInvalid(err) {
		zap.L().Warn("Push delivery failed", zap.Error(err))
		return
	}

	n, perr := p.users.PruneFCMToken(ctx, token, p.now().UTC())
	if perr != nil {
		zap.L().Error("Failed to prune invalid push token", zap.Error(perr))
		return
	}

	if n > 0 {
		res.PrunedCount++
		metrics.PushPruned.Inc()
		zap.L().Debug("Pruned invalid push token", zap.Int64("users", n))
	}
}

// notifyQuietly is used by workflows where a push is a side effect
func notifyQuietly(what string, fn func() (*PushResult, error)) {
	res, err := fn()
	if err != nil {
		zap.L().Warn("Push notification skipped", zap.String("trigger", what), zap.Error(err))
		return
	}

	zap.L().Debug("Push notification sent",
		zap.String("trigger", what),
		zap.Int("success", res.SuccessCount),
		zap.Int("failure", res.FailureCount),
		zap.Int("pruned", res.PrunedCount),
	)
}

func validateNotification(n Notification) error {
	if n.Title == "" && n.Body == "" {
		return invalid("notification needs a title or a body")
	}

	return nil
}
