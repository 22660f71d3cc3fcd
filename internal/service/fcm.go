package service

import (
	"bitwise74/medflow-api/config"
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var (
	ErrPushDisabled     = errors.New("push notifications are not configured")
	ErrIdentityDisabled = errors.New("identity verification is not configured")
)

// NewFirebase returns nil without an error when firebase isn't configured
func NewFirebase(ctx context.Context, c *config.Config) (*firebase.App, error) {
	if c.Firebase.ProjectID == "" && c.Firebase.CredentialsFile == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if c.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: c.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase, %w", err)
	}

	return app, nil
}

type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(ctx context.Context, app *firebase.App) (*FCMSender, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client, %w", err)
	}

	return &FCMSender{client: client}, nil
}

func (f *FCMSender) Send(ctx context.Context, token string, n Notification) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	})

	return err
}

func (f *FCMSender) SendMulticast(ctx context.Context, tokens []string, n Notification) ([]error, error) {
	br, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	})
	if err != nil {
		return nil, err
	}

	errs := make([]error, len(tokens))
	for i, r := range br.Responses {
		if i < len(errs) && !r.Success {
			errs[i] = r.Error
		}
	}

	return errs, nil
}

func (f *FCMSender) IsTokenInvalid(err error) bool {
	return messaging.IsUnregistered(err) ||
		messaging.IsInvalidArgument(err) ||
		messaging.IsSenderIDMismatch(err)
}

// NoopSender stands in for FCM when no project is configured
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, Notification) error {
	zap.L().Warn("Dropping push notification, FCM is not configured")
	return ErrPushDisabled
}

func (NoopSender) SendMulticast(_ context.Context, tokens []string, _ Notification) ([]error, error) {
	zap.L().Warn("Dropping push notification, FCM is not configured", zap.Int("tokens", len(tokens)))
	return nil, ErrPushDisabled
}

func (NoopSender) IsTokenInvalid(error) bool { return false }

// IdentityVerifier resolves an identity provider ID token to a uid
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

type FirebaseIdentity struct {
	client *auth.Client
}

func NewFirebaseIdentity(ctx context.Context, app *firebase.App) (*FirebaseIdentity, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client, %w", err)
	}

	return &FirebaseIdentity{client: client}, nil
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	t, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return t.UID, nil
}

type NoopIdentity struct{}

func (NoopIdentity) VerifyIDToken(context.Context, string) (string, error) {
	return "", ErrIdentityDisabled
}
