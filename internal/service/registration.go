package service

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/metrics"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"bitwise74/medflow-api/pkg/security"
	"bitwise74/medflow-api/validators"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Profile struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Registration drives the sign up -> admin approval -> login flow
type Registration struct {
	users    store.Users
	mail     Mailer
	identity IdentityVerifier
	c        *config.Config
	now      func() time.Time
}

func NewRegistration(users store.Users, mail Mailer, identity IdentityVerifier, c *config.Config) *Registration {
	return &Registration{
		users:    users,
		mail:     mail,
		identity: identity,
		c:        c,
		now:      time.Now,
	}
}

func (p *Profile) normalize() error {
	p.UID = strings.TrimSpace(p.UID)
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)

	if p.UID == "" {
		return invalid("uid is required")
	}

	if err := validators.EmailValidator(p.Email); err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	if p.Name == "" {
		return invalid("name is required")
	}

	if p.Role == "" {
		p.Role = model.RoleStudent
	}

	if err := validators.RoleValidator(p.Role); err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	return nil
}

// CreateOrGet registers a new unverified user and asks the admin to approve
// it. When the uid is already known the stored user is returned as is and
// created is false.
func (r *Registration) CreateOrGet(ctx context.Context, p Profile) (u *model.User, created bool, err error) {
	if err := p.normalize(); err != nil {
		return nil, false, err
	}

	existing, err := r.users.ByUID(ctx, p.UID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	tok, err := security.MakeVerificationToken(r.now(), r.c.Verification.TokenTTL)
	if err != nil {
		return nil, false, err
	}

	u = &model.User{
		UID:               p.UID,
		Email:             p.Email,
		Name:              p.Name,
		Role:              p.Role,
		Verified:          false,
		VerificationToken: &tok.Value,
		TokenIssuedAt:     &tok.IssuedAt,
		TokenExpiresAt:    &tok.ExpiresAt,
	}

	if err := r.users.Create(ctx, u); err != nil {
		// Lost a race against a concurrent registration of the same uid
		if errors.Is(err, store.ErrDuplicate) {
			winner, err := r.users.ByUID(ctx, p.UID)
			if err != nil {
				return nil, false, err
			}

			return winner, false, nil
		}

		return nil, false, err
	}

	zap.L().Info("User registered", zap.String("uid", u.UID), zap.String("role", u.Role))

	r.sendApproval(u, tok)

	return u, true, nil
}

// Verify consumes an approval link. Every failure collapses into
// ErrInvalidVerification so callers can't tell unknown users from bad tokens.
func (r *Registration) Verify(ctx context.Context, uid, token string) (*model.User, error) {
	if uid == "" || token == "" {
		metrics.Verifications.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidVerification
	}

	u, err := r.users.ByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.Verifications.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidVerification
		}

		return nil, err
	}

	if !security.TokensEqual(u.VerificationToken, token) {
		metrics.Verifications.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidVerification
	}

	// The conditional update is what makes the token single use, the
	// comparison above only avoids leaking timing information
	ok, err := r.users.ConsumeToken(ctx, uid, token, r.now().UTC())
	if err != nil {
		return nil, err
	}

	if !ok {
		metrics.Verifications.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidVerification
	}

	metrics.Verifications.WithLabelValues("verified").Inc()

	u, err = r.users.ByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	subject, body := confirmationMail(u.Name)
	sendMail(r.mail, "confirmation", u.Email, subject, body)

	return u, nil
}

// ResendVerification issues a fresh token for an unverified user and mails
// the admin again
func (r *Registration) ResendVerification(ctx context.Context, uid string) error {
	u, err := r.users.ByUID(ctx, uid)
	if err != nil {
		return mapStoreErr(err, "User")
	}

	if u.Verified {
		return invalid("user is already verified")
	}

	now := r.now().UTC()

	if u.TokenIssuedAt != nil && now.Sub(*u.TokenIssuedAt) < r.c.Verification.ResendCooldown {
		return ErrCooldown
	}

	tok, err := security.MakeVerificationToken(now, r.c.Verification.TokenTTL)
	if err != nil {
		return err
	}

	if err := r.users.ReissueToken(ctx, uid, tok.Value, tok.IssuedAt, tok.ExpiresAt); err != nil {
		// Verified in the meantime
		if errors.Is(err, store.ErrNotFound) {
			return invalid("user is already verified")
		}

		return err
	}

	r.sendApproval(u, tok)

	return nil
}

func (r *Registration) GetRole(ctx context.Context, uid string) (string, error) {
	u, err := r.users.ByUID(ctx, uid)
	if err != nil {
		return "", mapStoreErr(err, "User")
	}

	return u.Role, nil
}

// IssueSession trades an identity provider ID token for an API session.
// Only approved users get one.
func (r *Registration) IssueSession(ctx context.Context, idToken string) (*Session, error) {
	if idToken == "" {
		return nil, invalid("idToken is required")
	}

	uid, err := r.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		zap.L().Debug("Rejected identity token", zap.Error(err))
		return nil, ErrUnauthorized
	}

	u, err := r.users.ByUID(ctx, uid)
	if err != nil {
		return nil, mapStoreErr(err, "User")
	}

	if !u.Verified {
		return nil, ErrNotVerified
	}

	now := r.now()

	token, err := security.SignSession(r.c.JWT.Secret, u.UID, u.Role, now, r.c.JWT.TTL)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		ExpiresAt: now.Add(r.c.JWT.TTL),
		User:      u,
	}, nil
}

func (r *Registration) sendApproval(u *model.User, tok *security.VerificationToken) {
	link := approvalLink(r.c.BaseURL(), u.UID, tok.Value)
	subject, body := approvalMail(u.Name, u.Email, u.Role, link, int(r.c.Verification.TokenTTL.Hours()))

	sendMail(r.mail, "approval", r.c.Mail.AdminAddress, subject, body)
}
