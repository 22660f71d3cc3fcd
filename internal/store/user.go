package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type Users interface {
	Create(ctx context.Context, u *model.User) error
	List(ctx context.Context) ([]model.User, error)
	ByUID(ctx context.Context, uid string) (*model.User, error)
	Update(ctx context.Context, uid string, p model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, uid string) (*model.User, error)

	// ConsumeToken verifies the user and clears the token in one statement.
	// It reports false when no unverified user with a live matching token exists.
	ConsumeToken(ctx context.Context, uid, token string, now time.Time) (bool, error)
	// ReissueToken replaces the token of an unverified user
	ReissueToken(ctx context.Context, uid, token string, issued, expires time.Time) error
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)

	SetFCMToken(ctx context.Context, uid string, token *string, at time.Time) (*model.User, error)
	// FCMTokens lists push tokens of every user with the given role, or of
	// everyone when role is empty
	FCMTokens(ctx context.Context, role string) ([]string, error)
	PruneFCMToken(ctx context.Context, token string, at time.Time) (int64, error)
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	return find[model.User](ctx, s.db, "created_at desc", "")
}

func (s *UserStore) ByUID(ctx context.Context, uid string) (*model.User, error) {
	return first[model.User](ctx, s.db, "uid = ?", uid)
}

func (s *UserStore) Update(ctx context.Context, uid string, p model.UserPatch) (*model.User, error) {
	return update[model.User](ctx, s.db, p.Columns(), "uid = ?", uid)
}

func (s *UserStore) Delete(ctx context.Context, uid string) (*model.User, error) {
	return remove[model.User](ctx, s.db, "uid = ?", uid)
}

func (s *UserStore) ConsumeToken(ctx context.Context, uid, token string, now time.Time) (bool, error) {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ? AND verification_token = ? AND verified = ?", uid, token, false).
		Where("(token_expires_at IS NULL OR token_expires_at > ?)", now).
		Updates(map[string]any{
			"verified":           true,
			"verification_token": nil,
			"token_issued_at":    nil,
			"token_expires_at":   nil,
		})
	if r.Error != nil {
		return false, translate(r.Error)
	}

	return r.RowsAffected == 1, nil
}

func (s *UserStore) ReissueToken(ctx context.Context, uid, token string, issued, expires time.Time) error {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ? AND verified = ?", uid, false).
		Updates(map[string]any{
			"verification_token": token,
			"token_issued_at":    issued,
			"token_expires_at":   expires,
		})
	if r.Error != nil {
		return translate(r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *UserStore) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("verified = ? AND verification_token IS NOT NULL AND token_expires_at < ?", false, now).
		Updates(map[string]any{
			"verification_token": nil,
			"token_issued_at":    nil,
			"token_expires_at":   nil,
		})

	return r.RowsAffected, translate(r.Error)
}

func (s *UserStore) SetFCMToken(ctx context.Context, uid string, token *string, at time.Time) (*model.User, error) {
	return update[model.User](ctx, s.db, map[string]any{
		"fcm_token":        token,
		"token_updated_at": at,
	}, "uid = ?", uid)
}

func (s *UserStore) FCMTokens(ctx context.Context, role string) ([]string, error) {
	tokens := []string{}

	tx := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("fcm_token IS NOT NULL AND fcm_token <> ''")
	if role != "" {
		tx = tx.Where("role = ?", role)
	}

	if err := tx.Distinct().Pluck("fcm_token", &tokens).Error; err != nil {
		return nil, translate(err)
	}

	return tokens, nil
}

func (s *UserStore) PruneFCMToken(ctx context.Context, token string, at time.Time) (int64, error) {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("fcm_token = ?", token).
		Updates(map[string]any{
			"fcm_token":        nil,
			"token_updated_at": at,
		})

	return r.RowsAffected, translate(r.Error)
}
