package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"bitwise74/medflow-api/validators"
	"context"
	"strings"
	"time"
)

type UserService struct {
	users store.Users
	now   func() time.Time
}

func NewUserService(users store.Users) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.users.ByUID(ctx, uid)
	return u, mapStoreErr(err, "User")
}

func (s *UserService) Update(ctx context.Context, uid string, p model.UserPatch) (*model.User, error) {
	if p.Email != nil {
		if err := validators.EmailValidator(strings.TrimSpace(*p.Email)); err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, invalid("name can't be empty")
	}

	if p.Role != nil {
		if err := validators.RoleValidator(*p.Role); err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	u, err := s.users.Update(ctx, uid, p)
	return u, mapStoreErr(err, "User")
}

func (s *UserService) Delete(ctx context.Context, uid string) error {
	_, err := s.users.Delete(ctx, uid)
	return mapStoreErr(err, "User")
}

// SaveFCMToken registers the device a user receives pushes on
func (s *UserService) SaveFCMToken(ctx context.Context, uid, token string) (*model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid("fcmToken is required")
	}

	u, err := s.users.SetFCMToken(ctx, uid, &token, s.now().UTC())
	return u, mapStoreErr(err, "User")
}

func (s *UserService) ClearFCMToken(ctx context.Context, uid string) error {
	_, err := s.users.SetFCMToken(ctx, uid, nil, s.now().UTC())
	return mapStoreErr(err, "User")
}
