package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Notes interface {
	Create(ctx context.Context, n *model.Note) error
	// List returns notes of userID, or every note when userID is empty
	List(ctx context.Context, userID string) ([]model.Note, error)
	UpdateText(ctx context.Context, id, text string) (*model.Note, error)
	Delete(ctx context.Context, id string) (*model.Note, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore {
	return &NoteStore{db: db}
}

func (s *NoteStore) Create(ctx context.Context, n *model.Note) error {
	return translate(s.db.WithContext(ctx).Create(n).Error)
}

func (s *NoteStore) List(ctx context.Context, userID string) ([]model.Note, error) {
	if userID == "" {
		return find[model.Note](ctx, s.db, "created_at desc", "")
	}

	return find[model.Note](ctx, s.db, "created_at desc", "user_id = ?", userID)
}

func (s *NoteStore) UpdateText(ctx context.Context, id, text string) (*model.Note, error) {
	return update[model.Note](ctx, s.db, map[string]any{"text": text}, "id = ?", id)
}

func (s *NoteStore) Delete(ctx context.Context, id string) (*model.Note, error) {
	return remove[model.Note](ctx, s.db, "id = ?", id)
}

func (s *NoteStore) DeleteAll(ctx context.Context, userID string) (int64, error) {
	tx := s.db.WithContext(ctx)
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	} else {
		// gorm refuses unconditioned deletes
		tx = tx.Where("1 = 1")
	}

	r := tx.Delete(&model.Note{})
	return r.RowsAffected, translate(r.Error)
}
