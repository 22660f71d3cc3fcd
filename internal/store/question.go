package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Questions interface {
	Create(ctx context.Context, q *model.Question) error
	List(ctx context.Context) ([]model.Question, error)
	ByStudent(ctx context.Context, studentID string) ([]model.Question, error)
	ByID(ctx context.Context, id string) (*model.Question, error)
	Update(ctx context.Context, id string, p model.QuestionPatch) (*model.Question, error)
	Delete(ctx context.Context, id string) (*model.Question, error)
}

type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) Create(ctx context.Context, q *model.Question) error {
	return translate(s.db.WithContext(ctx).Create(q).Error)
}

func (s *QuestionStore) List(ctx context.Context) ([]model.Question, error) {
	return find[model.Question](ctx, s.db, "timestamp desc", "")
}

func (s *QuestionStore) ByStudent(ctx context.Context, studentID string) ([]model.Question, error) {
	return find[model.Question](ctx, s.db, "timestamp desc", "student_id = ?", studentID)
}

func (s *QuestionStore) ByID(ctx context.Context, id string) (*model.Question, error) {
	return first[model.Question](ctx, s.db, "id = ?", id)
}

func (s *QuestionStore) Update(ctx context.Context, id string, p model.QuestionPatch) (*model.Question, error) {
	return update[model.Question](ctx, s.db, p.Columns(), "id = ?", id)
}

func (s *QuestionStore) Delete(ctx context.Context, id string) (*model.Question, error) {
	return remove[model.Question](ctx, s.db, "id = ?", id)
}
