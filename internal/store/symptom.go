package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Symptoms interface {
	Create(ctx context.Context, s *model.Symptom) error
	List(ctx context.Context) ([]model.Symptom, error)
	ByID(ctx context.Context, id string) (*model.Symptom, error)
	ByName(ctx context.Context, name string) (*model.Symptom, error)
	Update(ctx context.Context, id string, p model.SymptomPatch) (*model.Symptom, error)
	Delete(ctx context.Context, id string) (*model.Symptom, error)
}

type SymptomStore struct {
	db *gorm.DB
}

func NewSymptomStore(db *gorm.DB) *SymptomStore {
	return &SymptomStore{db: db}
}

func (s *SymptomStore) Create(ctx context.Context, sym *model.Symptom) error {
	return translate(s.db.WithContext(ctx).Create(sym).Error)
}

func (s *SymptomStore) List(ctx context.Context) ([]model.Symptom, error) {
	return find[model.Symptom](ctx, s.db, "name asc", "")
}

func (s *SymptomStore) ByID(ctx context.Context, id string) (*model.Symptom, error) {
	return first[model.Symptom](ctx, s.db, "id = ?", id)
}

func (s *SymptomStore) ByName(ctx context.Context, name string) (*model.Symptom, error) {
	return first[model.Symptom](ctx, s.db, "name = ?", name)
}

func (s *SymptomStore) Update(ctx context.Context, id string, p model.SymptomPatch) (*model.Symptom, error) {
	return update[model.Symptom](ctx, s.db, p.Columns(), "id = ?", id)
}

func (s *SymptomStore) Delete(ctx context.Context, id string) (*model.Symptom, error) {
	return remove[model.Symptom](ctx, s.db, "id = ?", id)
}
