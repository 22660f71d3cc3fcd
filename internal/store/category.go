package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Categories interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	ByID(ctx context.Context, id string) (*model.Category, error)
	ByName(ctx context.Context, name string) (*model.Category, error)
	// Update renames devices along with the category
	Update(ctx context.Context, id string, p model.CategoryPatch) (*model.Category, error)
	// Delete moves the category's devices to fallback and drops its quick tips
	Delete(ctx context.Context, id, fallback string) (*model.Category, error)
}

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, c *model.Category) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	return find[model.Category](ctx, s.db, "name asc", "")
}

func (s *CategoryStore) ByID(ctx context.Context, id string) (*model.Category, error) {
	return first[model.Category](ctx, s.db, "id = ?", id)
}

func (s *CategoryStore) ByName(ctx context.Context, name string) (*model.Category, error) {
	return first[model.Category](ctx, s.db, "name = ?", name)
}

func (s *CategoryStore) Update(ctx context.Context, id string, p model.CategoryPatch) (*model.Category, error) {
	var updated model.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old model.Category
		if err := tx.Where("id = ?", id).First(&old).Error; err != nil {
			return err
		}

		// Updates writes the new values back into old
		oldName := old.Name

		if cols := p.Columns(); len(cols) > 0 {
			if err := tx.Model(&old).Updates(cols).Error; err != nil {
				return err
			}
		}

		if p.Name != nil && *p.Name != oldName {
			err := tx.Model(&model.Device{}).
				Where("category = ?", oldName).
				Update("category", *p.Name).
				Error
			if err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &updated, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id, fallback string) (*model.Category, error) {
	var c model.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}

		err := tx.Model(&model.Device{}).
			Where("category = ?", c.Name).
			Update("category", fallback).
			Error
		if err != nil {
			return err
		}

		if err := deleteQuickTips(tx, c.ID); err != nil {
			return err
		}

		return tx.Delete(&model.Category{}, "id = ?", c.ID).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &c, nil
}
