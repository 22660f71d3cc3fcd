// Package store wraps gorm access for every collection behind one
// interface per entity
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm errors onto the store's own sentinel errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}

	return err
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var v T
	if err := db.WithContext(ctx).Where(query, args...).First(&v).Error; err != nil {
		return nil, translate(err)
	}

	return &v, nil
}

func find[T any](ctx context.Context, db *gorm.DB, order string, query string, args ...any) ([]T, error) {
	out := []T{}

	tx := db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if order != "" {
		tx = tx.Order(order)
	}

	if err := tx.Find(&out).Error; err != nil {
		return nil, translate(err)
	}

	return out, nil
}

// update applies cols to the single row matching query and returns it
// as stored afterwards
func update[T any](ctx context.Context, db *gorm.DB, cols map[string]any, query string, args ...any) (*T, error) {
	if len(cols) > 0 {
		r := db.WithContext(ctx).Model(new(T)).Where(query, args...).Updates(cols)
		if r.Error != nil {
			return nil, translate(r.Error)
		}

		if r.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return first[T](ctx, db, query, args...)
}

// remove deletes the row matching query and returns it as it was
func remove[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var v T

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(query, args...).First(&v).Error; err != nil {
			return err
		}

		return tx.Where(query, args...).Delete(new(T)).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &v, nil
}
