package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

type CategoryInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type CategoryDescription struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type CategoryService struct {
	categories store.Categories
	images     ImageStore
	// Devices of a deleted category are moved here
	fallback string
}

func NewCategoryService(categories store.Categories, images ImageStore, fallback string) *CategoryService {
	return &CategoryService{categories: categories, images: images, fallback: fallback}
}

// EnsureDefault creates the fallback category if it doesn't exist yet
func (s *CategoryService) EnsureDefault(ctx context.Context) error {
	_, err := s.categories.ByName(ctx, s.fallback)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	err = s.categories.Create(ctx, &model.Category{
		Name:        s.fallback,
		Description: "Devices without a more specific category",
	})
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}

	zap.L().Info("Created default category", zap.String("name", s.fallback))
	return nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput, img *Upload) (*model.Category, error) {
	c := &model.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}

	if err := requireFields(map[string]string{
		"name":        c.Name,
		"description": c.Description,
	}); err != nil {
		return nil, err
	}

	if err := s.nameFree(ctx, c.Name, ""); err != nil {
		return nil, err
	}

	if img != nil {
		url, err := putImage(ctx, s.images, "categories", img)
		if err != nil {
			return nil, err
		}
		c.Image = &url
	}

	if err := s.categories.Create(ctx, c); err != nil {
		dropImage(ctx, s.images, c.Image)
		return nil, mapStoreErr(err, "Category")
	}

	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.categories.ByID(ctx, id)
	return c, mapStoreErr(err, "Category")
}

func (s *CategoryService) DescriptionByName(ctx context.Context, name string) (*CategoryDescription, error) {
	c, err := s.categories.ByName(ctx, name)
	if err != nil {
		return nil, mapStoreErr(err, "Category")
	}

	return &CategoryDescription{ID: c.ID, Description: c.Description}, nil
}

// Update applies p. Renaming a category renames it on every device too.
func (s *CategoryService) Update(ctx context.Context, id string, p model.CategoryPatch, img *Upload) (*model.Category, error) {
	current, err := s.categories.ByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Category")
	}

	for name, v := range map[string]*string{"name": p.Name, "description": p.Description} {
		if v != nil {
			*v = strings.TrimSpace(*v)
			if *v == "" {
				return nil, invalid("%s can't be empty", name)
			}
		}
	}

	if p.Name != nil && *p.Name != current.Name {
		if current.Name == s.fallback {
			return nil, invalid("the default category can't be renamed")
		}

		if err := s.nameFree(ctx, *p.Name, current.ID); err != nil {
			return nil, err
		}
	}

	p.Image = nil
	if img != nil {
		url, err := putImage(ctx, s.images, "categories", img)
		if err != nil {
			return nil, err
		}
		p.Image = &url
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	updated, err := s.categories.Update(ctx, id, p)
	if err != nil {
		dropImage(ctx, s.images, p.Image)
		return nil, mapStoreErr(err, "Category")
	}

	if p.Image != nil {
		dropImage(ctx, s.images, current.Image)
	}

	return updated, nil
}

// Delete removes a category, moving its devices to the default category
// and dropping its quick tips. The image is removed on a best effort basis.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	current, err := s.categories.ByID(ctx, id)
	if err != nil {
		return mapStoreErr(err, "Category")
	}

	if current.Name == s.fallback {
		return invalid("the default category can't be deleted")
	}

	removed, err := s.categories.Delete(ctx, id, s.fallback)
	if err != nil {
		return mapStoreErr(err, "Category")
	}

	dropImage(ctx, s.images, removed.Image)
	return nil
}

func (s *CategoryService) nameFree(ctx context.Context, name, self string) error {
	found, err := s.categories.ByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case found.ID != self:
		return &ConflictError{Resource: "Category"}
	}

	return nil
}
