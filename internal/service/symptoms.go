package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"errors"
	"strings"
)

type SymptomInput struct {
	Name         string `json:"name" form:"name"`
	Description  string `json:"description" form:"description"`
	ResourceLink string `json:"resourceLink" form:"resourceLink"`
}

type SymptomService struct {
	symptoms store.Symptoms
	images   ImageStore
}

func NewSymptomService(symptoms store.Symptoms, images ImageStore) *SymptomService {
	return &SymptomService{symptoms: symptoms, images: images}
}

// Create stores a new symptom with an optional image. Names are unique.
func (s *SymptomService) Create(ctx context.Context, in SymptomInput, img *Upload) (*model.Symptom, error) {
	sym := &model.Symptom{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		ResourceLink: strings.TrimSpace(in.ResourceLink),
	}

	if err := requireFields(map[string]string{
		"name":         sym.Name,
		"description":  sym.Description,
		"resourceLink": sym.ResourceLink,
	}); err != nil {
		return nil, err
	}

	if err := s.nameFree(ctx, sym.Name, ""); err != nil {
		return nil, err
	}

	if img != nil {
		url, err := putImage(ctx, s.images, "symptoms", img)
		if err != nil {
			return nil, err
		}
		sym.Image = &url
	}

	if err := s.symptoms.Create(ctx, sym); err != nil {
		dropImage(ctx, s.images, sym.Image)
		return nil, mapStoreErr(err, "Symptom")
	}

	return sym, nil
}

func (s *SymptomService) List(ctx context.Context) ([]model.Symptom, error) {
	return s.symptoms.List(ctx)
}

func (s *SymptomService) Get(ctx context.Context, id string) (*model.Symptom, error) {
	sym, err := s.symptoms.ByID(ctx, id)
	return sym, mapStoreErr(err, "Symptom")
}

func (s *SymptomService) ByName(ctx context.Context, name string) (*model.Symptom, error) {
	sym, err := s.symptoms.ByName(ctx, name)
	return sym, mapStoreErr(err, "Symptom")
}

// Update applies p and, when img is set, swaps the stored image. The old
// image is only removed once the record points at the new one.
func (s *SymptomService) Update(ctx context.Context, id string, p model.SymptomPatch, img *Upload) (*model.Symptom, error) {
	current, err := s.symptoms.ByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "Symptom")
	}

	for name, v := range map[string]*string{
		"name":         p.Name,
		"description":  p.Description,
		"resourceLink": p.ResourceLink,
	} {
		if v != nil {
			*v = strings.TrimSpace(*v)
			if *v == "" {
				return nil, invalid("%s can't be empty", name)
			}
		}
	}

	if p.Name != nil && *p.Name != current.Name {
		if err := s.nameFree(ctx, *p.Name, current.ID); err != nil {
			return nil, err
		}
	}

	p.Image = nil
	if img != nil {
		url, err := putImage(ctx, s.images, "symptoms", img)
		if err != nil {
			return nil, err
		}
		p.Image = &url
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	updated, err := s.symptoms.Update(ctx, id, p)
	if err != nil {
		dropImage(ctx, s.images, p.Image)
		return nil, mapStoreErr(err, "Symptom")
	}

	if p.Image != nil {
		dropImage(ctx, s.images, current.Image)
	}

	return updated, nil
}

// Delete removes the symptom and then tries to remove its image
func (s *SymptomService) Delete(ctx context.Context, id string) error {
	removed, err := s.symptoms.Delete(ctx, id)
	if err != nil {
		return mapStoreErr(err, "Symptom")
	}

	dropImage(ctx, s.images, removed.Image)
	return nil
}

func (s *SymptomService) nameFree(ctx context.Context, name, self string) error {
	found, err := s.symptoms.ByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case found.ID != self:
		return &ConflictError{Resource: "Symptom"}
	}

	return nil
}
