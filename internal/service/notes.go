package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"strings"
)

type NoteService struct {
	notes store.Notes
}

func NewNoteService(notes store.Notes) *NoteService {
	return &NoteService{notes: notes}
}

// List returns every note, or only the notes of userID when set
func (s *NoteService) List(ctx context.Context, userID string) ([]model.Note, error) {
	return s.notes.List(ctx, userID)
}

func (s *NoteService) Create(ctx context.Context, userID, text string) (*model.Note, error) {
	n := &model.Note{UserID: strings.TrimSpace(userID), Text: strings.TrimSpace(text)}

	if err := requireFields(map[string]string{"userId": n.UserID, "text": n.Text}); err != nil {
		return nil, err
	}

	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *NoteService) Update(ctx context.Context, id, text string) (*model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text is required")
	}

	n, err := s.notes.UpdateText(ctx, id, text)
	return n, mapStoreErr(err, "Note")
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	_, err := s.notes.Delete(ctx, id)
	return mapStoreErr(err, "Note")
}

func (s *NoteService) DeleteAll(ctx context.Context, userID string) (int64, error) {
	return s.notes.DeleteAll(ctx, userID)
}
