package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

type TipsView struct {
	CategoryID          string      `json:"categoryId"`
	CategoryName        string      `json:"categoryName"`
	CategoryDescription string      `json:"categoryDescription"`
	Tips                []model.Tip `json:"tips"`
	TotalTips           int         `json:"totalTips"`
}

type TipsSummary struct {
	CategoryID          string    `json:"categoryId"`
	CategoryName        string    `json:"categoryName"`
	CategoryDescription string    `json:"categoryDescription"`
	TipsCount           int       `json:"tipsCount"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

type QuickTipService struct {
	tips       store.QuickTips
	categories store.Categories
}

func NewQuickTipService(tips store.QuickTips, categories store.Categories) *QuickTipService {
	return &QuickTipService{tips: tips, categories: categories}
}

// ByCategory returns the active tips of a category, highest priority
// first. Tips with the same priority keep the order they were added in.
func (s *QuickTipService) ByCategory(ctx context.Context, categoryID string) (*TipsView, error) {
	c, err := s.category(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	view := &TipsView{
		CategoryID:          c.ID,
		CategoryName:        c.Name,
		CategoryDescription: c.Description,
		Tips:                []model.Tip{},
	}

	qt, err := s.tips.ByCategory(ctx, categoryID)
	if errors.Is(err, store.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	for _, t := range qt.Tips {
		if t.IsActive {
			view.Tips = append(view.Tips, t)
		}
	}

	slices.SortStableFunc(view.Tips, func(a, b model.Tip) int {
		return b.Priority - a.Priority
	})

	view.TotalTips = len(view.Tips)
	return view, nil
}

// Replace swaps every tip of a category for the given list
func (s *QuickTipService) Replace(ctx context.Context, categoryID string, in []model.TipInput) (*model.QuickTip, error) {
	if _, err := s.category(ctx, categoryID); err != nil {
		return nil, err
	}

	if len(in) == 0 {
		return nil, invalid("tips must be a non-empty list")
	}

	tips := make([]model.Tip, 0, len(in))
	for _, t := range in {
		tip, err := newTip(t)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}

	qt, err := s.tips.ReplaceTips(ctx, categoryID, tips)
	return qt, mapTipErr(err)
}

func (s *QuickTipService) AddTip(ctx context.Context, categoryID string, in model.TipInput) (*model.QuickTip, error) {
	if _, err := s.category(ctx, categoryID); err != nil {
		return nil, err
	}

	tip, err := newTip(in)
	if err != nil {
		return nil, err
	}

	qt, err := s.tips.AddTip(ctx, categoryID, tip)
	return qt, mapTipErr(err)
}

func (s *QuickTipService) UpdateTip(ctx context.Context, categoryID, tipID string, p model.TipPatch) (*model.QuickTip, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, invalid("title can't be empty")
	}

	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return nil, invalid("content can't be empty")
	}

	if p.Icon != nil && strings.TrimSpace(*p.Icon) == "" {
		return nil, invalid("icon can't be empty")
	}

	if p.Priority != nil {
		if err := validPriority(*p.Priority); err != nil {
			return nil, err
		}
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	qt, err := s.tips.UpdateTip(ctx, categoryID, tipID, p)
	return qt, mapTipErr(err)
}

func (s *QuickTipService) DeleteTip(ctx context.Context, categoryID, tipID string) error {
	_, err := s.tips.DeleteTip(ctx, categoryID, tipID)
	return mapTipErr(err)
}

// Summaries lists one entry per category that has tips, newest first
func (s *QuickTipService) Summaries(ctx context.Context) ([]TipsSummary, error) {
	all, err := s.tips.List(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	out := make([]TipsSummary, 0, len(all))
	for _, qt := range all {
		c, ok := byID[qt.CategoryID]
		if !ok {
			continue
		}

		active := 0
		for _, t := range qt.Tips {
			if t.IsActive {
				active++
			}
		}

		out = append(out, TipsSummary{
			CategoryID:          c.ID,
			CategoryName:        c.Name,
			CategoryDescription: c.Description,
			TipsCount:           active,
			LastUpdated:         qt.UpdatedAt,
		})
	}

	return out, nil
}

func (s *QuickTipService) category(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.categories.ByID(ctx, id)
	return c, mapStoreErr(err, "Category")
}

func newTip(in model.TipInput) (model.Tip, error) {
	t := model.Tip{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Icon:     model.DefaultTipIcon,
		Priority: model.DefaultTipPriority,
		IsActive: true,
	}

	if t.Title == "" || t.Content == "" {
		return t, invalid("each tip must have title and content")
	}

	if in.Icon != nil && strings.TrimSpace(*in.Icon) != "" {
		t.Icon = strings.TrimSpace(*in.Icon)
	}

	if in.Priority != nil {
		if err := validPriority(*in.Priority); err != nil {
			return t, err
		}
		t.Priority = *in.Priority
	}

	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}

	return t, nil
}

func validPriority(p int) error {
	if p < model.MinTipPriority || p > model.MaxTipPriority {
		return invalid("priority must be between %d and %d", model.MinTipPriority, model.MaxTipPriority)
	}

	return nil
}

func mapTipErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrTipNotFound):
		return &NotFoundError{Resource: "Tip"}
	}

	return mapStoreErr(err, "Quick tips")
}
