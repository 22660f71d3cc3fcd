package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrTipNotFound = fmt.Errorf("tip %w", ErrNotFound)

type QuickTips interface {
	// ByCategory returns the category's tips in insertion order
	ByCategory(ctx context.Context, categoryID string) (*model.QuickTip, error)
	List(ctx context.Context) ([]model.QuickTip, error)
	ReplaceTips(ctx context.Context, categoryID string, tips []model.Tip) (*model.QuickTip, error)
	AddTip(ctx context.Context, categoryID string, tip model.Tip) (*model.QuickTip, error)
	UpdateTip(ctx context.Context, categoryID, tipID string, p model.TipPatch) (*model.QuickTip, error)
	DeleteTip(ctx context.Context, categoryID, tipID string) (*model.QuickTip, error)
}

type QuickTipStore struct {
	db *gorm.DB
}

func NewQuickTipStore(db *gorm.DB) *QuickTipStore {
	return &QuickTipStore{db: db}
}

func preloadTips(db *gorm.DB) *gorm.DB {
	return db.Preload("Tips", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func loadQuickTip(tx *gorm.DB, categoryID string) (*model.QuickTip, error) {
	var qt model.QuickTip
	if err := preloadTips(tx).Where("category_id = ?", categoryID).First(&qt).Error; err != nil {
		return nil, err
	}

	return &qt, nil
}

func (s *QuickTipStore) ByCategory(ctx context.Context, categoryID string) (*model.QuickTip, error) {
	qt, err := loadQuickTip(s.db.WithContext(ctx), categoryID)
	return qt, translate(err)
}

func (s *QuickTipStore) List(ctx context.Context) ([]model.QuickTip, error) {
	out := []model.QuickTip{}
	if err := preloadTips(s.db.WithContext(ctx)).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, translate(err)
	}

	return out, nil
}

func (s *QuickTipStore) ReplaceTips(ctx context.Context, categoryID string, tips []model.Tip) (*model.QuickTip, error) {
	return s.mutate(ctx, categoryID, true, func(tx *gorm.DB, qt *model.QuickTip) error {
		if err := tx.Where("quick_tip_id = ?", qt.ID).Delete(&model.Tip{}).Error; err != nil {
			return err
		}

		if len(tips) == 0 {
			return nil
		}

		for i := range tips {
			tips[i].ID = ""
			tips[i].QuickTipID = qt.ID
			tips[i].Position = i
		}

		return tx.Create(&tips).Error
	})
}

func (s *QuickTipStore) AddTip(ctx context.Context, categoryID string, tip model.Tip) (*model.QuickTip, error) {
	return s.mutate(ctx, categoryID, true, func(tx *gorm.DB, qt *model.QuickTip) error {
		var last int
		err := tx.Model(&model.Tip{}).
			Where("quick_tip_id = ?", qt.ID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).
			Error
		if err != nil {
			return err
		}

		tip.ID = ""
		tip.QuickTipID = qt.ID
		tip.Position = last + 1

		return tx.Create(&tip).Error
	})
}

func (s *QuickTipStore) UpdateTip(ctx context.Context, categoryID, tipID string, p model.TipPatch) (*model.QuickTip, error) {
	return s.mutate(ctx, categoryID, false, func(tx *gorm.DB, qt *model.QuickTip) error {
		var tip model.Tip
		if err := tx.Where("id = ? AND quick_tip_id = ?", tipID, qt.ID).First(&tip).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTipNotFound
			}
			return err
		}

		cols := p.Columns()
		if len(cols) == 0 {
			return nil
		}

		return tx.Model(&tip).Updates(cols).Error
	})
}

func (s *QuickTipStore) DeleteTip(ctx context.Context, categoryID, tipID string) (*model.QuickTip, error) {
	return s.mutate(ctx, categoryID, false, func(tx *gorm.DB, qt *model.QuickTip) error {
		r := tx.Where("id = ? AND quick_tip_id = ?", tipID, qt.ID).Delete(&model.Tip{})
		if r.Error != nil {
			return r.Error
		}

		if r.RowsAffected == 0 {
			return ErrTipNotFound
		}

		return nil
	})
}

// mutate runs fn against the category's quick tip document inside a
// transaction, creating the document first when create is set, and
// returns the document as stored afterwards
func (s *QuickTipStore) mutate(ctx context.Context, categoryID string, create bool, fn func(tx *gorm.DB, qt *model.QuickTip) error) (*model.QuickTip, error) {
	var out *model.QuickTip

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var qt model.QuickTip

		err := tx.Where("category_id = ?", categoryID).First(&qt).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound) && create:
			qt = model.QuickTip{CategoryID: categoryID}
			if err := tx.Create(&qt).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		if err := fn(tx, &qt); err != nil {
			return err
		}

		if err := tx.Model(&qt).Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		out, err = loadQuickTip(tx, categoryID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrTipNotFound) {
			return nil, ErrTipNotFound
		}
		return nil, translate(err)
	}

	return out, nil
}

func deleteQuickTips(tx *gorm.DB, categoryID string) error {
	err := tx.Where("quick_tip_id IN (?)",
		tx.Model(&model.QuickTip{}).Select("id").Where("category_id = ?", categoryID),
	).Delete(&model.Tip{}).Error
	if err != nil {
		return err
	}

	return tx.Where("category_id = ?", categoryID).Delete(&model.QuickTip{}).Error
}
