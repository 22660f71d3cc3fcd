package store

import (
	"bitwise74/medflow-api/internal/model"
	"context"

	"gorm.io/gorm"
)

type Devices interface {
	Create(ctx context.Context, d *model.Device) error
	List(ctx context.Context) ([]model.Device, error)
	ByID(ctx context.Context, id string) (*model.Device, error)
	ByName(ctx context.Context, name string) ([]model.Device, error)
	ByCategory(ctx context.Context, category string) ([]model.Device, error)
	Update(ctx context.Context, id string, p model.DevicePatch) (*model.Device, error)
	Delete(ctx context.Context, id string) (*model.Device, error)
}

type DeviceStore struct {
	db *gorm.DB
}

func NewDeviceStore(db *gorm.DB) *DeviceStore {
	return &DeviceStore{db: db}
}

func (s *DeviceStore) Create(ctx context.Context, d *model.Device) error {
	return translate(s.db.WithContext(ctx).Create(d).Error)
}

func (s *DeviceStore) List(ctx context.Context) ([]model.Device, error) {
	return find[model.Device](ctx, s.db, "name asc", "")
}

func (s *DeviceStore) ByID(ctx context.Context, id string) (*model.Device, error) {
	return first[model.Device](ctx, s.db, "id = ?", id)
}

func (s *DeviceStore) ByName(ctx context.Context, name string) ([]model.Device, error) {
	return find[model.Device](ctx, s.db, "created_at asc", "name = ?", name)
}

func (s *DeviceStore) ByCategory(ctx context.Context, category string) ([]model.Device, error) {
	return find[model.Device](ctx, s.db, "name asc", "category = ?", category)
}

func (s *DeviceStore) Update(ctx context.Context, id string, p model.DevicePatch) (*model.Device, error) {
	return update[model.Device](ctx, s.db, p.Columns(), "id = ?", id)
}

func (s *DeviceStore) Delete(ctx context.Context, id string) (*model.Device, error) {
	return remove[model.Device](ctx, s.db, "id = ?", id)
}
