package service

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/store"
	"context"
	"slices"
	"strings"
)

type DeviceInput struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Reference      string `json:"reference"`
	LinkOfResource string `json:"linkOfResource"`
}

type DeviceService struct {
	devices store.Devices
}

func NewDeviceService(devices store.Devices) *DeviceService {
	return &DeviceService{devices: devices}
}

func (s *DeviceService) Create(ctx context.Context, in DeviceInput) (*model.Device, error) {
	d := &model.Device{
		Name:           strings.TrimSpace(in.Name),
		Category:       strings.TrimSpace(in.Category),
		Description:    strings.TrimSpace(in.Description),
		Reference:      strings.TrimSpace(in.Reference),
		LinkOfResource: strings.TrimSpace(in.LinkOfResource),
	}

	if err := requireFields(map[string]string{
		"name":           d.Name,
		"category":       d.Category,
		"description":    d.Description,
		"reference":      d.Reference,
		"linkOfResource": d.LinkOfResource,
	}); err != nil {
		return nil, err
	}

	if err := s.devices.Create(ctx, d); err != nil {
		return nil, mapStoreErr(err, "Device")
	}

	return d, nil
}

func (s *DeviceService) List(ctx context.Context) ([]model.Device, error) {
	return s.devices.List(ctx)
}

func (s *DeviceService) Get(ctx context.Context, id string) (*model.Device, error) {
	d, err := s.devices.ByID(ctx, id)
	return d, mapStoreErr(err, "Device")
}

func (s *DeviceService) ByName(ctx context.Context, name string) ([]model.Device, error) {
	out, err := s.devices.ByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, &NotFoundError{Resource: "Device"}
	}

	return out, nil
}

func (s *DeviceService) ByCategory(ctx context.Context, category string) ([]model.Device, error) {
	return s.devices.ByCategory(ctx, category)
}

func (s *DeviceService) Update(ctx context.Context, id string, p model.DevicePatch) (*model.Device, error) {
	for name, v := range map[string]*string{
		"name":           p.Name,
		"category":       p.Category,
		"description":    p.Description,
		"reference":      p.Reference,
		"linkOfResource": p.LinkOfResource,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, invalid("%s can't be empty", name)
		}
	}

	if len(p.Columns()) == 0 {
		return nil, invalid("nothing to update")
	}

	d, err := s.devices.Update(ctx, id, p)
	return d, mapStoreErr(err, "Device")
}

func (s *DeviceService) Delete(ctx context.Context, id string) error {
	_, err := s.devices.Delete(ctx, id)
	return mapStoreErr(err, "Device")
}

// requireFields reports the first empty field in a stable order
func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)
	return invalid("%s is required", strings.Join(missing, ", "))
}
