package services

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/metadata"
)

// SettingsService persists display preferences locally.
type SettingsService interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error
}

type settingsService struct {
	metadata metadata.Repository
}

func NewSettingsService(m metadata.Repository) SettingsService {
	return &settingsService{metadata: m}
}

// DarkMode is false unless "true" was stored.
func (s *settingsService) DarkMode(ctx context.Context) (bool, error) {
	v, ok, err := s.metadata.Get(ctx, metadata.KeyDarkMode)
	if err != nil || !ok {
		return false, err
	}
	on, _ := strconv.ParseBool(v)
	return on, nil
}

func (s *settingsService) SetDarkMode(ctx context.Context, on bool) error {
	return s.metadata.Set(ctx, metadata.KeyDarkMode, strconv.FormatBool(on))
}
