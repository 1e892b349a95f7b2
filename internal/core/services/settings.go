package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driven"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService reads and writes application settings through a ConfigStore.
// Missing or unusable stored values fall back to the defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Preview: domain.PreviewSettings{
			Width: s.getInt(domain.SettingPreviewWidth, defaults.Preview.Width),
		},
		Annotation: domain.AnnotationSettings{
			Size:  s.getFloat(domain.SettingAnnotationSize, defaults.Annotation.Size),
			Color: s.getColor(defaults.Annotation.Color),
		},
		Export: domain.ExportSettings{
			FileName: s.getString(domain.SettingExportFileName, defaults.Export.FileName),
			Font:     s.getString(domain.SettingExportFont, defaults.Export.Font),
		},
	}, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{domain.SettingPreviewWidth, settings.Preview.Width},
		{domain.SettingAnnotationSize, settings.Annotation.Size},
		{domain.SettingAnnotationColor, settings.Annotation.Color},
		{domain.SettingExportFileName, settings.Export.FileName},
		{domain.SettingExportFont, settings.Export.Font},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates one setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case domain.SettingPreviewWidth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Preview.Width = n
	case domain.SettingAnnotationSize:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Annotation.Size = f
	case domain.SettingAnnotationColor:
		c, err := domain.ParseColor(value)
		if err != nil {
			return err
		}
		settings.Annotation.Color = c.Hex()
	case domain.SettingExportFileName:
		settings.Export.FileName = value
	case domain.SettingExportFont:
		settings.Export.Font = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// TOML decodes 18 as int64 and 18.5 as float64, so both are accepted.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	}
	if f <= 0 {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getColor(defaultVal string) string {
	val := s.configStore.GetString(domain.SettingAnnotationColor)
	if _, err := domain.ParseColor(val); val == "" || err != nil {
		return defaultVal
	}
	return val
}
