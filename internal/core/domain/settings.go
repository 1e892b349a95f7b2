package domain

import "fmt"

// Setting keys as stored in the configuration file.
const (
	SettingPreviewWidth    = "preview.width"
	SettingAnnotationSize  = "annotation.size"
	SettingAnnotationColor = "annotation.color"
	SettingExportFileName  = "export.file_name"
	SettingExportFont      = "export.font"
)

// PreviewSettings controls preview rendering.
type PreviewSettings struct {
	// Width is the target preview width in pixels.
	Width int
}

// AnnotationSettings holds defaults for new annotations.
type AnnotationSettings struct {
	Size  float64
	Color string
}

// ExportSettings controls the export pipeline.
type ExportSettings struct {
	// FileName is the suggested output file name.
	FileName string

	// Font is the standard font family used for every annotation.
	Font string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Preview    PreviewSettings
	Annotation AnnotationSettings
	Export     ExportSettings
}

// DefaultAppSettings returns the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Preview: PreviewSettings{
			Width: 220,
		},
		Annotation: AnnotationSettings{
			Size:  18,
			Color: "#000000",
		},
		Export: ExportSettings{
			FileName: DefaultExportFileName,
			Font:     "Helvetica",
		},
	}
}

// Validate checks that all settings are usable.
func (s *AppSettings) Validate() error {
	if s.Preview.Width <= 0 {
		return fmt.Errorf("%w: preview width must be positive", ErrInvalidInput)
	}
	if s.Annotation.Size <= 0 {
		return fmt.Errorf("%w: annotation size must be positive", ErrInvalidInput)
	}
	if _, err := ParseColor(s.Annotation.Color); err != nil {
		return err
	}
	if s.Export.FileName == "" {
		return fmt.Errorf("%w: export file name is empty", ErrInvalidInput)
	}
	if s.Export.Font == "" {
		return fmt.Errorf("%w: export font is empty", ErrInvalidInput)
	}
	return nil
}

// SettingKeys returns every recognised setting key.
func SettingKeys() []string {
	return []string{
		SettingPreviewWidth,
		SettingAnnotationSize,
		SettingAnnotationColor,
		SettingExportFileName,
		SettingExportFont,
	}
}
