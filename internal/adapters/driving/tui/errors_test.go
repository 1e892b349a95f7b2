package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingCollectionService,
		ErrMissingPreviewService,
		ErrMissingExportService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingCollectionService.Error(), "collection service")
	assert.Contains(t, ErrMissingPreviewService.Error(), "preview service")
	assert.Contains(t, ErrMissingExportService.Error(), "export service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
