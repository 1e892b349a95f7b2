package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

func readSourceFiles(paths []string) ([]domain.SourceFile, error) {
	files := make([]domain.SourceFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, domain.SourceFile{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// ingestAll ingests every file and fails on the first file that did not decode.
func ingestAll(ctx context.Context, s *Session, paths []string) error {
	files, err := readSourceFiles(paths)
	if err != nil {
		return err
	}
	for _, r := range s.Collection.IngestFiles(ctx, files) {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// rotateTo advances a page's rotation until it equals want.
func rotateTo(c driving.CollectionService, id string, want domain.Rotation) error {
	page, err := c.Page(id)
	if err != nil {
		return err
	}
	r := page.Rotation
	for i := 0; i < 4 && r != want; i++ {
		if r, err = c.Rotate(id); err != nil {
			return err
		}
	}
	if r != want {
		return fmt.Errorf("page %s stuck at rotation %d", id, r)
	}
	return nil
}

// setExcluded makes a page excluded or active regardless of its current state.
func setExcluded(c driving.CollectionService, id string, excluded bool) error {
	page, err := c.Page(id)
	if err != nil {
		return err
	}
	if page.Excluded != excluded {
		_, err = c.ToggleExclude(id)
	}
	return err
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
