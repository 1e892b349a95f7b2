package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pagedeck/internal/core/domain"
	"github.com/custodia-labs/pagedeck/internal/core/ports/driving"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewPages, "pages"},
		{ViewAnnotate, "annotate"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestPagesIngested_PartialFailure(t *testing.T) {
	msg := PagesIngested{Results: []driving.IngestResult{
		{Name: "a.pdf", PageIDs: []string{"1", "2"}},
		{Name: "b.pdf", Err: &domain.DecodeError{Source: "b.pdf", Err: errors.New("bad header")}},
	}}

	assert.NoError(t, msg.Err)
	assert.Len(t, msg.Results[0].PageIDs, 2)
	assert.ErrorIs(t, msg.Results[1].Err, domain.ErrDecode)
}

func TestExportFinished_CarriesResult(t *testing.T) {
	msg := ExportFinished{
		Path:   "/tmp/merged.pdf",
		Result: &domain.ExportResult{FileName: "merged.pdf", PageCount: 3},
	}

	assert.Equal(t, 3, msg.Result.PageCount)
	assert.NoError(t, msg.Err)
}
