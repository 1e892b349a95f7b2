package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"move up", km.MoveUp, []string{"K"}},
		{"move down", km.MoveDown, []string{"J"}},
		{"rotate", km.Rotate, []string{"r"}},
		{"exclude", km.Exclude, []string{"x"}},
		{"annotate", km.Annotate, []string{"a"}},
		{"export", km.Export, []string{"e"}},
		{"reset", km.Reset, []string{"C"}},
		{"confirm", km.Confirm, []string{"enter"}},
		{"cancel", km.Cancel, []string{"esc"}},
		{"next column", km.NextColumn, []string{"tab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_Mutating(t *testing.T) {
	km := DefaultKeyMap()

	for _, k := range []string{"K", "J", "r", "x", "a", "e", "C"} {
		assert.True(t, km.Mutating(k), k)
	}
	for _, k := range []string{"j", "k", "up", "down", "?", "q", "enter"} {
		assert.False(t, km.Mutating(k), k)
	}
}

func TestKeyMap_HelpSets(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.NotEmpty(t, km.AnnotateHelp())

	full := km.FullHelp()
	require.Len(t, full, 4)
	assert.Contains(t, full[0], km.MoveUp)
}

func TestMatches(t *testing.T) {
	binding := key.NewBinding(key.WithKeys("a", "b"))

	assert.True(t, Matches("a", binding))
	assert.True(t, Matches("b", binding))
	assert.False(t, Matches("c", binding))
	assert.False(t, Matches("", binding))
}
