package readme

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seek/internal/core/domain"
)

var serde = domain.Crate{ID: "serde", Name: "serde"}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.Empty(t, v.CrateID())
}

func TestView_LoadAndSetContent(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 20)

	v.Load(serde)
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading README")
	assert.Contains(t, v.View(), "README: serde")

	v.SetContent("serde", "# Serde\n\nA framework for serializing.", nil)
	assert.False(t, v.Loading())
	assert.Contains(t, v.View(), "A framework for serializing.")
}

func TestView_IgnoresStaleContent(t *testing.T) {
	v := NewView(nil, nil)
	v.Load(serde)

	v.SetContent("tokio", "# Tokio", nil)

	assert.True(t, v.Loading())
	assert.NotContains(t, v.View(), "Tokio")
}

func TestView_Errors(t *testing.T) {
	v := NewView(nil, nil)

	v.Load(serde)
	v.SetContent("serde", "", domain.ErrReadmeUnavailable)
	assert.Contains(t, v.View(), "No README available for serde")

	v.Load(serde)
	v.SetContent("serde", "", errors.New("rate limited"))
	assert.EqualError(t, v.Err(), "rate limited")
	assert.Contains(t, v.View(), "Error: rate limited")
}

func TestView_Scrolls(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 10)
	v.Load(serde)

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	lines[0] = "first"
	v.SetContent("serde", strings.Join(lines, "\n"), nil)
	assert.Contains(t, v.View(), "first")

	for range 10 {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.NotContains(t, v.View(), "first")
}

func TestView_BackKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		v := NewView(nil, nil)

		_, cmd := v.Update(msg)

		require.NotNil(t, cmd)
		assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
	}
}
