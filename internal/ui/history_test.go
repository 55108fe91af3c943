package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchdata/internal/benchmark"
)

func TestHistoryModel_SelectsNewest(t *testing.T) {
	m := NewHistoryModel("Performance Metrics", historyEntries(), 2)

	cur, prev := m.Selected()
	require.NotNil(t, cur)
	require.NotNil(t, prev)
	assert.Equal(t, "90414c91773873000dd5", cur.Commit.ID)
	assert.Equal(t, "1bb6b5495ca49bfbf0ae", prev.Commit.ID)

	view := m.View()
	assert.Contains(t, view, "Performance Metrics (2 entries)")
	assert.Contains(t, view, "Commit: 90414c91773873000dd5")
	assert.Contains(t, view, "ratio 5.52")
}

func TestHistoryModel_Navigation(t *testing.T) {
	m := NewHistoryModel("s", historyEntries(), 2)

	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(HistoryModel)

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = newM.(HistoryModel)

	cur, prev := m.Selected()
	require.NotNil(t, cur)
	assert.Nil(t, prev)
	assert.Equal(t, "1bb6b5495ca49bfbf0ae", cur.Commit.ID)
	assert.Contains(t, m.View(), "(new)")

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = newM.(HistoryModel)
	cur, _ = m.Selected()
	assert.Equal(t, "90414c91773873000dd5", cur.Commit.ID)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryModel_Empty(t *testing.T) {
	m := NewHistoryModel("s", nil, 2)
	cur, prev := m.Selected()
	assert.Nil(t, cur)
	assert.Nil(t, prev)
	assert.Contains(t, m.View(), "No entries recorded.")
}

func TestStartHistoryTUI(t *testing.T) {
	var got HistoryModel
	restore := SetStartHistoryTUIForTest(func(m HistoryModel) error {
		got = m
		return nil
	})
	defer restore()

	require.NoError(t, StartHistoryTUI("s", []benchmark.Entry{historyEntries()[0]}, 2))
	assert.Len(t, got.entries, 1)
}
