package picker

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() []Option {
	return []Option{
		{Label: "architect", Value: "mode/architect@builtin", Detail: "builtin"},
		{Label: "architect-advanced", Value: "mode/architect-advanced@global", Detail: "global"},
		{Label: "arch-review", Value: "workflow/arch-review@project", Detail: "project"},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_New(t *testing.T) {
	m := New("Pick a component", testOptions())

	assert.Equal(t, "Pick a component", m.title)
	assert.Len(t, m.options, 3)
	assert.Equal(t, 0, m.selected)
	_, ok := m.Chosen()
	assert.False(t, ok, "nothing is chosen before enter")
}

func TestPicker_SetSelected(t *testing.T) {
	m := New("Test", testOptions())

	m = m.SetSelected(2)
	assert.Equal(t, 2, m.selected)

	m = m.SetSelected(10)
	assert.Equal(t, 2, m.selected, "out of range index is ignored")

	m = m.SetSelected(-1)
	assert.Equal(t, 2, m.selected, "negative index is ignored")
}

func TestPicker_Selected_Empty(t *testing.T) {
	m := New("Test", nil)
	assert.Equal(t, Option{}, m.Selected())
}

func TestPicker_Navigation(t *testing.T) {
	m := New("Test", testOptions())

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 1, m.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 2, m.selected, "stays at the bottom boundary")

	m, _ = update(t, m, runes("k"))
	assert.Equal(t, 1, m.selected)

	m, _ = update(t, m, runes("g"))
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected, "stays at the top boundary")

	m, _ = update(t, m, runes("G"))
	assert.Equal(t, 2, m.selected)
}

func TestPicker_SelectQuits(t *testing.T) {
	m := New("Test", testOptions()).SetSelected(1)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	chosen, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, "mode/architect-advanced@global", chosen.Value)
	assert.Empty(t, m.View(), "view is cleared after a choice")
}

func TestPicker_CancelQuits(t *testing.T) {
	m := New("Test", testOptions())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.Cancelled())
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestPicker_EnterOnEmptyChoosesNothing(t *testing.T) {
	m, _ := update(t, New("Test", nil), tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestPicker_View(t *testing.T) {
	view := ansi.Strip(New("Pick a component", testOptions()).View())

	assert.Contains(t, view, "Pick a component")
	assert.Contains(t, view, ">architect builtin")
	assert.Contains(t, view, " architect-advanced global")
	assert.Contains(t, view, "enter select")
}

func TestPicker_View_Stability(t *testing.T) {
	m := New("Test", testOptions()).SetBoxWidth(60)
	assert.Equal(t, m.View(), m.View())
}

func TestPicker_FindIndexByValue(t *testing.T) {
	options := testOptions()

	assert.Equal(t, 1, FindIndexByValue(options, "mode/architect-advanced@global"))
	assert.Equal(t, 2, FindIndexByValue(options, "workflow/arch-review@project"))
	assert.Equal(t, 0, FindIndexByValue(options, "nonexistent"))
}

func TestPicker_Program(t *testing.T) {
	tm := teatest.NewTestModel(t, New("Pick a component", testOptions()), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Pick a component"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.True(t, ok)
	chosen, ok := final.Chosen()
	require.True(t, ok)
	assert.Equal(t, "workflow/arch-review@project", chosen.Value)
}

func TestRun_ReadsKeysFromInput(t *testing.T) {
	in := bytes.NewBufferString("j\r")
	var out bytes.Buffer

	chosen, ok, err := Run("Pick", testOptions(), in, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mode/architect-advanced@global", chosen.Value)
}
