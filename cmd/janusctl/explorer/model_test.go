package explorer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/janus/layout"
	"github.com/joshuapare/janus/layout/walker"
)

func testFile(t *testing.T) *layout.File {
	t.Helper()
	b := layout.NewBuilder(100, layout.BuilderOptions{})
	s := b.Slice(0, 50)
	s.Command(0, 30).Element(0, 10).Element(10, 30)
	s.Command(30, 50)
	b.Slice(50, 100)
	f, err := b.Build()
	require.NoError(t, err)
	return f
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := New(testFile(t), opts)
	require.NoError(t, err)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestNew_InitialRows(t *testing.T) {
	m := newModel(t, Options{})
	// file plus its two slices
	assert.Equal(t, 3, m.VisibleRows())
	assert.Equal(t, walker.LevelFile, m.Selected().Level)
}

func TestNavigation(t *testing.T) {
	m := newModel(t, Options{})

	m = send(m, runes("j"))
	assert.Equal(t, walker.LevelSlice, m.Selected().Level)
	assert.Equal(t, 0, m.Selected().Path.Slice)

	// expand slice 0, then down onto command 0
	m = send(m, enter, runes("j"))
	assert.Equal(t, 5, m.VisibleRows())
	assert.Equal(t, walker.LevelCommand, m.Selected().Level)

	m = send(m, runes("G"))
	assert.Equal(t, 1, m.Selected().Path.Slice)

	m = send(m, runes("g"))
	assert.Equal(t, walker.LevelFile, m.Selected().Level)

	// up at the top stays put
	m = send(m, runes("k"))
	assert.Equal(t, walker.LevelFile, m.Selected().Level)
}

func TestCollapseMovesToParent(t *testing.T) {
	m := newModel(t, Options{})
	m = send(m, runes("E"))
	assert.Equal(t, 7, m.VisibleRows())

	m = send(m, runes("j"), runes("j"), runes("j"))
	require.Equal(t, walker.LevelElement, m.Selected().Level)

	// left on a leaf selects its parent, left again collapses it
	m = send(m, runes("h"))
	assert.Equal(t, walker.LevelCommand, m.Selected().Level)
	m = send(m, runes("h"))
	assert.Equal(t, 5, m.VisibleRows())

	m = send(m, runes("C"))
	assert.Equal(t, 3, m.VisibleRows())
	assert.Equal(t, walker.LevelSlice, m.Selected().Level)
}

func TestGotoAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel walker.Level
		wantPath  layout.Coordinates
		wantErr   string
	}{
		{
			name:      "element",
			input:     "25",
			wantLevel: walker.LevelElement,
			wantPath:  layout.Coordinates{Slice: 0, Command: 0, Element: 1},
		},
		{
			name:      "leaf command",
			input:     "0x23",
			wantLevel: walker.LevelCommand,
			wantPath:  layout.Coordinates{Slice: 0, Command: 1, Element: layout.NoElement},
		},
		{name: "not found", input: "75", wantErr: "not found"},
		{name: "outside", input: "150", wantErr: "outside current scope"},
		{name: "garbage", input: "xyz", wantErr: `invalid address "xyz"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, Options{})
			m = send(m, runes(":"))
			require.Equal(t, GotoMode, m.Mode())

			m = send(m, runes(tt.input), enter)
			assert.Equal(t, NormalMode, m.Mode())

			if tt.wantErr != "" {
				assert.Contains(t, m.Status(), tt.wantErr)
				assert.Equal(t, walker.LevelFile, m.Selected().Level)
				return
			}
			assert.Equal(t, tt.wantLevel, m.Selected().Level)
			assert.Equal(t, tt.wantPath, m.Selected().Path)
		})
	}
}

func TestGotoEscCancels(t *testing.T) {
	m := newModel(t, Options{})
	m = send(m, runes(":"), runes("25"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, walker.LevelFile, m.Selected().Level)
	assert.Empty(t, m.Status())
}

func TestCopy(t *testing.T) {
	var copied string
	m := newModel(t, Options{Copy: func(s string) error {
		copied = s
		return nil
	}})
	m = send(m, runes("j"), runes("c"))
	assert.Equal(t, "slice 0 [0x0,0x32)", copied)
	assert.Equal(t, "copied slice 0 [0x0,0x32)", m.Status())

	m = newModel(t, Options{Copy: func(string) error { return errors.New("no clipboard") }})
	m = send(m, runes("c"))
	assert.Equal(t, "copy failed: no clipboard", m.Status())
}

func TestView(t *testing.T) {
	data := make([]byte, 100)
	copy(data[10:], "PAYLOAD")
	names := func(c layout.Coordinates) []string {
		out := []string{"text"}
		if c.Command == 0 {
			out = append(out, "header")
		}
		return out
	}
	m := newModel(t, Options{Title: "test.yaml", Data: data, Names: names})
	m = send(m, tea.WindowSizeMsg{Width: 160, Height: 40}, runes(":"), runes("12"), enter)

	view := m.View()
	for _, want := range []string{
		"janus explorer - test.yaml",
		"element 1 [0xA,0x1E)",
		"slice 0/command 0/element 1",
		"text/header",
		"|PAYLOAD",
	} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}

func TestView_DataTooShort(t *testing.T) {
	m := newModel(t, Options{Data: make([]byte, 20)})
	m = send(m, runes(":"), runes("40"), enter)
	assert.Contains(t, m.View(), "exceeds data (20 bytes)")
}

func TestQuit(t *testing.T) {
	m := newModel(t, Options{})
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
