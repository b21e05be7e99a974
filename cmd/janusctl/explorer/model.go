// Package explorer is an interactive terminal browser for a layout: a
// collapsible slice/command/element tree on the left, the selected node's
// details and bytes on the right, and a prompt that jumps to the node
// containing an address.
package explorer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/janus/layout"
	"github.com/joshuapare/janus/layout/walker"
)

// Default dimensions used until the first tea.WindowSizeMsg arrives.
const (
	DefaultWidth  = 100
	DefaultHeight = 30

	// chromeHeight is the space taken by header, pane borders, status and help.
	chromeHeight = 7
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	GotoMode
)

// Options configures a Model.
type Options struct {
	// Title is shown in the header, typically the layout path.
	Title string
	// Data holds the bytes the layout describes. When nil, no hex dump is shown.
	Data []byte
	// Names maps coordinates to display names. Optional.
	Names func(layout.Coordinates) []string
	// Copy writes text to the clipboard. Default: clipboard.WriteAll
	Copy func(string) error
}

// entry is one node of the flattened tree. Entries are stored in walk order,
// so a node's parent always precedes it.
type entry struct {
	node   walker.Node
	parent int
	depth  int
}

// Model is the explorer's bubbletea model.
type Model struct {
	file *layout.File
	opts Options
	keys KeyMap
	help help.Model

	entries  []entry
	expanded map[int]bool
	rows     []int // visible entry indices
	cursor   int   // position in rows
	offset   int   // first visible row

	width  int
	height int

	inputMode InputMode
	input     textinput.Model

	status    string
	statusErr bool
	quitting  bool
}

// New returns a model showing f with only the file node expanded.
func New(f *layout.File, opts Options) (Model, error) {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Prompt = "address: "
	ti.Placeholder = "0x0"
	ti.CharLimit = 32

	m := Model{
		file:     f,
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		expanded: map[int]bool{0: true},
		width:    DefaultWidth,
		height:   DefaultHeight,
		input:    ti,
	}

	var stack []int
	err := walker.Walk(f, func(n walker.Node) error {
		depth := int(n.Level)
		stack = stack[:min(len(stack), depth)]
		parent := -1
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		m.entries = append(m.entries, entry{node: n, parent: parent, depth: depth})
		stack = append(stack, len(m.entries)-1)
		return nil
	})
	if err != nil {
		return Model{}, err
	}
	m.refreshRows(0)
	return m, nil
}

// Run starts the explorer in the alternate screen and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Selected returns the node under the cursor.
func (m Model) Selected() walker.Node {
	return m.entries[m.rows[m.cursor]].node
}

// Status returns the current status line text.
func (m Model) Status() string { return m.status }

// Mode returns the current input mode.
func (m Model) Mode() InputMode { return m.inputMode }

// VisibleRows returns the number of tree rows currently shown.
func (m Model) VisibleRows() int { return len(m.rows) }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil
	case tea.KeyMsg:
		if m.inputMode == GotoMode {
			return m.updateGoto(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.treeHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.treeHeight())
	case key.Matches(msg, m.keys.Home):
		m.move(-len(m.rows))
	case key.Matches(msg, m.keys.End):
		m.move(len(m.rows))
	case key.Matches(msg, m.keys.Enter):
		cur := m.rows[m.cursor]
		m.setExpanded(cur, !m.expanded[cur])
	case key.Matches(msg, m.keys.Right):
		m.setExpanded(m.rows[m.cursor], true)
	case key.Matches(msg, m.keys.Left):
		cur := m.rows[m.cursor]
		if m.expanded[cur] && m.entries[cur].node.Children > 0 {
			m.setExpanded(cur, false)
		} else if p := m.entries[cur].parent; p >= 0 {
			m.refreshRows(p)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		for i := range m.entries {
			m.expanded[i] = true
		}
		m.refreshRows(m.rows[m.cursor])
	case key.Matches(msg, m.keys.CollapseAll):
		m.expanded = map[int]bool{0: true}
		cur := m.rows[m.cursor]
		for cur > 0 && m.entries[cur].depth > 1 {
			cur = m.entries[cur].parent
		}
		m.refreshRows(cur)
	case key.Matches(msg, m.keys.Copy):
		text := m.coordsText(m.Selected())
		if err := m.opts.Copy(text); err != nil {
			m.setStatus(fmt.Sprintf("copy failed: %v", err), true)
		} else {
			m.setStatus("copied "+text, false)
		}
	case key.Matches(msg, m.keys.Goto):
		m.inputMode = GotoMode
		m.input.Reset()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.inputMode = NormalMode
		m.input.Blur()
		m.gotoAddress(m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// gotoAddress resolves s and moves the cursor to the node containing it,
// expanding its ancestors.
func (m *Model) gotoAddress(s string) {
	addr, err := parseAddr(s)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	c, err := m.file.FindAddress(addr)
	if err != nil {
		m.setStatus(fmt.Sprintf("0x%X: %v", addr, err), true)
		return
	}
	target := m.find(c)
	if target < 0 {
		m.setStatus(fmt.Sprintf("0x%X: %v not in tree", addr, c), true)
		return
	}
	for p := m.entries[target].parent; p >= 0; p = m.entries[p].parent {
		m.expanded[p] = true
	}
	m.refreshRows(target)
	m.setStatus(fmt.Sprintf("0x%X: %v", addr, c), false)
}

// find returns the entry for the leaf at c, or -1.
func (m *Model) find(c layout.Coordinates) int {
	level := walker.LevelCommand
	if c.HasElement() {
		level = walker.LevelElement
	}
	for i, e := range m.entries {
		if e.node.Level == level && e.node.Path == c {
			return i
		}
	}
	return -1
}

func (m *Model) setExpanded(i int, on bool) {
	if m.entries[i].node.Children == 0 {
		return
	}
	m.expanded[i] = on
	m.refreshRows(i)
}

// refreshRows recomputes the visible rows and places the cursor on entry
// sel, or on its nearest visible ancestor.
func (m *Model) refreshRows(sel int) {
	visible := make([]bool, len(m.entries))
	m.rows = make([]int, 0, len(m.entries))
	for i, e := range m.entries {
		visible[i] = e.parent < 0 || (visible[e.parent] && m.expanded[e.parent])
		if visible[i] {
			m.rows = append(m.rows, i)
		}
	}
	for sel > 0 && !visible[sel] {
		sel = m.entries[sel].parent
	}
	m.cursor = 0
	for pos, i := range m.rows {
		if i == sel {
			m.cursor = pos
			break
		}
	}
	m.ensureVisible()
}

func (m *Model) move(delta int) {
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	m.ensureVisible()
}

func (m *Model) treeHeight() int {
	return max(1, m.height-chromeHeight)
}

func (m *Model) ensureVisible() {
	h := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, min(m.offset, len(m.rows)-1))
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) coordsText(n walker.Node) string {
	if n.Level == walker.LevelFile {
		return n.Range.String()
	}
	return fmt.Sprintf("%s %v", pathLabel(n), n.Range)
}

var errEmptyAddress = errors.New("empty address")

func parseAddr(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyAddress
	}
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return addr, nil
}
