package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/janus/internal/buf"
	"github.com/joshuapare/janus/internal/hexdump"
	"github.com/joshuapare/janus/layout/walker"
)

// maxDumpBytes caps the hex dump in the detail pane.
const maxDumpBytes = 256

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := "janus explorer"
	if m.opts.Title != "" {
		title += " - " + m.opts.Title
	}
	header := headerStyle.Render(title)

	treeWidth := max(20, m.width*2/5)
	detailWidth := max(20, m.width-treeWidth-4)
	h := m.treeHeight()

	tree := activePaneStyle.Width(treeWidth).Height(h).Render(m.renderTree(treeWidth, h))
	detail := paneStyle.Width(detailWidth).Height(h).Render(m.renderDetail())
	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, detail)

	var footer string
	switch {
	case m.inputMode == GotoMode:
		footer = m.input.View()
	case m.statusErr:
		footer = errorStyle.Render(m.status)
	default:
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, m.help.View(m.keys))
}

func (m Model) renderTree(width, height int) string {
	var b strings.Builder
	end := min(len(m.rows), m.offset+height)
	for pos := m.offset; pos < end; pos++ {
		i := m.rows[pos]
		e := m.entries[i]

		marker := "  "
		if e.node.Children > 0 {
			marker = "▸ "
			if m.expanded[i] {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", e.depth) + marker + m.label(e.node)
		if w := width - 2; w > 0 && lipgloss.Width(line) > w {
			line = line[:w]
		}

		switch {
		case pos == m.cursor:
			line = selectedStyle.Render(line)
		case e.node.IsLeaf():
			line = leafStyle.Render(line)
		}
		b.WriteString(line)
		if pos < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// label renders a tree row: level, position and range, plus the node's name
// when one is known.
func (m Model) label(n walker.Node) string {
	var s string
	switch n.Level {
	case walker.LevelFile:
		return fmt.Sprintf("file %v", n.Range)
	case walker.LevelSlice:
		s = fmt.Sprintf("slice %d %v", n.Path.Slice, n.Range)
	case walker.LevelCommand:
		s = fmt.Sprintf("command %d %v", n.Path.Command, n.Range)
	case walker.LevelElement:
		s = fmt.Sprintf("element %d %v", n.Path.Element, n.Range)
	}
	if names := m.names(n); len(names) > 0 {
		s += " " + names[len(names)-1]
	}
	return s
}

func (m Model) names(n walker.Node) []string {
	if m.opts.Names == nil || n.Level == walker.LevelFile {
		return nil
	}
	names := m.opts.Names(n.Path)
	if want := int(n.Level); len(names) > want {
		names = names[:want]
	}
	return names
}

func (m Model) renderDetail() string {
	n := m.Selected()
	var b strings.Builder

	row := func(k string, v any) {
		fmt.Fprintf(&b, "%s %v\n", labelStyle.Render(fmt.Sprintf("%-10s", k)), v)
	}
	row("Level", n.Level)
	if n.Level != walker.LevelFile {
		row("Path", pathLabel(n))
	}
	if names := m.names(n); len(names) > 0 {
		row("Name", strings.Join(names, "/"))
	}
	row("Range", n.Range)
	row("Size", n.Size)
	if n.Level != walker.LevelFile {
		row("Relative", fmt.Sprintf("0x%X", n.RelativeOffset))
		row("Index", n.Index)
	}
	row("Children", n.Children)
	if n.IsLeaf() {
		row("Leaf", "yes")
	}

	if m.opts.Data != nil {
		b.WriteByte('\n')
		data, ok := buf.Span(m.opts.Data, n.Range.Start, n.Range.End)
		if !ok {
			b.WriteString(errorStyle.Render(fmt.Sprintf("range %v exceeds data (%d bytes)", n.Range, len(m.opts.Data))))
		} else {
			_ = hexdump.Write(&b, data, n.Range.Start, hexdump.Options{MaxBytes: maxDumpBytes})
		}
	}
	return b.String()
}

// pathLabel renders n's position as "slice 0/command 3/element 1".
func pathLabel(n walker.Node) string {
	switch n.Level {
	case walker.LevelSlice:
		return fmt.Sprintf("slice %d", n.Path.Slice)
	case walker.LevelCommand:
		return fmt.Sprintf("slice %d/command %d", n.Path.Slice, n.Path.Command)
	case walker.LevelElement:
		return fmt.Sprintf("slice %d/command %d/element %d", n.Path.Slice, n.Path.Command, n.Path.Element)
	default:
		return "file"
	}
}
