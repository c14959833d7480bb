package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ItemListModel - Interactive seed selection
// =============================================================================

// ItemListModel is the bubbletea model for choosing seed items.
// Space toggles the item under the cursor, "a" toggles all, enter confirms.
type ItemListModel struct {
	Items     []itemgraph.Item
	Chosen    map[int]bool
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool
}

// NewItemListModel creates a list with every item preselected.
func NewItemListModel(items []itemgraph.Item) ItemListModel {
	chosen := make(map[int]bool, len(items))
	for i := range items {
		chosen[i] = true
	}
	return ItemListModel{Items: items, Chosen: chosen, Height: 15}
}

func (m ItemListModel) Init() tea.Cmd {
	return nil
}

func (m ItemListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Items) > 0 {
				m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
			}
		case "a":
			all := m.count() < len(m.Items)
			for i := range m.Items {
				m.Chosen[i] = all
			}
		case "enter":
			if m.count() == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ItemListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Seed Items"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ export  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Chosen[i] {
			mark = "[x]"
		}
		rows = append(rows, []string{cursor, mark, it.Title, it.Type, it.ID})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Title", "Type", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			switch {
			case idx == m.Cursor && m.Chosen[idx]:
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Bold(true)
			case m.Chosen[idx]:
				if col == 4 {
					return base
				}
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Items), m.count())))

	return b.String()
}

// Selection returns the chosen items in list order, or nil if the user quit.
func (m ItemListModel) Selection() []itemgraph.Item {
	if !m.Confirmed {
		return nil
	}
	var out []itemgraph.Item
	for i, it := range m.Items {
		if m.Chosen[i] {
			out = append(out, it)
		}
	}
	return out
}

func (m ItemListModel) count() int {
	n := 0
	for i := range m.Items {
		if m.Chosen[i] {
			n++
		}
	}
	return n
}

// pickItems runs the item picker. An empty result means the user quit.
func pickItems(items []itemgraph.Item) ([]itemgraph.Item, error) {
	final, err := tea.NewProgram(NewItemListModel(items)).Run()
	if err != nil {
		return nil, err
	}
	return final.(ItemListModel).Selection(), nil
}
