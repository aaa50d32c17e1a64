package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/pkg/scene"
	"github.com/daschober/planesketch/pkg/scenefile"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [scene-file]",
		Short: "Browse a scene file's entities interactively",
		Long: `Browse a scene file's entities interactively.

The inspector loads a scene file (.toml or .json), relaxes it, and
shows the entities in a navigable list with their resolved geometry.
Selecting an entity prints its full attribute set, including the
dependency edges the resolver follows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenefile.ReadSceneFile(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}

			model := NewEntityListModel(sc)
			out, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("inspector: %w", err)
			}

			final, ok := out.(EntityListModel)
			if !ok || final.Selected == nil {
				return nil
			}
			printEntityDetail(sc, final.Selected)
			return nil
		},
	}
}

// =============================================================================
// EntityListModel - Interactive entity browsing
// =============================================================================

// EntityListModel is the bubbletea model for entity selection.
type EntityListModel struct {
	Scene    scene.Scene
	Entities []scene.Entity
	Cursor   int
	Selected scene.Entity
	Height   int
	Offset   int
}

// NewEntityListModel creates a new entity list model.
func NewEntityListModel(sc scene.Scene) EntityListModel {
	return EntityListModel{
		Scene:    sc,
		Entities: sc.Entities(),
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m EntityListModel) Init() tea.Cmd {
	return nil
}

func (m EntityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entities) > 0 {
				m.Selected = m.Entities[m.Cursor]
			}
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

func (m EntityListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Entities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entities) {
		end = len(m.Entities)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entities[i]
		meta := e.Common()

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := meta.Name
		if name == "" {
			name = meta.ID
		}

		deps := "—"
		if n := len(e.Edges()); n > 0 {
			deps = fmt.Sprintf("%d", n)
		}

		visible := iconSuccess
		if meta.Hidden {
			visible = ""
		}

		rows = append(rows, []string{cursor, name, e.Kind().String(), describeEntity(e), deps, visible})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Kind", "Value", "Deps", "Visible").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entities) {
				return lipgloss.NewStyle()
			}
			e := m.Entities[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if e.Common().Hidden {
				base = base.Foreground(colorDim)
			} else {
				base = base.Foreground(colorWhite)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entities))))

	return b.String()
}

// printEntityDetail prints the full attribute set of the selected entity.
func printEntityDetail(sc scene.Scene, e scene.Entity) {
	meta := e.Common()

	printNewline()
	name := meta.Name
	if name == "" {
		name = meta.ID
	}
	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(e.Kind().String()))
	printDetail("id: %s", meta.ID)
	if meta.Color != "" {
		printDetail("color: %s", meta.Color)
	}
	if meta.Hidden {
		printDetail("hidden")
	}

	switch e := e.(type) {
	case *scene.Point:
		printDetail("position: (%.6g, %.6g)", e.X, e.Y)
		if e.Free {
			printDetail("free")
		}
		if e.OnLine != "" {
			printDetail("on line: %s", e.OnLine)
		}
		if e.SolutionIndex != nil {
			printDetail("solution index: %d", *e.SolutionIndex)
		}
	case *scene.Line:
		printDetail("equation: %s", formatLineEquation(e.A, e.B, e.C))
		if e.Pivot != "" {
			printDetail("pivot: %s angle: %.6g", e.Pivot, e.Angle)
		}
	case *scene.Conic:
		printDetail("class: %s", e.Class)
		printDetail("center: (%.6g, %.6g)", e.Standard.CX, e.Standard.CY)
		printDetail("semi-axes: a=%.6g b=%.6g rotation=%.6g", e.Standard.A, e.Standard.B, e.Standard.Rotation)
		printDetail("coeffs: a=%.4g b=%.4g c=%.4g d=%.4g e=%.4g f=%.4g",
			e.Coeffs.A, e.Coeffs.B, e.Coeffs.C, e.Coeffs.D, e.Coeffs.E, e.Coeffs.F)
	}

	for _, edge := range e.Edges() {
		target := edge.To
		if dep, ok := sc.Get(edge.To); ok && dep.Common().Name != "" {
			target = dep.Common().Name
		}
		printDetail("%s %s %s", edge.Kind, iconArrow, target)
	}
}
