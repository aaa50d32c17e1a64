package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/pkg/geom"
	"github.com/daschober/planesketch/pkg/scene"
	"github.com/daschober/planesketch/pkg/scenefile"
)

// newDemoCmd creates the demo command.
func newDemoCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a pole/polar demo scene and print a summary",
		Long: `Seed a pole/polar demo scene and print a summary.

The demo builds the classic pole/polar construction: an ellipse, a free
pole point, the pole's polar line with respect to the ellipse, and the
two intersection points of the polar with the ellipse. Moving the pole
in an editing session drags the whole construction along.

With --output, the scene is written as a TOML or JSON scene file that
'inspect' and 'viz' can read back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the scene to a file (.toml or .json)")

	return cmd
}

// demoScene builds the pole/polar construction.
func demoScene() scene.Scene {
	zero := 0
	one := 1
	return scene.New(
		&scene.Conic{
			Meta:  scene.Meta{ID: "ellipse", Name: "C"},
			Class: geom.Ellipse,
			Standard: geom.Standard{
				A: 3, B: 2,
			},
		},
		&scene.Point{
			Meta: scene.Meta{ID: "pole", Name: "P", Color: "#d33"},
			X:    5, Y: 1,
			Free: true,
		},
		&scene.Line{
			Meta: scene.Meta{ID: "polar", Name: "p", Deps: []string{"pole", "ellipse"}},
		},
		&scene.Point{
			Meta:          scene.Meta{ID: "t0", Name: "T0", Deps: []string{"polar", "ellipse"}},
			SolutionIndex: &zero,
		},
		&scene.Point{
			Meta:          scene.Meta{ID: "t1", Name: "T1", Deps: []string{"polar", "ellipse"}},
			SolutionIndex: &one,
		},
	)
}

func runDemo(cmd *cobra.Command, output string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	sc := demoScene()
	prog.done(fmt.Sprintf("Resolved %d entities", sc.Len()))

	printNewline()
	fmt.Println(StyleTitle.Render("Pole/Polar Demo"))
	fmt.Println(summaryTable(sc))
	printStats(sc.Len(), len(sc.Edges()), false)

	if output == "" {
		return nil
	}
	if err := scenefile.WriteSceneFile(sc, output); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	printSuccess("Scene written")
	printFile(output)
	return nil
}

// summaryTable renders the scene's entities as a styled table.
func summaryTable(sc scene.Scene) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, e := range sc.Entities() {
		rows = append(rows, []string{
			e.Common().Name,
			e.Kind().String(),
			describeEntity(e),
			visibility(e),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Kind", "Value", "Visible").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// describeEntity formats an entity's resolved geometry for display.
func describeEntity(e scene.Entity) string {
	switch e := e.(type) {
	case *scene.Point:
		return fmt.Sprintf("(%.4g, %.4g)", e.X, e.Y)
	case *scene.Line:
		return formatLineEquation(e.A, e.B, e.C)
	case *scene.Conic:
		return fmt.Sprintf("%s a=%.4g b=%.4g at (%.4g, %.4g)",
			e.Class, e.Standard.A, e.Standard.B, e.Standard.CX, e.Standard.CY)
	default:
		return ""
	}
}

// formatLineEquation prints ax + by + c = 0 with tidy signs.
func formatLineEquation(a, b, c float64) string {
	s := fmt.Sprintf("%.4gx", a)
	if b >= 0 {
		s += fmt.Sprintf(" + %.4gy", b)
	} else {
		s += fmt.Sprintf(" - %.4gy", math.Abs(b))
	}
	if c >= 0 {
		s += fmt.Sprintf(" + %.4g", c)
	} else {
		s += fmt.Sprintf(" - %.4g", math.Abs(c))
	}
	return s + " = 0"
}

func visibility(e scene.Entity) string {
	if e.Common().Hidden {
		return StyleDim.Render("hidden")
	}
	return StyleSuccess.Render(iconSuccess)
}
