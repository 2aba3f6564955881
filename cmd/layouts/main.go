// layouts prints the corrected platform layout of each stage style.
//
// Usage:
//
//	layouts                      - every style in the catalog
//	layouts simple "fear"        - only the named styles
//	layouts --stages             - the styles used by stages 1-9, in order
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/levels"
	"github.com/milk9111/houyi/prefabs"
	"github.com/milk9111/houyi/story"
	"github.com/spf13/cobra"
)

var (
	flagTuning string
	flagStages bool
	flagDebug  bool
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	correctedStyle = cellStyle.Foreground(lipgloss.Color("208"))
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "layouts [style...]",
	Short: "Print corrected platform layouts",
	Long: `Runs the platform generator for each style and prints the resulting
platforms. Rows moved by the reachability correction are highlighted.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagTuning, "tuning", "", "Path to a tuning.yaml overriding the built-in values")
	rootCmd.Flags().BoolVar(&flagStages, "stages", false, "Print the style of every stage in order")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log each correction")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "layouts"})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	tuning, err := prefabs.LoadTuning(flagTuning)
	if err != nil {
		return err
	}
	catalog, err := levels.LoadCatalog()
	if err != nil {
		return err
	}
	gen := levels.NewGenerator(catalog, tuning, logger)

	styles := args
	titles := args
	switch {
	case flagStages:
		stages, err := story.LoadTable(logger)
		if err != nil {
			return err
		}
		styles, titles = nil, nil
		for n := 1; n <= stages.Len(); n++ {
			s := stages.Stage(n)
			styles = append(styles, s.PlatformStyle)
			titles = append(titles, fmt.Sprintf("Stage %d: %s (%s)", s.Number, s.Name, s.PlatformStyle))
		}
	case len(styles) == 0:
		styles = catalog.StyleNames()
		titles = styles
	}

	out := cmd.OutOrStdout()
	limits := gen.Limits()
	fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("max jump height %.0f, max jump distance %.0f", limits.MaxJumpHeight, limits.MaxJumpDistance)))
	for i, style := range styles {
		layout := gen.Generate(style)
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render(titles[i]))
		if !layout.Known {
			fmt.Fprintln(out, noteStyle.Render("unknown style, default layout"))
		}
		fmt.Fprintln(out, render(layout))
	}
	return nil
}

// rows turns a layout into table cells, one row per platform plus the
// collectible.
func rows(l levels.Layout) [][]string {
	corrected := map[int]bool{}
	for _, c := range l.Corrections {
		corrected[c.Index] = true
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	out := make([][]string, 0, len(l.Platforms)+1)
	for i, p := range l.Platforms {
		span := "-"
		if p.Moving() {
			span = fmt.Sprintf("%s..%s @%s", num(p.StartX), num(p.EndX), num(p.Speed))
		}
		kind := p.Kind.String()
		if p.Decoy {
			kind += " decoy"
		}
		fixed := ""
		if corrected[i] {
			fixed = "yes"
		}
		out = append(out, []string{strconv.Itoa(i), num(p.X), num(p.Y), num(p.W), num(p.H), kind, span, fixed})
	}
	c := l.Collectible
	return append(out, []string{"arrow", num(c.X), num(c.Y), num(c.W), num(c.H), "collectible", "above " + strconv.Itoa(l.ArrowIndex), ""})
}

func render(l levels.Layout) string {
	data := rows(l)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "x", "y", "w", "h", "kind", "range", "corrected").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(data) && data[row][7] == "yes" {
				return correctedStyle
			}
			return cellStyle
		})
	return t.String()
}
