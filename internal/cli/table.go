package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/track"
)

const defaultMaxRows = 256

// tableCommand creates the table command.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		bits       int
		zeroOffset int
		runs       bool
		mergeWrap  bool
		maxRows    int
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the Gray code table",
		Long: `Print the reflected binary Gray code for the given number of bits, one
row per angular position, or with --runs the angular runs of every track.`,
		Example: `  encoderdisk table -b 4
  encoderdisk table -b 8 --runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := gray.Generate(bits)
			if err != nil {
				return err
			}
			tbl = tbl.Rotate(zeroOffset)
			if runs {
				s, err := renderRunsTable(tbl, mergeWrap)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprintln(out, renderCodeTable(tbl, maxRows))
			if tbl.Len() > maxRows {
				printDetail("showing %d of %d positions (use --max-rows)", maxRows, tbl.Len())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 4, "number of bits")
	cmd.Flags().IntVar(&zeroOffset, "zero-offset", 0, "rotate the code by this many positions")
	cmd.Flags().BoolVar(&runs, "runs", false, "list the angular runs per track instead of the code")
	cmd.Flags().BoolVar(&mergeWrap, "merge-wrap", false, "join runs that wrap past position 0 (with --runs)")
	cmd.Flags().IntVar(&maxRows, "max-rows", defaultMaxRows, "maximum positions to print")

	return cmd
}

// renderCodeTable formats up to maxRows positions as Pos | Code | Angle.
func renderCodeTable(tbl gray.Table, maxRows int) string {
	size := track.PositionSize(tbl.Bits())
	n := min(tbl.Len(), maxRows)

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{
			strconv.Itoa(i),
			formatWord(tbl.Word(i), tbl.Bits()),
			fmt.Sprintf("%.3f°", float64(i)*size),
		})
	}
	return newTable("Pos", "Code", "Angle").Rows(rows...).Render()
}

// renderRunsTable formats one row per track: bit, run count and the runs
// as start+length pairs.
func renderRunsTable(tbl gray.Table, mergeWrap bool) (string, error) {
	extract := track.ExtractRuns
	if mergeWrap {
		extract = track.ExtractCircularRuns
	}

	rows := make([][]string, 0, tbl.Bits())
	for bit := 0; bit < tbl.Bits(); bit++ {
		runs, err := extract(tbl, bit)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(runs))
		for i, r := range runs {
			parts[i] = fmt.Sprintf("%d+%d", r.Start, r.Length)
		}
		rows = append(rows, []string{
			strconv.Itoa(bit),
			strconv.Itoa(len(runs)),
			strconv.Itoa(track.TrueCount(tbl, bit)),
			strings.Join(parts, " "),
		})
	}
	return newTable("Bit", "Runs", "Set", "Start+Length").Rows(rows...).Render(), nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// formatWord renders a code word MSB first, e.g. 0b011 with 4 bits is "0011".
func formatWord(word uint, bits int) string {
	return fmt.Sprintf("%0*b", bits, word)
}
