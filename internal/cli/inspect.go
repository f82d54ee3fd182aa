package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/pkg/disk"
	"github.com/matzehuels/encoderdisk/pkg/pipeline"
	"github.com/matzehuels/encoderdisk/pkg/track"
)

// stripWidth is the number of cells used to draw one track.
const stripWidth = 64

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var configPath string
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse the tracks and runs of a disk interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveOptions(cmd.Flags(), configPath, opts)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), resolved)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML options file")
	bindOptionFlags(cmd.Flags(), &opts)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	if err := opts.Disk.Validate(); err != nil {
		return err
	}
	d, err := runner.Layout(ctx, opts.Disk)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newInspectModel(d), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// inspectModel - Interactive track browser
// =============================================================================

type inspectModel struct {
	disk   disk.Disk
	track  int // index into disk.Tracks
	offset int // first visible run
	height int // visible runs
}

func newInspectModel(d disk.Disk) inspectModel {
	return inspectModel{disk: d, height: 12}
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.track > 0 {
				m.track--
				m.offset = 0
			}
		case "right", "l":
			if m.track < len(m.disk.Tracks)-1 {
				m.track++
				m.offset = 0
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.runs())-m.height {
				m.offset++
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 3)
	}
	return m, nil
}

func (m inspectModel) runs() []track.Run {
	return m.disk.Tracks[m.track].Runs
}

func (m inspectModel) View() string {
	var b strings.Builder
	t := m.disk.Tracks[m.track]
	bits := m.disk.Config.Bits
	inner := t.InnerRadius(m.disk.Config.TrackWidth)

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Track %d/%d · bit %d", m.track+1, len(m.disk.Tracks), t.Bit)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("radius %g–%g · %d runs · %d of %d positions set",
		inner, t.OuterRadius, len(t.Runs), setPositions(t.Runs), 1<<bits)))
	b.WriteString("\n\n")
	b.WriteString(StyleNumber.Render(trackStrip(t.Runs, 1<<bits, stripWidth)))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(t.Runs))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := t.Runs[i]
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(r.Start),
			strconv.Itoa(r.Length),
			fmt.Sprintf("%.3f°", r.StartAngle(bits)),
			fmt.Sprintf("%.3f°", r.Span(bits)),
		})
	}
	b.WriteString(newTable("#", "Start", "Length", "Angle", "Span").Rows(rows...).Render())
	b.WriteString("\n")
	if len(t.Runs) > m.height {
		b.WriteString(StyleDim.Render(fmt.Sprintf("runs %d–%d of %d", m.offset+1, end, len(t.Runs))))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("←/→ track  ↑/↓ scroll  q quit"))
	return b.String()
}

// trackStrip draws runs over n positions as width cells, '█' where the
// cell's first position is set and '·' elsewhere. Runs may extend past n
// when they wrap.
func trackStrip(runs []track.Run, n, width int) string {
	width = min(width, n)
	set := make([]bool, n)
	for _, r := range runs {
		for p := r.Start; p < r.End(); p++ {
			set[p%n] = true
		}
	}
	var b strings.Builder
	for c := 0; c < width; c++ {
		if set[c*n/width] {
			b.WriteString("█")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func setPositions(runs []track.Run) int {
	n := 0
	for _, r := range runs {
		n += r.Length
	}
	return n
}
