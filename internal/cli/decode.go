package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/track"
)

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var zeroOffset int

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Map a code word read from a disk to its angular position",
		Long: `Decode a Gray code word, written MSB first as read from the outermost track
inwards, into its angular position and sector. The number of digits sets the
bit count.`,
		Example: `  encoderdisk decode 0110
  encoderdisk decode 1100 --zero-offset 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decodeWord(args[0], zeroOffset)
			if err != nil {
				return err
			}
			printKeyValue("code", args[0])
			printKeyValue("position", fmt.Sprintf("%d of %d", d.position, d.positions))
			printKeyValue("binary", formatWord(uint(d.binary), len(args[0])))
			printKeyValue("sector", fmt.Sprintf("%.4f° – %.4f°", d.start, d.end))
			return nil
		},
	}

	cmd.Flags().IntVar(&zeroOffset, "zero-offset", 0, "rotation the disk was generated with")
	return cmd
}

type decoded struct {
	position   int
	positions  int
	binary     uint
	start, end float64
}

func decodeWord(code string, zeroOffset int) (decoded, error) {
	bits := len(code)
	if err := errors.ValidateIntRange("code length", bits, 1, gray.MaxBits); err != nil {
		return decoded{}, err
	}
	word, err := strconv.ParseUint(code, 2, bits)
	if err != nil {
		return decoded{}, errors.New(errors.ErrCodeInvalidArgument, "code %q must contain only 0 and 1", code)
	}

	tbl, err := gray.Generate(bits)
	if err != nil {
		return decoded{}, err
	}
	tbl = tbl.Rotate(zeroOffset)
	pos, ok := tbl.Position(uint(word))
	if !ok {
		return decoded{}, errors.New(errors.ErrCodeInternal, "code %q not found in %d-bit table", code, bits)
	}

	size := track.PositionSize(bits)
	return decoded{
		position:  pos,
		positions: tbl.Len(),
		binary:    gray.Decode(uint(word)),
		start:     float64(pos) * size,
		end:       float64(pos+1) * size,
	}, nil
}
