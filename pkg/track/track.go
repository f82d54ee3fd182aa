// Package track turns one bit-column of a Gray code table into the angular
// runs printed on that bit's track.
//
// Each table position i covers the sector [i*PositionSize, (i+1)*PositionSize)
// degrees. A run of length L starting at S covers [S*size, (S+L)*size).
package track

import (
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/gray"
)

// Run is a maximal contiguous sequence of positions at which Bit is set.
type Run struct {
	Bit    int `json:"bit"`
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the first position after the run. For runs produced by
// ExtractCircularRuns it may exceed the table length.
func (r Run) End() int { return r.Start + r.Length }

// StartAngle returns the run's starting angle in degrees for a bits-wide code.
func (r Run) StartAngle(bits int) float64 { return float64(r.Start) * PositionSize(bits) }

// Span returns the angle covered by the run in degrees.
func (r Run) Span(bits int) float64 { return float64(r.Length) * PositionSize(bits) }

// PositionSize returns the angular width in degrees of one table position.
func PositionSize(bits int) float64 { return 360.0 / float64(uint(1)<<uint(bits)) }

// ExtractRuns scans positions 0..Len()-1 for the given bit and returns its
// runs in increasing start order. A run that reaches the last position is
// closed there and is not joined with a run starting at position 0.
func ExtractRuns(t gray.Table, bit int) ([]Run, error) {
	if err := checkBit(t, bit); err != nil {
		return nil, err
	}

	var (
		runs  []Run
		start int
		open  bool
	)
	for i := 0; i < t.Len(); i++ {
		set := t.Bit(i, bit)
		switch {
		case set && !open:
			start, open = i, true
		case !set && open:
			runs = append(runs, Run{Bit: bit, Start: start, Length: i - start})
			open = false
		}
	}
	if open {
		runs = append(runs, Run{Bit: bit, Start: start, Length: t.Len() - start})
	}
	return runs, nil
}

// ExtractCircularRuns is ExtractRuns with wrap-around merging: a run that
// ends at the last position and a run that begins at position 0 become one
// run starting at the former's start and extending past Len().
//
// The scan starts at the first false-to-true transition, so every run is
// seen whole and runs come out in increasing start order. A column that is
// entirely set yields one run covering the full circle.
//
// A table straight from gray.Generate never needs merging since position 0
// is all false; rotated tables (see gray.Table.Rotate) do.
func ExtractCircularRuns(t gray.Table, bit int) ([]Run, error) {
	if err := checkBit(t, bit); err != nil {
		return nil, err
	}

	n := t.Len()
	origin := -1
	for i := 0; i < n; i++ {
		if t.Bit(i, bit) && !t.Bit((i+n-1)%n, bit) {
			origin = i
			break
		}
	}
	if origin < 0 {
		if n > 0 && t.Bit(0, bit) {
			return []Run{{Bit: bit, Start: 0, Length: n}}, nil
		}
		return nil, nil
	}

	var runs []Run
	for k := 0; k < n; {
		i := (origin + k) % n
		if !t.Bit(i, bit) {
			k++
			continue
		}
		length := 0
		for k < n && t.Bit((origin+k)%n, bit) {
			length++
			k++
		}
		runs = append(runs, Run{Bit: bit, Start: i, Length: length})
	}

	return runs, nil
}

// TrueCount returns the number of positions at which bit is set.
func TrueCount(t gray.Table, bit int) int {
	n := 0
	for i := 0; i < t.Len(); i++ {
		if t.Bit(i, bit) {
			n++
		}
	}
	return n
}

func checkBit(t gray.Table, bit int) error {
	if t.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "empty code table")
	}
	if bit < 0 || bit >= t.Bits() {
		return errors.New(errors.ErrCodeInvalidArgument, "bit index %d out of range [0, %d)", bit, t.Bits())
	}
	return nil
}
