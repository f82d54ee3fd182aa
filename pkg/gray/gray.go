package gray

import (
	"math/bits"

	"github.com/matzehuels/encoderdisk/pkg/errors"
)

// MaxBits bounds the table size at 2^20 rows. Wider codes are not
// manufacturable as disk tracks and would only exhaust memory.
const MaxBits = 20

// Row is one code word, most significant bit first.
type Row []bool

// Table is a complete Gray code: Len() == 2^Bits() rows indexed by angular
// position. A Table is immutable once built; accessors return copies.
type Table struct {
	bits   int
	rows   []Row
	offset int // rotation applied by Rotate
}

// Generate builds the reflected binary code table for the given width.
// It returns an INVALID_ARGUMENT error if bits is outside [1, MaxBits].
func Generate(bits int) (Table, error) {
	if err := errors.ValidateIntRange("bits", bits, 1, MaxBits); err != nil {
		return Table{}, err
	}

	rows := []Row{{false}, {true}}
	if bits == 1 {
		return Table{bits: 1, rows: rows}, nil
	}

	for width := 1; width < bits; width++ {
		half := len(rows)
		rows = append(rows, make([]Row, half)...)
		for i := 0; i < half; i++ {
			rows[half+i] = rows[half-1-i]
		}
		for i := range rows {
			prefixed := make(Row, 0, width+1)
			prefixed = append(prefixed, i >= half)
			rows[i] = append(prefixed, rows[i]...)
		}
	}

	return Table{bits: bits, rows: rows}, nil
}

// Bits returns the code width.
func (t Table) Bits() int { return t.bits }

// Len returns the number of angular positions, 2^Bits().
func (t Table) Len() int { return len(t.rows) }

// Row returns a copy of the code word at position i.
func (t Table) Row(i int) Row {
	return append(Row(nil), t.rows[i]...)
}

// Rows returns a copy of every row in position order.
func (t Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Rotate returns the table shifted so that position 0 of the result is
// position k of t. The Gray adjacency property survives rotation; the
// all-false row moves to position (Len()-k) mod Len().
func (t Table) Rotate(k int) Table {
	n := len(t.rows)
	if n == 0 {
		return t
	}
	k = ((k % n) + n) % n
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = t.Row((i + k) % n)
	}
	return Table{bits: t.bits, rows: rows, offset: (t.offset + k) % n}
}

// Bit reports the value of bit (0 = MSB) at position i.
func (t Table) Bit(i, bit int) bool { return t.rows[i][bit] }

// Column returns the values of one bit across all positions, which is the
// pattern printed on that bit's track.
func (t Table) Column(bit int) []bool {
	col := make([]bool, len(t.rows))
	for i, r := range t.rows {
		col[i] = r[bit]
	}
	return col
}

// Word returns the code word at position i packed into an integer, MSB first.
func (t Table) Word(i int) uint {
	var w uint
	for _, b := range t.rows[i] {
		w <<= 1
		if b {
			w |= 1
		}
	}
	return w
}

// Position returns the angular position whose code word equals word.
// ok is false if word does not fit in Bits() bits.
func (t Table) Position(word uint) (pos int, ok bool) {
	if t.bits == 0 || word >= uint(len(t.rows)) {
		return 0, false
	}
	n := len(t.rows)
	return (int(Decode(word)) - t.offset + n) % n, true
}

// Encode returns the Gray code word of position i.
func Encode(i uint) uint { return i ^ (i >> 1) }

// Decode inverts Encode by folding the prefix XOR of the word.
func Decode(word uint) uint {
	for shift := uint(1); shift < bits.UintSize; shift <<= 1 {
		word ^= word >> shift
	}
	return word
}

// Distance returns the number of positions in which a and b differ.
func Distance(a, b Row) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
