// Package attr reads the attribute records attached to drawing entities and
// named dictionaries. A record is a fixed-size ordered list of
// (classification code, value) pairs whose meaning is positional.
package attr

import (
	"math"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
)

// Handle addresses one attribute record within a drawing document.
type Handle string

// DXF group codes used for record values.
const (
	CodeText = 1
	CodeReal = 40
)

type Pair struct {
	Code  int    `db:"code"`
	Value string `db:"value"`
}

type Record []Pair

var (
	ErrSchemaSizeMismatch = merry.New("attribute record is shorter than its declared size")
	ErrBadValue           = merry.New("attribute value has unexpected type")
)

func Text(s string) Pair {
	return Pair{Code: CodeText, Value: s}
}

func Real(v float64) Pair {
	return Pair{Code: CodeReal, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

// String returns the i-th value as is. Out of range positions give "".
func (r Record) String(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i].Value
}

func (r Record) Float(i int) (float64, error) {
	if i < 0 || i >= len(r) {
		return 0, ErrSchemaSizeMismatch.Appendf("no value at position %d of %d", i, len(r))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r[i].Value), 64)
	if err != nil {
		return 0, ErrBadValue.Appendf("position %d: %q is not a number", i, r[i].Value)
	}
	return v, nil
}

// Int accepts integral reals too, so "6" and "6.0" both give 6.
func (r Record) Int(i int) (int, error) {
	v, err := r.Float(i)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, ErrBadValue.Appendf("position %d: %q is not an integer", i, r[i].Value)
	}
	return int(v), nil
}

// Floats parses every listed position, stopping at the first bad one.
func (r Record) Floats(positions ...int) ([]float64, error) {
	xs := make([]float64, len(positions))
	for n, i := range positions {
		v, err := r.Float(i)
		if err != nil {
			return nil, err
		}
		xs[n] = v
	}
	return xs, nil
}

// Sized checks that r holds at least size values and returns its first size pairs.
func Sized(r Record, size int) (Record, error) {
	if len(r) < size {
		return nil, ErrSchemaSizeMismatch.Appendf("got %d values, want %d", len(r), size)
	}
	return r[:size], nil
}
