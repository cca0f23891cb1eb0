// Package odontogram holds the tooth/surface/condition model of the dental
// chart and the geometry used to draw it. It has no storage dependencies.
package odontogram

import (
	"fmt"
	"strconv"
	"strings"
)

// GeneralTooth is accepted wherever a tooth number is optional, for
// treatments that apply to the whole mouth.
const GeneralTooth = "General"

// Arch is the jaw a tooth belongs to.
type Arch string

const (
	ArchUpper Arch = "upper"
	ArchLower Arch = "lower"
)

// Kind groups teeth by shape, which decides the label of the centre region.
type Kind string

const (
	KindIncisor  Kind = "incisor"
	KindCanine   Kind = "canine"
	KindPremolar Kind = "premolar"
	KindMolar    Kind = "molar"
)

// Chart rows in display order, viewer's left to right. The patient's right
// side (quadrants 1 and 4) is drawn on the viewer's left.
var (
	UpperRow = []int{18, 17, 16, 15, 14, 13, 12, 11, 21, 22, 23, 24, 25, 26, 27, 28}
	LowerRow = []int{48, 47, 46, 45, 44, 43, 42, 41, 31, 32, 33, 34, 35, 36, 37, 38}
)

// AllTeeth lists the 32 adult teeth in chart order, upper row first.
func AllTeeth() []int {
	out := make([]int, 0, len(UpperRow)+len(LowerRow))
	out = append(out, UpperRow...)
	return append(out, LowerRow...)
}

// IsValidTooth reports whether n is an adult FDI tooth number.
func IsValidTooth(n int) bool {
	q, p := n/10, n%10
	return q >= 1 && q <= 4 && p >= 1 && p <= 8
}

// ParseTooth parses a two-digit FDI tooth number.
func ParseTooth(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("tooth %q is not a number", s)
	}
	if !IsValidTooth(n) {
		return 0, fmt.Errorf("tooth %d is not an adult FDI tooth", n)
	}
	return n, nil
}

// IsValidToothLabel accepts an FDI number or GeneralTooth.
func IsValidToothLabel(s string) bool {
	if strings.EqualFold(s, GeneralTooth) {
		return true
	}
	_, err := ParseTooth(s)
	return err == nil
}

// Quadrant returns the FDI quadrant digit (1-4).
func Quadrant(tooth int) int {
	return tooth / 10
}

// Position returns the tooth-in-quadrant digit (1 central incisor .. 8 third molar).
func Position(tooth int) int {
	return tooth % 10
}

// ArchOf returns the jaw of the tooth.
func ArchOf(tooth int) Arch {
	if q := Quadrant(tooth); q == 1 || q == 2 {
		return ArchUpper
	}
	return ArchLower
}

// OnViewerLeft reports whether the tooth is drawn left of the midline,
// i.e. it is on the patient's right side.
func OnViewerLeft(tooth int) bool {
	q := Quadrant(tooth)
	return q == 1 || q == 4
}

// KindOf classifies a tooth by its position in the quadrant.
func KindOf(tooth int) Kind {
	switch p := Position(tooth); {
	case p <= 2:
		return KindIncisor
	case p == 3:
		return KindCanine
	case p <= 5:
		return KindPremolar
	default:
		return KindMolar
	}
}

// IsAnterior reports whether the tooth is an incisor or a canine.
func IsAnterior(tooth int) bool {
	k := KindOf(tooth)
	return k == KindIncisor || k == KindCanine
}

func rowOf(tooth int) []int {
	if ArchOf(tooth) == ArchUpper {
		return UpperRow
	}
	return LowerRow
}

func indexIn(row []int, tooth int) int {
	for i, t := range row {
		if t == tooth {
			return i
		}
	}
	return -1
}

// SpanTeeth returns every tooth between from and to inclusive, in chart
// order. Both ends must sit on the same arch; bridges never cross jaws.
func SpanTeeth(from, to int) ([]int, error) {
	if !IsValidTooth(from) || !IsValidTooth(to) {
		return nil, fmt.Errorf("invalid span %d-%d", from, to)
	}
	if ArchOf(from) != ArchOf(to) {
		return nil, fmt.Errorf("span %d-%d crosses arches", from, to)
	}
	row := rowOf(from)
	i, j := indexIn(row, from), indexIn(row, to)
	if i > j {
		i, j = j, i
	}
	out := make([]int, 0, j-i+1)
	out = append(out, row[i:j+1]...)
	return out, nil
}
