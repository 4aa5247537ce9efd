// Package modifier resolves a named stiffness-modifier scheme into the
// modifier vectors applied to beam, column, slab and wall sections.
package modifier

import (
	"strings"

	"github.com/ansel1/merry"
)

// Frame holds frame section multipliers in the order
// axial, shear2, shear3, torsion, bend2, bend3, mass, weight.
type Frame [8]float64

// Area holds area section multipliers in the order
// f11, f22, f12, m11, m22, m12, v13, v23, mass, weight.
type Area [10]float64

const (
	FrameTorsion = 3
	FrameBend2   = 4
	FrameBend3   = 5

	AreaM11 = 3
	AreaM22 = 4
	AreaM12 = 5
)

type Scheme string

const (
	AllOnes          Scheme = "AllOnes"
	ACI31811         Scheme = "ACI318-11"
	TorsionOnly      Scheme = "TorsionOnly"
	EgyptianStandard Scheme = "EgyptianStandard"
)

var Schemes = []Scheme{AllOnes, ACI31811, TorsionOnly, EgyptianStandard}

type WallCrack string

const (
	Cracked   WallCrack = "cracked"
	Uncracked WallCrack = "uncracked"
)

type SlabDimension string

const (
	Slab2D SlabDimension = "2D"
	Slab3D SlabDimension = "3D"
)

var (
	ErrUnknownScheme    = merry.New("unknown section modifiers scheme")
	ErrUnknownCrack     = merry.New("unknown wall crack mode")
	ErrUnknownDimension = merry.New("unknown slab dimension")
)

// labels of the import form are accepted as scheme names too
var schemeLabels = map[string]Scheme{
	"All set to 1":             AllOnes,
	"As Per ACI M318 11":       ACI31811,
	"Torsional Modifiers Only": TorsionOnly,
	"Egyptian Standard":        EgyptianStandard,
}

func ParseScheme(s string) (Scheme, error) {
	s = strings.TrimSpace(s)
	for _, x := range Schemes {
		if strings.EqualFold(string(x), s) {
			return x, nil
		}
	}
	if x, ok := schemeLabels[s]; ok {
		return x, nil
	}
	return "", ErrUnknownScheme.Appendf("%q", s)
}

func ParseWallCrack(s string) (WallCrack, error) {
	switch WallCrack(strings.ToLower(strings.TrimSpace(s))) {
	case Cracked:
		return Cracked, nil
	case Uncracked:
		return Uncracked, nil
	}
	return "", ErrUnknownCrack.Appendf("%q", s)
}

func ParseSlabDimension(s string) (SlabDimension, error) {
	switch SlabDimension(strings.ToUpper(strings.TrimSpace(s))) {
	case Slab2D:
		return Slab2D, nil
	case Slab3D:
		return Slab3D, nil
	}
	return "", ErrUnknownDimension.Appendf("%q", s)
}

// Set is the outcome of one resolution, fixed for a whole import run.
type Set struct {
	Beam   Frame
	Column Frame
	Slab   Area
	Wall   Area
}

func frameOnes() Frame {
	return Frame{1, 1, 1, 1, 1, 1, 1, 1}
}

func areaOnes() Area {
	return Area{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
}

// Resolve maps a scheme and the wall crack and slab dimension options to the
// modifier vectors. AllOnes and TorsionOnly ignore both options.
func Resolve(scheme Scheme, crack WallCrack, dim SlabDimension) (Set, error) {
	s := Set{Beam: frameOnes(), Column: frameOnes(), Slab: areaOnes(), Wall: areaOnes()}
	switch scheme {
	case AllOnes:
		return s, nil
	case TorsionOnly:
		s.Beam[FrameTorsion] = 0.01
		s.Column[FrameTorsion] = 0.1
		return s, nil
	case ACI31811:
		s.Beam[FrameTorsion] = 0.01
		s.Beam[FrameBend2], s.Beam[FrameBend3] = 0.35, 0.35
		s.Column[FrameTorsion] = 0.1
		s.Column[FrameBend2], s.Column[FrameBend3] = 0.7, 0.7
		if err := slab3D(dim, func() {
			s.Slab[AreaM11], s.Slab[AreaM22] = 0.25, 0.25
		}); err != nil {
			return Set{}, err
		}
	case EgyptianStandard:
		s.Beam[FrameTorsion] = 0.01
		if err := slab3D(dim, func() {
			s.Slab[AreaM22], s.Slab[AreaM12] = 0.2, 0.2
		}); err != nil {
			return Set{}, err
		}
	default:
		return Set{}, ErrUnknownScheme.Appendf("%q", scheme)
	}
	w, err := wallBending(crack)
	if err != nil {
		return Set{}, err
	}
	s.Wall[AreaM11], s.Wall[AreaM22] = w, w
	return s, nil
}

func slab3D(dim SlabDimension, apply func()) error {
	switch dim {
	case Slab2D:
		return nil
	case Slab3D:
		apply()
		return nil
	}
	return ErrUnknownDimension.Appendf("%q", dim)
}

func wallBending(crack WallCrack) (float64, error) {
	switch crack {
	case Cracked:
		return 0.35, nil
	case Uncracked:
		return 0.7, nil
	}
	return 0, ErrUnknownCrack.Appendf("%q", crack)
}
