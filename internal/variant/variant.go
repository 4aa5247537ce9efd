// Package variant holds what differs between the supported analysis
// applications: enumeration codes, pattern spelling, load direction codes
// and the set of features an application offers to the importer.
package variant

import (
	"strings"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
)

// Load pattern natures declared in the drawing.
const (
	NatureDead  = "Dead"
	NatureLive  = "Live"
	NatureOther = "Other"
)

// Codes shared by both applications.
const (
	MaterialConcrete     = 2
	ConcreteStressStrain = 2
	ShellThin            = 1
	SlabTypeSlab         = 0
	WallTypeSpecified    = 1

	PatternDead  = 1
	PatternLive  = 3
	PatternOther = 8
)

type Variant struct {
	name string
	// Hysteresis code of the concrete stress-strain model.
	concreteHysteresis int
	dead, live         string
	predefinesLive     bool
	membraneShell      int
	dedicatedAreas     bool
	lateralLabels      bool
	baseFromColumns    bool
	altSlabThickness   bool
	directionRemap     map[int]int
}

// Etabs is Variant A.
var Etabs = Variant{
	name:               "ETABS",
	concreteHysteresis: 4,
	dead:               "Dead",
	live:               "Live",
	predefinesLive:     true,
	membraneShell:      3,
	dedicatedAreas:     true,
	lateralLabels:      true,
	baseFromColumns:    true,
}

// Sap2000 is Variant B.
var Sap2000 = Variant{
	name:               "SAP2000",
	concreteHysteresis: 2,
	dead:               "DEAD",
	live:               "LIVE",
	membraneShell:      5,
	altSlabThickness:   true,
	directionRemap:     map[int]int{6: 10, 9: 11},
}

var ErrUnknown = merry.New("unknown target program")

func Parse(s string) (Variant, error) {
	for _, v := range []Variant{Etabs, Sap2000} {
		if strings.EqualFold(v.name, strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return Variant{}, ErrUnknown.Appendf("%q", s)
}

func (v Variant) String() string {
	return v.name
}

func (v Variant) ConcreteHysteresis() int {
	return v.concreteHysteresis
}

// DeadPattern is the name of the predefined dead load pattern.
func (v Variant) DeadPattern() string {
	return v.dead
}

// LivePattern is the name of the live load pattern.
func (v Variant) LivePattern() string {
	return v.live
}

// PredefinesLive reports whether a blank model already has the live pattern.
func (v Variant) PredefinesLive() bool {
	return v.predefinesLive
}

// PatternType maps a declared nature to the pattern type code.
func (v Variant) PatternType(nature string) (int, bool) {
	switch nature {
	case NatureDead:
		return PatternDead, true
	case NatureLive:
		return PatternLive, true
	case NatureOther:
		return PatternOther, true
	}
	return 0, false
}

// RemapDirection maps a drawing load direction to the application's code.
func (v Variant) RemapDirection(dir int) int {
	if x, ok := v.directionRemap[dir]; ok {
		return x
	}
	return dir
}

// HasLateralLabels reports support of pier and spandrel labels.
func (v Variant) HasLateralLabels() bool {
	return v.lateralLabels
}

// HasBaseFromColumns reports support of the columns layer import mode which
// sets the base story elevation.
func (v Variant) HasBaseFromColumns() bool {
	return v.baseFromColumns
}

// HasAltSlabThickness reports whether slab records carry a dedicated
// thickness for this application, used with EgyptianStandard modifiers when
// self weight is not generated.
func (v Variant) HasAltSlabThickness() bool {
	return v.altSlabThickness
}

func (v Variant) SlabSection(name, material string, thickness float64) model.AreaSection {
	s := model.AreaSection{
		Name:      name,
		Material:  material,
		Role:      model.RoleSlab,
		ShellType: ShellThin,
		Thickness: thickness,
	}
	if v.dedicatedAreas {
		s.Dedicated = true
		s.SlabType = SlabTypeSlab
	} else {
		s.Bending = thickness
	}
	return s
}

func (v Variant) WallSection(name, material string, thickness float64) model.AreaSection {
	s := model.AreaSection{
		Name:      name,
		Material:  material,
		Role:      model.RoleWall,
		Thickness: thickness,
	}
	if v.dedicatedAreas {
		s.Dedicated = true
		s.SlabType = WallTypeSpecified
		s.ShellType = ShellThin
	} else {
		s.ShellType = v.membraneShell
		s.Bending = thickness
	}
	return s
}
