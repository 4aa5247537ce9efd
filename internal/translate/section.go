package translate

import (
	"strings"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
)

const rebarMaterial = "A615Gr60"

// Reinforcement is not drawn, every section gets these.
var (
	DefaultBeamRebar = model.BeamRebar{
		LongitudinalMaterial: rebarMaterial,
		ConfinementMaterial:  rebarMaterial,
		CoverTop:             0.06,
		CoverBottom:          0.06,
	}
	DefaultColumnRebar = model.ColumnRebar{
		LongitudinalMaterial: rebarMaterial,
		ConfinementMaterial:  rebarMaterial,
		Pattern:              1,
		ConfinementType:      1,
		Cover:                0.04,
		NumberR3Bars:         3,
		NumberR2Bars:         5,
		RebarSize:            "#20",
		TieSize:              "#10",
		TieSpacing:           0.015,
	}
)

// DefineFrameSections creates a frame section per record of the frame section
// dictionary: [name, shape, material, role, depth or diameter, breadth or
// radius, unit weight].
func (s *Session) DefineFrameSections() error {
	log := s.Log.New(structlog.KeyUnit, "frmsec")
	return s.eachRecord(drawing.DictFrameSecs, sizeFrameSection, func(r attr.Record) error {
		name, shape, material, role := r.String(0), r.String(1), r.String(2), r.String(3)
		sec := model.FrameSection{Name: name, Material: material}
		depth, err := r.Float(4)
		if err != nil {
			return merry.Appendf(err, "frame section %q", name)
		}
		if isRectangular(shape) {
			width, err := r.Float(5)
			if err != nil {
				return merry.Appendf(err, "frame section %q", name)
			}
			sec.Shape, sec.Depth, sec.Width = model.ShapeRectangle, depth, width
		} else {
			sec.Shape, sec.Depth = model.ShapeCircle, depth
		}
		if err := s.Model.DefineFrameSection(sec); err != nil {
			return merry.Appendf(err, "frame section %q", name)
		}
		s.Counts.FrameSections++

		switch role {
		case "Beam":
			err = calls(
				func() error { return s.Model.SetBeamRebar(name, DefaultBeamRebar) },
				func() error { return s.Model.SetFrameModifiers(name, s.Options.Modifiers.Beam) },
			)
		case "Column":
			err = calls(
				func() error { return s.Model.SetColumnRebar(name, DefaultColumnRebar) },
				func() error { return s.Model.SetFrameModifiers(name, s.Options.Modifiers.Column) },
			)
		default:
			log.Warn("frame section has no known role: no rebar and modifiers", "section", name, "role", role)
		}
		if err != nil {
			return merry.Appendf(err, "frame section %q", name)
		}
		log.Debug("frame section defined", "section", name, "shape", sec.Shape, "role", role)
		return nil
	})
}

func isRectangular(shape string) bool {
	switch strings.ToLower(strings.TrimSpace(shape)) {
	case "rec", "rect", "rectangular", "rectangle":
		return true
	}
	return false
}

// SlabThicknessColumn returns the slab record position holding the thickness
// used for this run.
func (s *Session) SlabThicknessColumn() int {
	if s.Options.Scheme == modifier.EgyptianStandard && s.Variant.HasAltSlabThickness() && s.Options.SelfWeight == 0 {
		return 3
	}
	return 2
}

// DefineSlabSections creates a thin shell slab per record of the slab
// dictionary: [name, material, thickness, alternate thickness, unit weight].
func (s *Session) DefineSlabSections() error {
	log := s.Log.New(structlog.KeyUnit, "slabsec")
	column := s.SlabThicknessColumn()
	return s.eachRecord(drawing.DictSlabSecs, sizeSlabSection, func(r attr.Record) error {
		name, material := r.String(0), r.String(1)
		thickness, err := r.Float(column)
		if err != nil {
			return merry.Appendf(err, "slab section %q", name)
		}
		if err := s.defineArea(s.Variant.SlabSection(name, material, thickness), s.Options.Modifiers.Slab); err != nil {
			return err
		}
		log.Debug("slab section defined", "section", name, "thickness", thickness)
		return nil
	})
}

// DefineWallSections creates a wall per record of the wall dictionary:
// [name, thickness, material].
func (s *Session) DefineWallSections() error {
	log := s.Log.New(structlog.KeyUnit, "wallsec")
	return s.eachRecord(drawing.DictWallSecs, sizeWallSection, func(r attr.Record) error {
		name, material := r.String(0), r.String(2)
		thickness, err := r.Float(1)
		if err != nil {
			return merry.Appendf(err, "wall section %q", name)
		}
		if err := s.defineArea(s.Variant.WallSection(name, material, thickness), s.Options.Modifiers.Wall); err != nil {
			return err
		}
		log.Debug("wall section defined", "section", name, "thickness", thickness)
		return nil
	})
}

func (s *Session) defineArea(sec model.AreaSection, modifiers modifier.Area) error {
	err := calls(
		func() error { return s.Model.DefineAreaSection(sec) },
		func() error { return s.Model.SetAreaModifiers(sec.Name, modifiers) },
	)
	if err != nil {
		return merry.Appendf(err, "%s section %q", sec.Role, sec.Name)
	}
	s.Counts.AreaSections++
	return nil
}

// DefineSections creates frame, slab and wall sections in that order.
func (s *Session) DefineSections() error {
	return calls(s.DefineFrameSections, s.DefineSlabSections, s.DefineWallSections)
}
