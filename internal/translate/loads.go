package translate

import (
	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
)

// Distributed load shape: uniform or trapezoidal over the whole frame.
const loadTypeForce = 1

// LoadPattern resolves the drawn pattern name of a load to the pattern it
// is applied under. It reports false for loads that must not be emitted.
func (s *Session) LoadPattern(pattern string, wall bool) (string, bool) {
	switch pattern {
	case variant.NatureDead:
		if wall || s.Options.SelfWeight == 1 {
			return "", false
		}
		return s.Variant.DeadPattern(), true
	case variant.NatureLive:
		return s.Variant.LivePattern(), true
	case s.Variant.DeadPattern():
		return "", false
	}
	return pattern, true
}

// LoadCoordSys is local for directions 1 to 3 and global otherwise.
func LoadCoordSys(dir int) model.CoordSys {
	if dir >= 1 && dir <= 3 {
		return model.Local
	}
	return model.Global
}

// applyFrameLoads applies the [start, end, direction, pattern] records of
// the entity's distributed loads to the frame.
func (s *Session) applyFrameLoads(frame string, e drawing.Entity) error {
	handles, ok := e.Ext.Collection(drawing.KeyDistLoads)
	if !ok {
		return nil
	}
	for _, h := range handles {
		r, err := s.fetch(h, sizeFrameLoad)
		if err != nil {
			return merry.Appendf(err, "frame %q load %s", frame, h)
		}
		values, err := r.Floats(0, 1)
		if err != nil {
			return merry.Appendf(err, "frame %q load %s", frame, h)
		}
		dir, err := r.Int(2)
		if err != nil {
			return merry.Appendf(err, "frame %q load %s", frame, h)
		}
		pattern, ok := s.LoadPattern(r.String(3), false)
		if !ok {
			s.Log.Debug("frame load skipped", "frame", frame, "pattern", r.String(3))
			continue
		}
		l := model.DistributedLoad{
			Pattern: pattern,
			Type:    loadTypeForce,
			Dir:     s.Variant.RemapDirection(dir),
			Dist1:   0,
			Dist2:   1,
			Val1:    values[0],
			Val2:    values[1],
			CSys:    LoadCoordSys(dir),
			RelDist: true,
			Replace: true,
		}
		if err := s.Model.SetDistributedLoad(frame, l); err != nil {
			return merry.Appendf(err, "frame %q load %s", frame, h)
		}
		s.Counts.Loads++
	}
	return nil
}

// applyAreaLoads applies the [value, direction, pattern] records of the
// entity's uniform loads to the area.
func (s *Session) applyAreaLoads(area string, e drawing.Entity, wall bool) error {
	handles, ok := e.Ext.Collection(drawing.KeyDistLoads)
	if !ok {
		handles, ok = e.Ext.Collection(drawing.KeyWallDistLoads)
	}
	if !ok {
		return nil
	}
	for _, h := range handles {
		r, err := s.fetch(h, sizeAreaLoad)
		if err != nil {
			return merry.Appendf(err, "area %q load %s", area, h)
		}
		value, err := r.Float(0)
		if err != nil {
			return merry.Appendf(err, "area %q load %s", area, h)
		}
		dir, err := r.Int(1)
		if err != nil {
			return merry.Appendf(err, "area %q load %s", area, h)
		}
		pattern, ok := s.LoadPattern(r.String(2), wall)
		if !ok {
			s.Log.Debug("area load skipped", "area", area, "pattern", r.String(2), "wall", wall)
			continue
		}
		l := model.UniformLoad{
			Pattern: pattern,
			Value:   value,
			Dir:     s.Variant.RemapDirection(dir),
			Replace: true,
			CSys:    LoadCoordSys(dir),
		}
		if err := s.Model.SetUniformLoad(area, l); err != nil {
			return merry.Appendf(err, "area %q load %s", area, h)
		}
		s.Counts.Loads++
	}
	return nil
}
