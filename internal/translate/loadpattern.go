package translate

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
)

// DefineLoadPatterns sets the dead pattern self weight multiplier and adds
// the other patterns of the load pattern dictionary: [name, nature].
func (s *Session) DefineLoadPatterns() error {
	log := s.Log.New(structlog.KeyUnit, "pattern")
	v := s.Variant
	if !v.PredefinesLive() {
		if err := s.Model.DefinePattern(v.LivePattern(), variant.PatternLive); err != nil {
			return merry.Appendf(err, "pattern %q", v.LivePattern())
		}
		s.Counts.Patterns++
	}
	return s.eachRecord(drawing.DictLoadPatterns, sizeLoadPattern, func(r attr.Record) error {
		name, nature := r.String(0), r.String(1)
		switch name {
		case variant.NatureDead:
			if err := s.Model.SetSelfWeightMultiplier(v.DeadPattern(), s.Options.SelfWeight); err != nil {
				return merry.Appendf(err, "pattern %q", v.DeadPattern())
			}
			log.Debug("self weight multiplier set", "pattern", v.DeadPattern(), "multiplier", s.Options.SelfWeight)
			return nil
		case variant.NatureLive:
			return nil
		}
		patternType, ok := v.PatternType(nature)
		if !ok {
			log.Warn("load pattern skipped: unknown nature", "pattern", name, "nature", nature)
			return nil
		}
		if err := s.Model.DefinePattern(name, patternType); err != nil {
			return merry.Appendf(err, "pattern %q", name)
		}
		s.Counts.Patterns++
		log.Debug("load pattern defined", "pattern", name, "nature", nature)
		return nil
	})
}
