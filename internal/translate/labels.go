package translate

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
)

// labelNone marks an area without a pier or spandrel.
const labelNone = "None"

// RegisterLateralLabels registers every pier and spandrel label of the
// drawing. Areas are assigned labels by name, so this goes first.
// Applications without lateral labels skip it.
func (s *Session) RegisterLateralLabels() error {
	log := s.Log.New(structlog.KeyUnit, "labels")
	if !s.Variant.HasLateralLabels() {
		log.Debug("pier and spandrel labels are not supported", "target", s.Variant)
		return nil
	}
	err := s.eachRecord(drawing.DictPiers, sizeLabel, func(r attr.Record) error {
		if err := s.Model.RegisterPier(r.String(0)); err != nil {
			return merry.Appendf(err, "pier %q", r.String(0))
		}
		s.Counts.Piers++
		return nil
	})
	if err != nil {
		return err
	}
	return s.eachRecord(drawing.DictSpandrels, sizeLabel, func(r attr.Record) error {
		if err := s.Model.RegisterSpandrel(r.String(0), false); err != nil {
			return merry.Appendf(err, "spandrel %q", r.String(0))
		}
		s.Counts.Spandrels++
		return nil
	})
}
