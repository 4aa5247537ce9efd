package translate

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
)

const concreteFinalSlope = -0.1

// DefineMaterials creates a concrete material per record of the material
// dictionary: [name, Fc, E, strain at Fc, ultimate strain, Poisson ratio,
// thermal coefficient, unit weight].
func (s *Session) DefineMaterials() error {
	log := s.Log.New(structlog.KeyUnit, "material")
	return s.eachRecord(drawing.DictMaterials, sizeMaterial, func(r attr.Record) error {
		name := r.String(0)
		xs, err := r.Floats(1, 2, 3, 4, 5, 6, 7)
		if err != nil {
			return merry.Appendf(err, "material %q", name)
		}
		fc, e, strainFc, strainU, poisson, thermal, weight := xs[0], xs[1], xs[2], xs[3], xs[4], xs[5], xs[6]
		err = calls(
			func() error {
				return s.Model.DefineMaterial(name, variant.MaterialConcrete)
			},
			func() error {
				return s.Model.SetConcreteModel(name, model.Concrete{
					Fc:             fc,
					StressStrain:   variant.ConcreteStressStrain,
					Hysteresis:     s.Variant.ConcreteHysteresis(),
					StrainAtFc:     strainFc,
					StrainUltimate: strainU,
					FinalSlope:     concreteFinalSlope,
				})
			},
			func() error {
				return s.Model.SetWeightAndMass(name, weight)
			},
			func() error {
				return s.Model.SetElasticIsotropic(name, model.Elastic{E: e, Poisson: poisson, Thermal: thermal})
			},
		)
		if err != nil {
			return merry.Appendf(err, "material %q", name)
		}
		s.Counts.Materials++
		log.Info("material defined", "material", name, "fc", fc, "e", e, "weight", weight)
		return nil
	})
}
