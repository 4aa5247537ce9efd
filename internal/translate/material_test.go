package translate

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c30(x *fixture) {
	x.dict(drawing.DictMaterials, "C30", "30", "27000", "0.002", "0.0035", "0.2", "0.00001", "24")
}

func TestDefineMaterials(t *testing.T) {
	for _, v := range []variant.Variant{variant.Etabs, variant.Sap2000} {
		t.Run(v.String(), func(t *testing.T) {
			x := newFixture(t)
			c30(x)
			s, rec := x.session(v, options(t, modifier.AllOnes, 1))
			require.NoError(t, s.DefineMaterials())

			assert.Equal(t, []string{"DefineMaterial", "SetConcreteModel", "SetWeightAndMass", "SetElasticIsotropic"}, rec.Methods())
			calls := rec.Calls()
			assert.Equal(t, variant.MaterialConcrete, calls[0].Args)
			assert.Equal(t, model.Concrete{
				Fc:             30,
				StressStrain:   2,
				Hysteresis:     v.ConcreteHysteresis(),
				StrainAtFc:     0.002,
				StrainUltimate: 0.0035,
				FinalSlope:     -0.1,
			}, calls[1].Args)
			assert.Equal(t, 24.0, calls[2].Args)
			assert.Equal(t, model.Elastic{E: 27000, Poisson: 0.2, Thermal: 0.00001}, calls[3].Args)
			for _, c := range calls {
				assert.Equal(t, "C30", c.Object)
			}
			assert.Equal(t, 1, s.Counts.Materials)
		})
	}
	assert.Equal(t, 4, variant.Etabs.ConcreteHysteresis())
	assert.Equal(t, 2, variant.Sap2000.ConcreteHysteresis())
}

func TestDefineMaterialsShortRecord(t *testing.T) {
	x := newFixture(t)
	x.dict(drawing.DictMaterials, "C30", "30", "27000")
	s, rec := x.session(variant.Etabs, options(t, modifier.AllOnes, 1))
	err := s.DefineMaterials()
	require.Error(t, err)
	assert.True(t, merry.Is(err, attr.ErrSchemaSizeMismatch))
	assert.Empty(t, rec.Calls())
}

func TestDefineMaterialsBadNumber(t *testing.T) {
	x := newFixture(t)
	x.dict(drawing.DictMaterials, "C30", "thirty", "27000", "0.002", "0.0035", "0.2", "0.00001", "24")
	s, _ := x.session(variant.Etabs, options(t, modifier.AllOnes, 1))
	err := s.DefineMaterials()
	require.Error(t, err)
	assert.True(t, merry.Is(err, attr.ErrBadValue))
}

func TestDefineMaterialsModelFailure(t *testing.T) {
	x := newFixture(t)
	c30(x)
	c30(x)
	s, rec := x.session(variant.Etabs, options(t, modifier.AllOnes, 1))
	errRejected := merry.New("rejected")
	rec.FailOn("SetWeightAndMass", errRejected)
	err := s.DefineMaterials()
	require.Error(t, err)
	assert.True(t, merry.Is(err, errRejected))
	assert.Equal(t, []string{"DefineMaterial", "SetConcreteModel", "SetWeightAndMass"}, rec.Methods())
}
