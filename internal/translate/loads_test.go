package translate

import (
	"testing"

	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
	"github.com/stretchr/testify/assert"
)

func TestLoadPattern(t *testing.T) {
	type want struct {
		pattern string
		ok      bool
	}
	cases := []struct {
		v          variant.Variant
		selfWeight float64
		pattern    string
		wall       bool
		want       want
	}{
		{variant.Etabs, 1, "Dead", false, want{"", false}},
		{variant.Etabs, 0, "Dead", false, want{"Dead", true}},
		{variant.Etabs, 0, "Dead", true, want{"", false}},
		{variant.Etabs, 2, "Dead", false, want{"Dead", true}},
		{variant.Sap2000, 0, "Dead", false, want{"DEAD", true}},
		{variant.Sap2000, 1, "Live", true, want{"LIVE", true}},
		{variant.Etabs, 1, "Live", false, want{"Live", true}},
		{variant.Sap2000, 0, "DEAD", false, want{"", false}},
		{variant.Etabs, 0, "DEAD", false, want{"DEAD", true}},
		{variant.Sap2000, 0, "SDL", true, want{"SDL", true}},
	}
	for _, c := range cases {
		x := newFixture(t)
		s, _ := x.session(c.v, options(t, modifier.AllOnes, c.selfWeight))
		pattern, ok := s.LoadPattern(c.pattern, c.wall)
		assert.Equal(t, c.want, want{pattern, ok}, "%s %v %q wall=%v", c.v, c.selfWeight, c.pattern, c.wall)
	}
}

func TestLoadCoordSys(t *testing.T) {
	for dir := -1; dir <= 12; dir++ {
		want := model.Global
		if dir >= 1 && dir <= 3 {
			want = model.Local
		}
		assert.Equal(t, want, LoadCoordSys(dir), "dir %d", dir)
	}
}
