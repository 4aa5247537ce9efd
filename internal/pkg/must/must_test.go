package must

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPanicIf(t *testing.T) {
	assert.NotPanics(t, func() { PanicIf(nil) })
	assert.Panics(t, func() { PanicIf(merry.New("boom")) })
}

func TestMarshalYaml(t *testing.T) {
	type options struct {
		Target string  `yaml:"target"`
		Value  float64 `yaml:"value"`
	}
	b := MarshalYaml(options{Target: "etabs", Value: 0.35})
	var got options
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, options{Target: "etabs", Value: 0.35}, got)
	assert.Panics(t, func() { MarshalYaml(func() {}) })
}
