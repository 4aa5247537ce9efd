package translate

import (
	"fmt"
	"testing"

	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model/modeltest"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
	"github.com/stretchr/testify/require"
)

const docName = "tower.dwg"

type fixture struct {
	t     *testing.T
	doc   *drawing.Memory
	store *attr.MemStore
	seq   int
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, doc: drawing.NewMemory(docName), store: attr.NewMemStore()}
}

// record stores values as a text record and returns its handle.
func (x *fixture) record(values ...string) attr.Handle {
	x.seq++
	h := attr.Handle(fmt.Sprintf("X%d", x.seq))
	r := make(attr.Record, len(values))
	for i, v := range values {
		r[i] = attr.Text(v)
	}
	x.store.Put(docName, h, r)
	return h
}

func (x *fixture) dict(name string, values ...string) {
	x.doc.AddToDictionary(name, x.record(values...))
}

func (x *fixture) add(layer string, kind drawing.Kind, vs []drawing.Point3, ext drawing.Extension) {
	x.seq++
	require.NoError(x.t, x.doc.Add(drawing.Entity{
		Handle:   fmt.Sprintf("E%d", x.seq),
		Layer:    layer,
		Kind:     kind,
		Vertices: vs,
		Ext:      ext,
	}))
}

func (x *fixture) line(layer string, a, b drawing.Point3, ext drawing.Extension) {
	x.add(layer, drawing.KindLine, []drawing.Point3{a, b}, ext)
}

func (x *fixture) face(layer string, z float64, ext drawing.Extension) {
	x.add(layer, drawing.KindFace, []drawing.Point3{{X: 0, Y: 0, Z: z}, {X: 4, Y: 0, Z: z}, {X: 4, Y: 4, Z: z}, {X: 0, Y: 4, Z: z}}, ext)
}

func (x *fixture) point(layer string, p drawing.Point3, ext drawing.Extension) {
	x.add(layer, drawing.KindPoint, []drawing.Point3{p}, ext)
}

func (x *fixture) session(v variant.Variant, opts Options) (*Session, *modeltest.Recorder) {
	rec := modeltest.New()
	return NewSession(x.doc, x.store, rec, v, opts, structlog.New()), rec
}

func options(t *testing.T, scheme modifier.Scheme, selfWeight float64) Options {
	set, err := modifier.Resolve(scheme, modifier.Cracked, modifier.Slab3D)
	require.NoError(t, err)
	return Options{SelfWeight: selfWeight, Scheme: scheme, Modifiers: set}
}

func ext(kvs ...interface{}) drawing.Extension {
	x := drawing.Extension{}
	for i := 0; i < len(kvs); i += 2 {
		switch v := kvs[i+1].(type) {
		case attr.Handle:
			x[kvs[i].(string)] = []attr.Handle{v}
		case []attr.Handle:
			x[kvs[i].(string)] = v
		}
	}
	return x
}
