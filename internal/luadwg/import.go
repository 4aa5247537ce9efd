package luadwg

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

// Import is the "go" object of a drawing script.
type Import struct {
	l     *lua.LState
	log   *structlog.Logger
	doc   *drawing.Memory
	store *attr.MemStore
	seq   int
}

func NewImport(log *structlog.Logger, L *lua.LState, name string) *Import {
	return &Import{
		l:     L,
		log:   log,
		doc:   drawing.NewMemory(name),
		store: attr.NewMemStore(),
	}
}

func (x *Import) Drawing() Drawing {
	return Drawing{Doc: x.doc, Store: x.store}
}

// Document renames the drawing. Call it before anything else.
func (x *Import) Document(name string) {
	if x.seq > 0 || len(x.doc.Entities()) > 0 {
		x.l.RaiseError("Document must be called first")
	}
	x.doc = drawing.NewMemory(name)
}

// Record stores a record of the given values and returns its handle.
// Numbers become reals, anything else text.
func (x *Import) Record(values ...lua.LValue) string {
	r := make(attr.Record, len(values))
	for i, v := range values {
		r[i] = pair(v)
	}
	return string(x.put(r))
}

func (x *Import) put(r attr.Record) attr.Handle {
	x.seq++
	h := handle(x.seq)
	x.store.Put(x.doc.Name(), h, r)
	return h
}

func (x *Import) record(values ...interface{}) attr.Handle {
	r := make(attr.Record, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case float64:
			r[i] = attr.Real(v)
		case string:
			r[i] = attr.Text(v)
		default:
			x.l.RaiseError("record value %d: unexpected %T", i+1, v)
		}
	}
	return x.put(r)
}

// Dictionary appends a record handle to a named dictionary.
func (x *Import) Dictionary(name, h string) {
	x.doc.AddToDictionary(name, attr.Handle(h))
}

func (x *Import) dict(name string, values ...interface{}) {
	x.doc.AddToDictionary(name, x.record(values...))
}

func (x *Import) Layer(name string) {
	x.doc.AddLayer(name)
}

func (x *Import) Material(name string, fc, e, strainFc, strainU, poisson, thermal, unitWeight float64) {
	x.dict(drawing.DictMaterials, name, fc, e, strainFc, strainU, poisson, thermal, unitWeight)
}

func (x *Import) LoadPattern(name, nature string) {
	x.dict(drawing.DictLoadPatterns, name, nature)
}

type frameSection struct {
	Name       string
	Shape      string
	Material   string
	Role       string
	Depth      float64
	Breadth    float64
	UnitWeight float64
}

// FrameSection takes {name=, shape=, material=, role=, depth=, breadth=, unit_weight=}.
func (x *Import) FrameSection(t *lua.LTable) {
	var s frameSection
	x.mapTable(t, &s)
	x.dict(drawing.DictFrameSecs, s.Name, s.Shape, s.Material, s.Role, s.Depth, s.Breadth, s.UnitWeight)
}

type slabSection struct {
	Name       string
	Material   string
	Thickness  float64
	// Alternate thickness, the same as Thickness when omitted.
	Alternate  float64
	UnitWeight float64
}

// SlabSection takes {name=, material=, thickness=, alternate=, unit_weight=}.
func (x *Import) SlabSection(t *lua.LTable) {
	var s slabSection
	x.mapTable(t, &s)
	if s.Alternate == 0 {
		s.Alternate = s.Thickness
	}
	x.dict(drawing.DictSlabSecs, s.Name, s.Material, s.Thickness, s.Alternate, s.UnitWeight)
}

func (x *Import) WallSection(name string, thickness float64, material string) {
	x.dict(drawing.DictWallSecs, name, thickness, material)
}

func (x *Import) Pier(name string) {
	x.dict(drawing.DictPiers, name)
}

func (x *Import) Spandrel(name string) {
	x.dict(drawing.DictSpandrels, name)
}

// entityOptions is the last table argument of Line, Face and Point.
type entityOptions struct {
	Section  string
	Wall     string
	Loads    [][]interface{}
	Pier     string
	Spandrel string
	Restrain string
}

// Line adds a line: go:Line(layer, {x,y,z}, {x,y,z}, {section=, loads={{start,end,dir,pattern}}}).
func (x *Import) Line(layer string, a, b *lua.LTable, opts ...*lua.LTable) string {
	return x.add(layer, drawing.KindLine, []drawing.Point3{x.point3(a), x.point3(b)}, opts)
}

// Face adds a 3D face: go:Face(layer, {{x,y,z} x4}, {section= or wall=,
// loads={{value,dir,pattern}}, pier=, spandrel=}).
func (x *Import) Face(layer string, vertices *lua.LTable, opts ...*lua.LTable) string {
	var vs []drawing.Point3
	vertices.ForEach(func(_, v lua.LValue) {
		t, ok := v.(*lua.LTable)
		if !ok {
			x.l.RaiseError("type error: %v: vertex table expected", v)
		}
		vs = append(vs, x.point3(t))
	})
	return x.add(layer, drawing.KindFace, vs, opts)
}

// Point adds a point: go:Point(layer, {x,y,z}, {restrain=}).
func (x *Import) Point(layer string, p *lua.LTable, opts ...*lua.LTable) string {
	return x.add(layer, drawing.KindPoint, []drawing.Point3{x.point3(p)}, opts)
}

func (x *Import) add(layer string, kind drawing.Kind, vs []drawing.Point3, opts []*lua.LTable) string {
	var o entityOptions
	if len(opts) > 0 && opts[0] != nil {
		x.mapTable(opts[0], &o)
	}
	ext := drawing.Extension{}
	single := func(key string, value string) {
		if value != "" {
			ext[key] = []attr.Handle{x.record(value)}
		}
	}
	single(drawing.KeySecProp, o.Section)
	single(drawing.KeyWallProp, o.Wall)
	single(drawing.KeyPierID, o.Pier)
	single(drawing.KeySpandrelID, o.Spandrel)
	single(drawing.KeyRestrain, o.Restrain)
	if len(o.Loads) > 0 {
		key := drawing.KeyDistLoads
		if kind == drawing.KindFace && o.Wall != "" {
			key = drawing.KeyWallDistLoads
		}
		for _, load := range o.Loads {
			ext[key] = append(ext[key], x.record(load...))
		}
	}
	x.seq++
	h := handle(x.seq)
	x.check(x.doc.Add(drawing.Entity{
		Handle:   string(h),
		Layer:    layer,
		Kind:     kind,
		Vertices: vs,
		Ext:      ext,
	}))
	x.log.Debug("entity added", "layer", layer, "kind", kind, "handle", h)
	return string(h)
}

func (x *Import) point3(t *lua.LTable) drawing.Point3 {
	if t == nil || t.Len() != 3 {
		x.l.RaiseError("type error: %v: table with three numbers expected", t)
	}
	var xs [3]float64
	for i := range xs {
		n, ok := t.RawGetInt(i + 1).(lua.LNumber)
		if !ok {
			x.l.RaiseError("type error: coordinate %d: number expected", i+1)
		}
		xs[i] = float64(n)
	}
	return drawing.Point3{X: xs[0], Y: xs[1], Z: xs[2]}
}

func (x *Import) mapTable(t *lua.LTable, out interface{}) {
	if err := gluamapper.Map(t, out); err != nil {
		x.check(merry.Wrap(err))
	}
}

func (x *Import) check(err error) {
	if err != nil {
		x.l.RaiseError("%s", err)
	}
}

func pair(v lua.LValue) attr.Pair {
	if n, ok := v.(lua.LNumber); ok {
		return attr.Real(float64(n))
	}
	return attr.Text(v.String())
}
