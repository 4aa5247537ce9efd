// Package modeltest provides a recording model.Session for tests.
package modeltest

import (
	"sync"

	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
)

type Call struct {
	Method string
	Object string
	Args   interface{}
}

type Frame struct {
	Section    string
	Start, End drawing.Point3
}

type Area struct {
	Section  string
	Vertices []drawing.Point3
}

// Recorder records every call in order. Failing methods return the error
// set with FailOn and are recorded too.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	fail   map[string]error
	closed bool
}

var _ model.Session = new(Recorder)

func New() *Recorder {
	return &Recorder{fail: make(map[string]error)}
}

func (x *Recorder) FailOn(method string, err error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.fail[method] = err
}

func (x *Recorder) Calls() []Call {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]Call(nil), x.calls...)
}

// Find returns the calls of method in order.
func (x *Recorder) Find(method string) []Call {
	var xs []Call
	for _, c := range x.Calls() {
		if c.Method == method {
			xs = append(xs, c)
		}
	}
	return xs
}

// FindObject returns the calls of method made for object.
func (x *Recorder) FindObject(method, object string) []Call {
	var xs []Call
	for _, c := range x.Find(method) {
		if c.Object == object {
			xs = append(xs, c)
		}
	}
	return xs
}

// Methods lists the method names of all calls in order.
func (x *Recorder) Methods() []string {
	var xs []string
	for _, c := range x.Calls() {
		xs = append(xs, c.Method)
	}
	return xs
}

func (x *Recorder) Closed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.closed
}

func (x *Recorder) record(method, object string, args interface{}) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.calls = append(x.calls, Call{Method: method, Object: object, Args: args})
	return x.fail[method]
}

func (x *Recorder) InitializeNewModel(units int) error {
	return x.record("InitializeNewModel", "", units)
}

func (x *Recorder) NewBlank() error {
	return x.record("NewBlank", "", nil)
}

func (x *Recorder) DefineMaterial(name string, materialType int) error {
	return x.record("DefineMaterial", name, materialType)
}

func (x *Recorder) SetConcreteModel(name string, c model.Concrete) error {
	return x.record("SetConcreteModel", name, c)
}

func (x *Recorder) SetWeightAndMass(name string, weight float64) error {
	return x.record("SetWeightAndMass", name, weight)
}

func (x *Recorder) SetElasticIsotropic(name string, e model.Elastic) error {
	return x.record("SetElasticIsotropic", name, e)
}

func (x *Recorder) DefinePattern(name string, patternType int) error {
	return x.record("DefinePattern", name, patternType)
}

func (x *Recorder) SetSelfWeightMultiplier(name string, m float64) error {
	return x.record("SetSelfWeightMultiplier", name, m)
}

func (x *Recorder) DefineFrameSection(s model.FrameSection) error {
	return x.record("DefineFrameSection", s.Name, s)
}

func (x *Recorder) SetBeamRebar(section string, r model.BeamRebar) error {
	return x.record("SetBeamRebar", section, r)
}

func (x *Recorder) SetColumnRebar(section string, r model.ColumnRebar) error {
	return x.record("SetColumnRebar", section, r)
}

func (x *Recorder) SetFrameModifiers(section string, v modifier.Frame) error {
	return x.record("SetFrameModifiers", section, v)
}

func (x *Recorder) DefineAreaSection(s model.AreaSection) error {
	return x.record("DefineAreaSection", s.Name, s)
}

func (x *Recorder) SetAreaModifiers(section string, v modifier.Area) error {
	return x.record("SetAreaModifiers", section, v)
}

func (x *Recorder) DefineGroup(g model.Group) error {
	return x.record("DefineGroup", g.Name, g)
}

func (x *Recorder) AddFrameByCoordinates(name, section string, start, end drawing.Point3) error {
	return x.record("AddFrameByCoordinates", name, Frame{Section: section, Start: start, End: end})
}

func (x *Recorder) AddAreaByCoordinates(name, section string, vertices []drawing.Point3) error {
	return x.record("AddAreaByCoordinates", name, Area{Section: section, Vertices: vertices})
}

func (x *Recorder) AddPointByCoordinates(name string, p drawing.Point3) error {
	return x.record("AddPointByCoordinates", name, p)
}

func (x *Recorder) AssignToGroup(kind model.ObjectKind, name, group string) error {
	return x.record("AssignToGroup", name, group)
}

func (x *Recorder) SetDistributedLoad(frame string, l model.DistributedLoad) error {
	return x.record("SetDistributedLoad", frame, l)
}

func (x *Recorder) SetUniformLoad(area string, l model.UniformLoad) error {
	return x.record("SetUniformLoad", area, l)
}

func (x *Recorder) SetRestraint(point string, r model.Restraint) error {
	return x.record("SetRestraint", point, r)
}

func (x *Recorder) RegisterPier(name string) error {
	return x.record("RegisterPier", name, nil)
}

func (x *Recorder) RegisterSpandrel(name string, multiStory bool) error {
	return x.record("RegisterSpandrel", name, multiStory)
}

func (x *Recorder) AssignPier(area, pier string) error {
	return x.record("AssignPier", area, pier)
}

func (x *Recorder) AssignSpandrel(area, spandrel string) error {
	return x.record("AssignSpandrel", area, spandrel)
}

func (x *Recorder) SetStoryElevation(story string, elevation float64) error {
	return x.record("SetStoryElevation", story, elevation)
}

func (x *Recorder) RefreshView() error {
	return x.record("RefreshView", "", nil)
}

func (x *Recorder) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	return nil
}

// Connector hands out Session, or fails with Err when set. Runs lists the
// run identifiers it was asked to connect for.
type Connector struct {
	Session *Recorder
	Err     error
	Runs    []string
}

func (x *Connector) Connect(run string) (model.Session, error) {
	x.Runs = append(x.Runs, run)
	if x.Err != nil {
		return nil, x.Err
	}
	return x.Session, nil
}
