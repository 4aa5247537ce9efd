package journal

import (
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
)

var (
	_ model.Session   = new(Model)
	_ model.Connector = Connector{}
)

type frameArgs struct {
	Section string         `yaml:"section"`
	Start   drawing.Point3 `yaml:"start"`
	End     drawing.Point3 `yaml:"end"`
}

type areaArgs struct {
	Section  string           `yaml:"section"`
	Vertices []drawing.Point3 `yaml:"vertices,flow"`
}

type pointArgs struct {
	drawing.Point3 `yaml:",inline"`
}

type typed struct {
	Type int `yaml:"type"`
}

type member struct {
	Kind  model.ObjectKind `yaml:"kind"`
	Group string           `yaml:"group"`
}

func (x *Model) InitializeNewModel(units int) error {
	return x.record("InitializeNewModel", "", map[string]int{"units": units})
}

func (x *Model) NewBlank() error {
	return x.record("NewBlank", "", nil)
}

func (x *Model) DefineMaterial(name string, materialType int) error {
	return x.record("DefineMaterial", name, typed{materialType})
}

func (x *Model) SetConcreteModel(name string, c model.Concrete) error {
	return x.record("SetConcreteModel", name, c)
}

func (x *Model) SetWeightAndMass(name string, weight float64) error {
	return x.record("SetWeightAndMass", name, map[string]float64{"weight": weight})
}

func (x *Model) SetElasticIsotropic(name string, e model.Elastic) error {
	return x.record("SetElasticIsotropic", name, e)
}

func (x *Model) DefinePattern(name string, patternType int) error {
	return x.record("DefinePattern", name, typed{patternType})
}

func (x *Model) SetSelfWeightMultiplier(name string, m float64) error {
	return x.record("SetSelfWeightMultiplier", name, map[string]float64{"multiplier": m})
}

func (x *Model) DefineFrameSection(s model.FrameSection) error {
	return x.record("DefineFrameSection", s.Name, s)
}

func (x *Model) SetBeamRebar(section string, r model.BeamRebar) error {
	return x.record("SetBeamRebar", section, r)
}

func (x *Model) SetColumnRebar(section string, r model.ColumnRebar) error {
	return x.record("SetColumnRebar", section, r)
}

func (x *Model) SetFrameModifiers(section string, v modifier.Frame) error {
	return x.record("SetFrameModifiers", section, v[:])
}

func (x *Model) DefineAreaSection(s model.AreaSection) error {
	return x.record("DefineAreaSection", s.Name, s)
}

func (x *Model) SetAreaModifiers(section string, v modifier.Area) error {
	return x.record("SetAreaModifiers", section, v[:])
}

func (x *Model) DefineGroup(g model.Group) error {
	return x.record("DefineGroup", g.Name, g)
}

func (x *Model) AddFrameByCoordinates(name, section string, start, end drawing.Point3) error {
	return x.record("AddFrameByCoordinates", name, frameArgs{section, start, end})
}

func (x *Model) AddAreaByCoordinates(name, section string, vertices []drawing.Point3) error {
	return x.record("AddAreaByCoordinates", name, areaArgs{section, vertices})
}

func (x *Model) AddPointByCoordinates(name string, p drawing.Point3) error {
	return x.record("AddPointByCoordinates", name, pointArgs{p})
}

func (x *Model) AssignToGroup(kind model.ObjectKind, name, group string) error {
	return x.record("AssignToGroup", name, member{kind, group})
}

func (x *Model) SetDistributedLoad(frame string, l model.DistributedLoad) error {
	return x.record("SetDistributedLoad", frame, l)
}

func (x *Model) SetUniformLoad(area string, l model.UniformLoad) error {
	return x.record("SetUniformLoad", area, l)
}

func (x *Model) SetRestraint(point string, r model.Restraint) error {
	return x.record("SetRestraint", point, r[:])
}

func (x *Model) RegisterPier(name string) error {
	return x.record("RegisterPier", name, nil)
}

func (x *Model) RegisterSpandrel(name string, multiStory bool) error {
	return x.record("RegisterSpandrel", name, map[string]bool{"multi_story": multiStory})
}

func (x *Model) AssignPier(area, pier string) error {
	return x.record("AssignPier", area, map[string]string{"pier": pier})
}

func (x *Model) AssignSpandrel(area, spandrel string) error {
	return x.record("AssignSpandrel", area, map[string]string{"spandrel": spandrel})
}

func (x *Model) SetStoryElevation(story string, elevation float64) error {
	return x.record("SetStoryElevation", story, map[string]float64{"elevation": elevation})
}

func (x *Model) RefreshView() error {
	return x.record("RefreshView", "", nil)
}
