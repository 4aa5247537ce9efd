// Package model declares the capability interface of a structural analysis
// application session. Every method is a blocking call into the application.
package model

import (
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
)

// Units codes understood by InitializeNewModel.
const (
	UnitsKNmC = 6
)

type ObjectKind string

const (
	ObjectFrame ObjectKind = "frame"
	ObjectArea  ObjectKind = "area"
	ObjectPoint ObjectKind = "point"
)

type Concrete struct {
	Fc             float64 `yaml:"fc"`
	IsLightweight  bool    `yaml:"is_lightweight"`
	FcsFactor      float64 `yaml:"fcs_factor"`
	StressStrain   int     `yaml:"stress_strain"`
	Hysteresis     int     `yaml:"hysteresis"`
	StrainAtFc     float64 `yaml:"strain_at_fc"`
	StrainUltimate float64 `yaml:"strain_ultimate"`
	FinalSlope     float64 `yaml:"final_slope"`
}

type Elastic struct {
	E       float64 `yaml:"e"`
	Poisson float64 `yaml:"poisson"`
	Thermal float64 `yaml:"thermal"`
}

type FrameShape string

const (
	ShapeRectangle FrameShape = "rectangle"
	ShapeCircle    FrameShape = "circle"
)

type FrameSection struct {
	Name     string     `yaml:"name"`
	Material string     `yaml:"material"`
	Shape    FrameShape `yaml:"shape"`
	// Depth of a rectangle or diameter of a circle.
	Depth float64 `yaml:"depth"`
	Width float64 `yaml:"width,omitempty"`
}

type BeamRebar struct {
	LongitudinalMaterial string  `yaml:"longitudinal_material"`
	ConfinementMaterial  string  `yaml:"confinement_material"`
	CoverTop             float64 `yaml:"cover_top"`
	CoverBottom          float64 `yaml:"cover_bottom"`
	TopLeftArea          float64 `yaml:"top_left_area"`
	TopRightArea         float64 `yaml:"top_right_area"`
	BottomLeftArea       float64 `yaml:"bottom_left_area"`
	BottomRightArea      float64 `yaml:"bottom_right_area"`
}

type ColumnRebar struct {
	LongitudinalMaterial string  `yaml:"longitudinal_material"`
	ConfinementMaterial  string  `yaml:"confinement_material"`
	Pattern              int     `yaml:"pattern"`
	ConfinementType      int     `yaml:"confinement_type"`
	Cover                float64 `yaml:"cover"`
	NumberCircularBars   int     `yaml:"number_circular_bars"`
	NumberR3Bars         int     `yaml:"number_r3_bars"`
	NumberR2Bars         int     `yaml:"number_r2_bars"`
	RebarSize            string  `yaml:"rebar_size"`
	TieSize              string  `yaml:"tie_size"`
	TieSpacing           float64 `yaml:"tie_spacing"`
	Number2DirTieBars    int     `yaml:"number_2dir_tie_bars"`
	Number3DirTieBars    int     `yaml:"number_3dir_tie_bars"`
	ToBeDesigned         bool    `yaml:"to_be_designed"`
}

type AreaRole string

const (
	RoleSlab AreaRole = "slab"
	RoleWall AreaRole = "wall"
)

// AreaSection is an area property. Applications without a dedicated wall
// type get walls as shells of the variant's membrane type.
type AreaSection struct {
	Name     string   `yaml:"name"`
	Material string   `yaml:"material"`
	Role     AreaRole `yaml:"role"`
	// Dedicated is set when the application defines Role natively
	// (slab or wall object) rather than as a generic shell.
	Dedicated bool    `yaml:"dedicated"`
	SlabType  int     `yaml:"slab_type,omitempty"`
	ShellType int     `yaml:"shell_type"`
	Thickness float64 `yaml:"thickness"`
	// Bending thickness of a generic shell.
	Bending float64 `yaml:"bending,omitempty"`
}

type Group struct {
	Name  string `yaml:"name"`
	Color int    `yaml:"color"`
	// Flags in application order: selection, section cut definition,
	// steel design, concrete design, aluminum design, cold formed design,
	// static nonlinear active stage, bridge response output, auto seismic
	// output, auto wind output, mass and weight.
	Flags [11]bool `yaml:"flags"`
}

type CoordSys string

const (
	Global CoordSys = "Global"
	Local  CoordSys = "Local"
)

type DistributedLoad struct {
	Pattern string   `yaml:"pattern"`
	Type    int      `yaml:"type"`
	Dir     int      `yaml:"dir"`
	Dist1   float64  `yaml:"dist1"`
	Dist2   float64  `yaml:"dist2"`
	Val1    float64  `yaml:"val1"`
	Val2    float64  `yaml:"val2"`
	CSys    CoordSys `yaml:"csys"`
	RelDist bool     `yaml:"rel_dist"`
	Replace bool     `yaml:"replace"`
}

type UniformLoad struct {
	Pattern string   `yaml:"pattern"`
	Value   float64  `yaml:"value"`
	Dir     int      `yaml:"dir"`
	Replace bool     `yaml:"replace"`
	CSys    CoordSys `yaml:"csys"`
}

// Restraint flags U1, U2, U3, R1, R2, R3.
type Restraint [6]bool

// Model is one live session with a structural analysis application.
type Model interface {
	InitializeNewModel(units int) error
	NewBlank() error

	DefineMaterial(name string, materialType int) error
	SetConcreteModel(name string, c Concrete) error
	SetWeightAndMass(name string, weight float64) error
	SetElasticIsotropic(name string, e Elastic) error

	DefinePattern(name string, patternType int) error
	SetSelfWeightMultiplier(name string, m float64) error

	DefineFrameSection(s FrameSection) error
	SetBeamRebar(section string, r BeamRebar) error
	SetColumnRebar(section string, r ColumnRebar) error
	SetFrameModifiers(section string, v modifier.Frame) error
	DefineAreaSection(s AreaSection) error
	SetAreaModifiers(section string, v modifier.Area) error

	DefineGroup(g Group) error
	AddFrameByCoordinates(name, section string, start, end drawing.Point3) error
	AddAreaByCoordinates(name, section string, vertices []drawing.Point3) error
	AddPointByCoordinates(name string, p drawing.Point3) error
	AssignToGroup(kind ObjectKind, name, group string) error

	SetDistributedLoad(frame string, l DistributedLoad) error
	SetUniformLoad(area string, l UniformLoad) error
	SetRestraint(point string, r Restraint) error

	RegisterPier(name string) error
	RegisterSpandrel(name string, multiStory bool) error
	AssignPier(area, pier string) error
	AssignSpandrel(area, spandrel string) error

	SetStoryElevation(story string, elevation float64) error
	RefreshView() error
}

// Connector attaches to a running application for the import run identified
// by run. A failing Connect means the application is not reachable.
type Connector interface {
	Connect(run string) (Session, error)
}

// Session is a Model owned by one import run until Close.
type Session interface {
	Model
	Close() error
}
