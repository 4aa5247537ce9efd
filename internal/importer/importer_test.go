package importer

import (
	"bytes"
	"testing"

	"github.com/ansel1/merry"
	"github.com/google/uuid"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/journal"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model/modeltest"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/translate"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type building struct {
	doc   *drawing.Memory
	store *attr.MemStore
	n     int
}

func (x *building) rec(values ...string) attr.Handle {
	x.n++
	h := attr.Handle(uuid.New().String())
	r := make(attr.Record, len(values))
	for i, v := range values {
		r[i] = attr.Text(v)
	}
	x.store.Put(x.doc.Name(), h, r)
	return h
}

func (x *building) add(t *testing.T, layer string, kind drawing.Kind, ext drawing.Extension, vs ...drawing.Point3) {
	x.n++
	require.NoError(t, x.doc.Add(drawing.Entity{
		Handle: uuid.New().String(), Layer: layer, Kind: kind, Vertices: vs, Ext: ext,
	}))
}

func newBuilding(t *testing.T) *building {
	x := &building{doc: drawing.NewMemory("house.dwg"), store: attr.NewMemStore()}
	d := x.doc
	d.AddToDictionary(drawing.DictMaterials, x.rec("C30", "30", "27000", "0.002", "0.0035", "0.2", "0.00001", "24"))
	d.AddToDictionary(drawing.DictLoadPatterns, x.rec("Dead", "Dead"))
	d.AddToDictionary(drawing.DictLoadPatterns, x.rec("Live", "Live"))
	d.AddToDictionary(drawing.DictFrameSecs, x.rec("C40", "Rectangular", "C30", "Column", "0.4", "0.4", "24"))
	d.AddToDictionary(drawing.DictFrameSecs, x.rec("B30", "Rectangular", "C30", "Beam", "0.6", "0.3", "24"))
	d.AddToDictionary(drawing.DictSlabSecs, x.rec("S20", "C30", "0.2", "0.18", "24"))
	d.AddToDictionary(drawing.DictWallSecs, x.rec("W25", "0.25", "C30"))
	d.AddToDictionary(drawing.DictPiers, x.rec("P1"))

	col := drawing.Extension{drawing.KeySecProp: {x.rec("C40")}}
	x.add(t, "Columns", drawing.KindLine, col, drawing.Point3{X: 0, Y: 0, Z: -1}, drawing.Point3{X: 0, Y: 0, Z: 3})
	x.add(t, "Columns", drawing.KindLine, col, drawing.Point3{X: 5, Y: 0, Z: -1}, drawing.Point3{X: 5, Y: 0, Z: 3})
	x.add(t, "Beams", drawing.KindLine, drawing.Extension{
		drawing.KeySecProp:   {x.rec("B30")},
		drawing.KeyDistLoads: {x.rec("5", "5", "6", "Dead"), x.rec("2", "2", "6", "Live")},
	}, drawing.Point3{X: 0, Y: 0, Z: 3}, drawing.Point3{X: 5, Y: 0, Z: 3})
	x.add(t, "Slabs", drawing.KindFace, drawing.Extension{
		drawing.KeySecProp:   {x.rec("S20")},
		drawing.KeyDistLoads: {x.rec("3", "6", "Live")},
	}, drawing.Point3{X: 0, Y: 0, Z: 3}, drawing.Point3{X: 5, Y: 0, Z: 3}, drawing.Point3{X: 5, Y: 5, Z: 3}, drawing.Point3{X: 0, Y: 5, Z: 3})
	x.add(t, "Walls", drawing.KindFace, drawing.Extension{
		drawing.KeyWallProp: {x.rec("W25")},
		drawing.KeyPierID:   {x.rec("P1")},
	}, drawing.Point3{X: 0, Y: 5, Z: 0}, drawing.Point3{X: 5, Y: 5, Z: 0}, drawing.Point3{X: 5, Y: 5, Z: 3}, drawing.Point3{X: 0, Y: 5, Z: 3})
	x.add(t, "Supports", drawing.KindPoint, drawing.Extension{
		drawing.KeyRestrain: {x.rec("Fixed")},
	}, drawing.Point3{X: 0, Y: 0, Z: -1})
	return x
}

func options(layer string) Options {
	return Options{
		SelfWeight:    1,
		Scheme:        modifier.ACI31811,
		WallCrack:     modifier.Cracked,
		SlabDimension: modifier.Slab3D,
		ColumnsLayer:  layer,
	}
}

func TestRunEtabs(t *testing.T) {
	b := newBuilding(t)
	rec := modeltest.New()
	conn := &modeltest.Connector{Session: rec}
	x := New(variant.Etabs, conn, structlog.New())

	report, err := x.Run(b.doc, b.store, options("Columns"))
	require.NoError(t, err)
	assert.Equal(t, Done, report.State)
	assert.Equal(t, []string{report.RunID}, conn.Runs)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "ETABS", report.Target)
	assert.Equal(t, "house.dwg", report.Document)
	assert.True(t, rec.Closed())

	methods := rec.Methods()
	require.NotEmpty(t, methods)
	assert.Equal(t, []string{"InitializeNewModel", "NewBlank", "DefineMaterial"}, methods[:3])
	assert.Equal(t, "RefreshView", methods[len(methods)-1])
	assert.Equal(t, model.UnitsKNmC, rec.Find("InitializeNewModel")[0].Args)

	assert.Equal(t, -1.0, rec.FindObject("SetStoryElevation", translate.BaseStory)[0].Args)
	assert.Equal(t, []string{"Columns_Fr 0", "Columns_Fr 1", "Beams_Fr 0"}, objects(rec.Find("AddFrameByCoordinates")))
	assert.Len(t, rec.Find("SetDistributedLoad"), 1)
	assert.Equal(t, "P1", rec.FindObject("AssignPier", "Walls_Sh 0")[0].Args)
	assert.Len(t, rec.Find("SetRestraint"), 1)

	assert.True(t, before(methods, "SetElasticIsotropic", "SetSelfWeightMultiplier"))
	assert.True(t, before(methods, "SetSelfWeightMultiplier", "DefineFrameSection"))
	assert.True(t, before(methods, "RegisterPier", "AddAreaByCoordinates"))
	assert.True(t, before(methods, "SetStoryElevation", "AddFrameByCoordinates"))

	assert.Equal(t, translate.Counts{
		Materials: 1, FrameSections: 2, AreaSections: 2, Piers: 1,
		Frames: 3, Areas: 2, Points: 1, Loads: 2,
	}, report.Counts)
}

func TestRunSap2000IgnoresColumnsLayer(t *testing.T) {
	b := newBuilding(t)
	rec := modeltest.New()
	x := New(variant.Sap2000, &modeltest.Connector{Session: rec}, nil)

	report, err := x.Run(b.doc, b.store, options("Columns"))
	require.NoError(t, err)
	assert.Equal(t, Done, report.State)
	assert.Empty(t, rec.Find("SetStoryElevation"))
	assert.Empty(t, rec.Find("RegisterPier"))
	assert.Empty(t, rec.Find("AssignPier"))
	assert.Len(t, rec.Find("AddFrameByCoordinates"), 3)
	assert.Equal(t, "LIVE", rec.FindObject("DefinePattern", "LIVE")[0].Object)
}

func TestRunUnreachable(t *testing.T) {
	b := newBuilding(t)
	x := New(variant.Etabs, &modeltest.Connector{Err: merry.New("no process")}, nil)
	report, err := x.Run(b.doc, b.store, options(""))
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrTargetUnreachable))
	assert.Equal(t, Failed, report.State)
	assert.Contains(t, UserMessage(err), "ETABS is not running")
}

func TestRunTargetBusyInJournal(t *testing.T) {
	db, err := journal.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	conn := journal.Connector{DB: db, Target: variant.Etabs.String()}
	_, err = conn.Connect("unfinished")
	require.NoError(t, err)

	b := newBuilding(t)
	report, err := New(variant.Etabs, conn, nil).Run(b.doc, b.store, options(""))
	require.Error(t, err)
	assert.True(t, merry.Is(err, journal.ErrTargetBusy))
	assert.True(t, merry.Is(err, ErrTargetUnreachable))
	assert.Contains(t, UserMessage(err), "ETABS is busy with another import")
	assert.Equal(t, Failed, report.State)
}

func TestRunUnknownScheme(t *testing.T) {
	b := newBuilding(t)
	conn := &modeltest.Connector{Session: modeltest.New()}
	x := New(variant.Etabs, conn, nil)
	opts := options("")
	opts.Scheme = "Eurocode"
	report, err := x.Run(b.doc, b.store, opts)
	require.Error(t, err)
	assert.True(t, merry.Is(err, modifier.ErrUnknownScheme))
	assert.Equal(t, Failed, report.State)
	assert.Empty(t, conn.Runs)
}

func TestRunMissingSection(t *testing.T) {
	b := newBuilding(t)
	b.add(t, "Beams", drawing.KindLine, nil, drawing.Point3{}, drawing.Point3{X: 1})
	rec := modeltest.New()
	x := New(variant.Etabs, &modeltest.Connector{Session: rec}, nil)

	report, err := x.Run(b.doc, b.store, options("Columns"))
	require.Error(t, err)
	assert.True(t, merry.Is(err, translate.ErrMissingSectionProperty))
	assert.Equal(t, Failed, report.State)
	assert.Equal(t, 3, report.Counts.Frames)
	assert.Empty(t, rec.Find("AddAreaByCoordinates"))
	assert.Empty(t, rec.Find("RefreshView"))
	assert.True(t, rec.Closed())
	assert.Contains(t, UserMessage(err), "try again")
}

func TestRunEmptyColumnsLayer(t *testing.T) {
	b := newBuilding(t)
	rec := modeltest.New()
	x := New(variant.Etabs, &modeltest.Connector{Session: rec}, nil)
	_, err := x.Run(b.doc, b.store, options("Nothing"))
	require.Error(t, err)
	assert.True(t, merry.Is(err, translate.ErrNoColumnsOnLayer))
	assert.Empty(t, rec.Find("AddFrameByCoordinates"))
	assert.NotEmpty(t, rec.Find("DefineFrameSection"))
}

func TestRunModelFailure(t *testing.T) {
	b := newBuilding(t)
	rec := modeltest.New()
	rec.FailOn("DefinePattern", merry.New("pattern table locked"))
	x := New(variant.Sap2000, &modeltest.Connector{Session: rec}, nil)
	report, err := x.Run(b.doc, b.store, options(""))
	require.Error(t, err)
	assert.Equal(t, Failed, report.State)
	assert.Contains(t, UserMessage(err), "pattern table locked")
	assert.Contains(t, UserMessage(err), "try again")
	assert.Empty(t, rec.Find("DefineFrameSection"))
}

func TestRunBusy(t *testing.T) {
	b := newBuilding(t)
	x := New(variant.Etabs, &modeltest.Connector{Session: modeltest.New()}, nil)
	x.running = 1
	_, err := x.Run(b.doc, b.store, options(""))
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrBusy))
}

func TestWorksRun(t *testing.T) {
	var done []string
	work := func(name string) func() error {
		return func() error {
			done = append(done, name)
			return nil
		}
	}
	errStop := merry.New("stop")
	state := Idle
	err := Works{
		{Name: "a", State: MaterialsLoaded, Func: work("a")},
		{Name: "b", State: LoadPatternsLoaded, Func: func() error { return errStop }},
		{Name: "c", State: SectionsLoaded, Func: work("c")},
	}.Run(structlog.New(), &state)
	require.Error(t, err)
	assert.True(t, merry.Is(err, errStop))
	assert.Equal(t, Failed, state)
	assert.Equal(t, []string{"a"}, done)
	assert.Equal(t, "failed", state.String())
}

func TestWorksRunLogsStateChanges(t *testing.T) {
	var buf bytes.Buffer
	log := structlog.New().SetOutput(&buf).SetLogLevel(structlog.INF)
	state := Idle
	require.NoError(t, Works{
		{Name: "new model", Func: func() error { return nil }},
		{Name: "materials", State: MaterialsLoaded, Func: func() error { return nil }},
	}.Run(log, &state))
	assert.Equal(t, MaterialsLoaded, state)
	assert.NotContains(t, buf.String(), "idle")
	assert.Contains(t, buf.String(), "materials loaded")
}

func objects(calls []modeltest.Call) []string {
	var xs []string
	for _, c := range calls {
		xs = append(xs, c.Object)
	}
	return xs
}

func before(methods []string, a, b string) bool {
	ia, ib := -1, -1
	for i, m := range methods {
		if m == a && ia < 0 {
			ia = i
		}
		if m == b && ib < 0 {
			ib = i
		}
	}
	return ia >= 0 && ib >= 0 && ia < ib
}
