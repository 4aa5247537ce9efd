package luadwg

import (
	"testing"

	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	d, err := LoadFile(structlog.New(), "testdata/frame.lua")
	require.NoError(t, err)
	testFrame(t, d.Doc, d.Store)
}

func TestSave(t *testing.T) {
	d, err := LoadFile(nil, "testdata/frame.lua")
	require.NoError(t, err)
	db, err := pkg.OpenSqliteDBx(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, d.Save(db))
	require.NoError(t, d.Save(db))

	docs, err := drawing.ListDocuments(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"frame.dwg"}, docs)

	doc, err := drawing.NewDB(db, "frame.dwg")
	require.NoError(t, err)
	store, err := attr.NewSQLStore(db)
	require.NoError(t, err)
	testFrame(t, doc, store)
}

func testFrame(t *testing.T, doc drawing.Document, store attr.Store) {
	assert.Equal(t, "frame.dwg", doc.Name())
	layers, err := doc.Layers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Columns", "Beams", "Slabs", "Walls", "Supports"}, layers)

	mats, err := doc.Dictionary(drawing.DictMaterials)
	require.NoError(t, err)
	require.Len(t, mats, 1)
	r, err := store.Fetch(doc.Name(), mats[0], 8)
	require.NoError(t, err)
	assert.Equal(t, "C30", r.String(0))
	assert.Equal(t, attr.CodeText, r[0].Code)
	assert.Equal(t, attr.CodeReal, r[1].Code)
	e, err := r.Float(2)
	require.NoError(t, err)
	assert.Equal(t, 27000.0, e)

	secs, err := doc.Dictionary(drawing.DictSlabSecs)
	require.NoError(t, err)
	require.Len(t, secs, 1)
	r, err = store.Fetch(doc.Name(), secs[0], 5)
	require.NoError(t, err)
	alt, err := r.Float(3)
	require.NoError(t, err)
	assert.Equal(t, 0.18, alt)

	cols, err := doc.Select("Columns", drawing.KindLine)
	require.NoError(t, err)
	assert.Len(t, cols, 4)
	assert.Equal(t, drawing.Point3{X: 6, Y: 0, Z: 3}, cols[1].Vertices[1])

	beams, err := doc.Select("Beams", drawing.KindLine)
	require.NoError(t, err)
	require.Len(t, beams, 2)
	loads, ok := beams[0].Ext.Collection(drawing.KeyDistLoads)
	require.True(t, ok)
	require.Len(t, loads, 2)
	r, err = store.Fetch(doc.Name(), loads[1], 4)
	require.NoError(t, err)
	assert.Equal(t, "Live", r.String(3))
	dir, err := r.Int(2)
	require.NoError(t, err)
	assert.Equal(t, 6, dir)

	walls, err := doc.Select("Walls", drawing.KindFace)
	require.NoError(t, err)
	require.Len(t, walls, 1)
	assert.Len(t, walls[0].Vertices, 4)
	_, ok = walls[0].Ext.Lookup(drawing.KeySecProp)
	assert.False(t, ok)
	h, ok := walls[0].Ext.Lookup(drawing.KeyWallProp)
	require.True(t, ok)
	r, err = store.Fetch(doc.Name(), h, 1)
	require.NoError(t, err)
	assert.Equal(t, "W25", r.String(0))
	_, ok = walls[0].Ext.Collection(drawing.KeyWallDistLoads)
	assert.True(t, ok)
	_, ok = walls[0].Ext.Lookup(drawing.KeyPierID)
	assert.True(t, ok)

	points, err := doc.Select("Supports", drawing.KindPoint)
	require.NoError(t, err)
	require.Len(t, points, 2)
	h, ok = points[1].Ext.Lookup(drawing.KeyRestrain)
	require.True(t, ok)
	r, err = store.Fetch(doc.Name(), h, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hinged", r.String(0))
}

func TestLoadStringErrors(t *testing.T) {
	for _, src := range []string{
		`go:Line("A", {0, 0}, {1, 1, 1})`,
		`go:Face("A", {{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})`,
		`go:Point("A", {0, 0, "z"})`,
		`go:Point("A", {0, 0, 0}); go:Document("late.dwg")`,
		`this is not lua`,
	} {
		_, err := LoadString(nil, "bad.dwg", src)
		assert.Error(t, err, src)
	}
}

func TestRecordAndDictionary(t *testing.T) {
	d, err := LoadString(nil, "raw.dwg", `
local h = go:Record("Extra", 1.5)
go:Dictionary("Custom", h)
go:Layer("Empty")
`)
	require.NoError(t, err)
	hs, err := d.Doc.Dictionary("Custom")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	r, err := d.Store.Fetch("raw.dwg", hs[0], 2)
	require.NoError(t, err)
	assert.Equal(t, attr.Record{attr.Text("Extra"), attr.Real(1.5)}, r)
	layers, err := d.Doc.Layers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty"}, layers)
}
