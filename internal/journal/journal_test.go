package journal

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ansel1/merry"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func openMemory(t *testing.T) *sqlx.DB {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordRun(t *testing.T) {
	db := openMemory(t)
	conn := Connector{DB: db, Target: "ETABS"}
	run := uuid.New().String()
	m, err := conn.Connect(run)
	require.NoError(t, err)
	assert.Equal(t, run, m.(*Model).run)

	require.NoError(t, m.InitializeNewModel(model.UnitsKNmC))
	require.NoError(t, m.DefineMaterial("C30", 2))
	require.NoError(t, m.SetFrameModifiers("B30", modifier.Frame{1, 1, 1, 0.01, 0.35, 0.35, 1, 1}))
	require.NoError(t, m.AddFrameByCoordinates("Beams_Fr 0", "B30", drawing.Point3{X: 0, Y: 0, Z: 3}, drawing.Point3{X: 5, Y: 0, Z: 3}))
	require.NoError(t, m.AssignToGroup(model.ObjectFrame, "Beams_Fr 0", "Beams_LINES"))
	require.NoError(t, m.RegisterPier("P1"))
	require.NoError(t, m.Close())

	runs, err := Runs(db)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0].RunID)
	assert.Equal(t, "ETABS", runs[0].Target)
	assert.Equal(t, 6, runs[0].Calls)
	assert.NotNil(t, runs[0].FinishedAt)

	calls, err := Calls(db, run)
	require.NoError(t, err)
	require.Len(t, calls, 6)
	for i, c := range calls {
		assert.Equal(t, i+1, c.Seq)
	}
	assert.Equal(t, "InitializeNewModel", calls[0].Method)
	assert.Equal(t, "units: 6\n", calls[0].Args)
	assert.Equal(t, "C30", calls[1].Object)

	var mods []float64
	require.NoError(t, yaml.Unmarshal([]byte(calls[2].Args), &mods))
	assert.Equal(t, []float64{1, 1, 1, 0.01, 0.35, 0.35, 1, 1}, mods)

	var fr frameArgs
	require.NoError(t, yaml.Unmarshal([]byte(calls[3].Args), &fr))
	assert.Equal(t, frameArgs{"B30", drawing.Point3{X: 0, Y: 0, Z: 3}, drawing.Point3{X: 5, Y: 0, Z: 3}}, fr)

	var g member
	require.NoError(t, yaml.Unmarshal([]byte(calls[4].Args), &g))
	assert.Equal(t, member{model.ObjectFrame, "Beams_LINES"}, g)
	assert.Empty(t, calls[5].Args)

	last, ok, err := LastRun(db)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, run, last.RunID)
}

func TestTargetBusy(t *testing.T) {
	db := openMemory(t)
	etabs := Connector{DB: db, Target: "ETABS"}
	m, err := etabs.Connect("first")
	require.NoError(t, err)

	_, err = etabs.Connect("second")
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrTargetBusy))
	assert.Contains(t, merry.UserMessage(err), "busy")
	runs, err := Runs(db)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	_, err = Connector{DB: db, Target: "SAP2000"}.Connect("other")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	_, err = etabs.Connect("third")
	require.NoError(t, err)

	n, err := Reset(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = etabs.Connect("fourth")
	require.NoError(t, err)
}

func TestEmptyJournal(t *testing.T) {
	db := openMemory(t)
	_, ok, err := LastRun(db)
	require.NoError(t, err)
	assert.False(t, ok)
	calls, err := Calls(db, "none")
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestConnectSeparateHandles(t *testing.T) {
	dir, err := ioutil.TempDir("", "journal")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "journal.sqlite")

	var handles []*sqlx.DB
	for i := 0; i < 4; i++ {
		db, err := Open(filename)
		require.NoError(t, err)
		defer db.Close()
		handles = append(handles, db)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started int
	)
	for _, db := range handles {
		wg.Add(1)
		go func(db *sqlx.DB) {
			defer wg.Done()
			if _, err := (Connector{DB: db, Target: "ETABS"}).Connect(uuid.New().String()); err == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}(db)
	}
	wg.Wait()
	assert.Equal(t, 1, started)

	runs, err := Runs(handles[0])
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
