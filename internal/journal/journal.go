// Package journal is a model.Connector recording every model call of an
// import run to a sqlite file. It stands in for an analysis application
// and lets a run be inspected and replayed later.
package journal

import (
	"sync"
	"time"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg/must"
)

const SQLCreate = `
PRAGMA foreign_keys = ON;
PRAGMA encoding = 'UTF-8';

CREATE TABLE IF NOT EXISTS run
(
    run_id      TEXT      NOT NULL PRIMARY KEY,
    target      TEXT      NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT (datetime('now')),
    finished_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS call
(
    run_id TEXT    NOT NULL,
    seq    INTEGER NOT NULL CHECK ( seq > 0 ),
    method TEXT    NOT NULL,
    object TEXT    NOT NULL DEFAULT '',
    args   TEXT    NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, seq),
    FOREIGN KEY (run_id) REFERENCES run (run_id) ON DELETE CASCADE
);`

var ErrTargetBusy = merry.New("target has an unfinished import run")

type Run struct {
	RunID      string     `db:"run_id" yaml:"run_id"`
	Target     string     `db:"target" yaml:"target"`
	CreatedAt  time.Time  `db:"created_at" yaml:"created_at"`
	FinishedAt *time.Time `db:"finished_at" yaml:"finished_at,omitempty"`
	Calls      int        `db:"calls" yaml:"calls"`
}

type Call struct {
	RunID  string `db:"run_id" yaml:"-"`
	Seq    int    `db:"seq" yaml:"seq"`
	Method string `db:"method" yaml:"method"`
	Object string `db:"object" yaml:"object,omitempty"`
	Args   string `db:"args" yaml:"args,omitempty"`
}

// Open opens the journal file, creating its tables when missing.
func Open(filename string) (*sqlx.DB, error) {
	db, err := pkg.OpenSqliteDBx(filename)
	if err != nil {
		return nil, merry.Append(err, filename)
	}
	if _, err := db.Exec(SQLCreate); err != nil {
		_ = db.Close()
		return nil, merry.Append(err, filename)
	}
	return db, nil
}

// Connector starts journal runs for one target.
type Connector struct {
	DB     *sqlx.DB
	Target string
	Log    *structlog.Logger
}

// Connect starts a run. A target with an unfinished run is busy.
func (x Connector) Connect(run string) (model.Session, error) {
	r, err := x.DB.Exec(`
INSERT INTO run (run_id, target)
SELECT ?, ?
WHERE NOT EXISTS(SELECT 1 FROM run WHERE target = ? AND finished_at IS NULL)`, run, x.Target, x.Target)
	if err != nil {
		return nil, merry.Appendf(err, "run %s", run)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return nil, merry.Appendf(err, "run %s", run)
	}
	if n == 0 {
		return nil, ErrTargetBusy.Appendf("%s: run %s", x.Target, run).
			WithUserMessagef("%s is busy with another import. Wait for it to finish or reset the journal.", x.Target)
	}
	log := x.Log
	if log == nil {
		log = structlog.New()
	}
	return &Model{db: x.DB, run: run, log: log.New(structlog.KeyUnit, "journal")}, nil
}

// Model records calls of one run.
type Model struct {
	mu  sync.Mutex
	db  *sqlx.DB
	run string
	seq int
	log *structlog.Logger
}

func (x *Model) record(method, object string, args interface{}) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	var text string
	if args != nil {
		text = string(must.MarshalYaml(args))
	}
	x.seq++
	_, err := x.db.Exec(`INSERT INTO call (run_id, seq, method, object, args) VALUES (?, ?, ?, ?, ?)`,
		x.run, x.seq, method, object, text)
	if err != nil {
		return merry.Appendf(err, "%s %s", method, object)
	}
	x.log.Debug(method, "object", object, "seq", x.seq)
	return nil
}

// Close finishes the run.
func (x *Model) Close() error {
	_, err := x.db.Exec(`UPDATE run SET finished_at = datetime('now') WHERE run_id = ?`, x.run)
	return err
}

// Runs lists runs with their call counts, oldest first.
func Runs(db *sqlx.DB) ([]Run, error) {
	var xs []Run
	err := db.Select(&xs, `
SELECT run.run_id, target, created_at, finished_at, count(call.seq) AS calls
FROM run LEFT JOIN call USING (run_id)
GROUP BY run.run_id
ORDER BY created_at, run.rowid`)
	return xs, err
}

// Calls lists the calls of a run in order.
func Calls(db *sqlx.DB, run string) ([]Call, error) {
	var xs []Call
	err := db.Select(&xs, `SELECT * FROM call WHERE run_id = ? ORDER BY seq`, run)
	return xs, err
}

// LastRun is the most recent run, if any.
func LastRun(db *sqlx.DB) (Run, bool, error) {
	xs, err := Runs(db)
	if err != nil || len(xs) == 0 {
		return Run{}, false, err
	}
	return xs[len(xs)-1], true, nil
}

// Reset finishes every unfinished run, freeing their targets.
func Reset(db *sqlx.DB) (int64, error) {
	r, err := db.Exec(`UPDATE run SET finished_at = datetime('now') WHERE finished_at IS NULL`)
	if err != nil {
		return 0, err
	}
	return r.RowsAffected()
}
