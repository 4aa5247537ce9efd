package drawing

import (
	"sort"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
)

const SQLCreate = `
CREATE TABLE IF NOT EXISTS layer
(
    doc  TEXT    NOT NULL,
    ord  INTEGER NOT NULL,
    name TEXT    NOT NULL,
    PRIMARY KEY (doc, name)
);

CREATE TABLE IF NOT EXISTS entity
(
    doc    TEXT    NOT NULL,
    handle TEXT    NOT NULL,
    layer  TEXT    NOT NULL,
    kind   TEXT    NOT NULL CHECK ( kind IN ('LINE', '3DFACE', 'POINT') ),
    ord    INTEGER NOT NULL,
    PRIMARY KEY (doc, handle)
);

CREATE INDEX IF NOT EXISTS entity_layer_kind ON entity (doc, layer, kind, ord);

CREATE TABLE IF NOT EXISTS vertex
(
    doc    TEXT    NOT NULL,
    handle TEXT    NOT NULL,
    idx    INTEGER NOT NULL,
    x      REAL    NOT NULL,
    y      REAL    NOT NULL,
    z      REAL    NOT NULL,
    PRIMARY KEY (doc, handle, idx)
);

CREATE TABLE IF NOT EXISTS extension
(
    doc    TEXT    NOT NULL,
    owner  TEXT    NOT NULL,
    entry  TEXT    NOT NULL,
    ord    INTEGER NOT NULL,
    record TEXT    NOT NULL,
    PRIMARY KEY (doc, owner, entry, ord)
);

CREATE TABLE IF NOT EXISTS dictionary
(
    doc    TEXT    NOT NULL,
    name   TEXT    NOT NULL,
    ord    INTEGER NOT NULL,
    record TEXT    NOT NULL,
    PRIMARY KEY (doc, name, ord)
);`

// DB is a Document stored in a drawing database exported from CAD.
type DB struct {
	db  *sqlx.DB
	doc string
}

func NewDB(db *sqlx.DB, doc string) (*DB, error) {
	if _, err := db.Exec(SQLCreate); err != nil {
		return nil, merry.Append(err, "create drawing tables")
	}
	return &DB{db: db, doc: doc}, nil
}

// ListDocuments returns the names of the documents stored in db.
func ListDocuments(db *sqlx.DB) (xs []string, err error) {
	err = db.Select(&xs, `SELECT DISTINCT doc FROM layer ORDER BY doc`)
	return
}

func (x *DB) Name() string {
	return x.doc
}

func (x *DB) Layers() (xs []string, err error) {
	err = x.db.Select(&xs, `SELECT name FROM layer WHERE doc = ? ORDER BY ord`, x.doc)
	return
}

func (x *DB) Dictionary(name string) ([]attr.Handle, error) {
	var xs []string
	if err := x.db.Select(&xs,
		`SELECT record FROM dictionary WHERE doc = ? AND name = ? ORDER BY ord`, x.doc, name); err != nil {
		return nil, merry.Appendf(err, "dictionary %s", name)
	}
	return toHandles(xs), nil
}

func (x *DB) Select(layer string, kind Kind) ([]Entity, error) {
	var handles []string
	if err := x.db.Select(&handles,
		`SELECT handle FROM entity WHERE doc = ? AND layer = ? AND kind = ? ORDER BY ord`,
		x.doc, layer, kind.String()); err != nil {
		return nil, merry.Appendf(err, "select %s on layer %q", kind, layer)
	}
	entities := make([]Entity, 0, len(handles))
	for _, h := range handles {
		e := Entity{Handle: h, Layer: layer, Kind: kind, Ext: Extension{}}
		if err := x.db.Select(&e.Vertices,
			`SELECT x, y, z FROM vertex WHERE doc = ? AND handle = ? ORDER BY idx`, x.doc, h); err != nil {
			return nil, merry.Appendf(err, "vertices of %s", h)
		}
		if err := checkVertices(e); err != nil {
			return nil, err
		}
		var ext []struct {
			Key    string `db:"entry"`
			Record string `db:"record"`
		}
		if err := x.db.Select(&ext,
			`SELECT entry, record FROM extension WHERE doc = ? AND owner = ? ORDER BY entry, ord`, x.doc, h); err != nil {
			return nil, merry.Appendf(err, "extension of %s", h)
		}
		for _, r := range ext {
			e.Ext[r.Key] = append(e.Ext[r.Key], attr.Handle(r.Record))
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Save writes every layer, entity and dictionary of m under the name of m,
// replacing what was stored for that document before.
func (x *DB) Save(m *Memory) error {
	tx, err := x.db.Beginx()
	if err != nil {
		return err
	}
	if err := save(tx, m); err != nil {
		_ = tx.Rollback()
		return merry.Appendf(err, "save drawing %s", m.Name())
	}
	return tx.Commit()
}

func save(tx *sqlx.Tx, m *Memory) error {
	doc := m.Name()
	for _, table := range []string{"layer", "entity", "vertex", "extension", "dictionary"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE doc = ?`, doc); err != nil {
			return err
		}
	}
	layers, _ := m.Layers()
	for i, name := range layers {
		if _, err := tx.Exec(`INSERT INTO layer(doc, ord, name) VALUES (?, ?, ?)`, doc, i, name); err != nil {
			return err
		}
	}
	for i, e := range m.Entities() {
		if _, err := tx.Exec(`INSERT INTO entity(doc, handle, layer, kind, ord) VALUES (?, ?, ?, ?, ?)`,
			doc, e.Handle, e.Layer, e.Kind.String(), i); err != nil {
			return err
		}
		for n, v := range e.Vertices {
			if _, err := tx.Exec(`INSERT INTO vertex(doc, handle, idx, x, y, z) VALUES (?, ?, ?, ?, ?, ?)`,
				doc, e.Handle, n, v.X, v.Y, v.Z); err != nil {
				return err
			}
		}
		keys := make([]string, 0, len(e.Ext))
		for k := range e.Ext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for n, h := range e.Ext[k] {
				if _, err := tx.Exec(`INSERT INTO extension(doc, owner, entry, ord, record) VALUES (?, ?, ?, ?, ?)`,
					doc, e.Handle, k, n, string(h)); err != nil {
					return err
				}
			}
		}
	}
	names := m.DictionaryNames()
	sort.Strings(names)
	for _, name := range names {
		hs, _ := m.Dictionary(name)
		for n, h := range hs {
			if _, err := tx.Exec(`INSERT INTO dictionary(doc, name, ord, record) VALUES (?, ?, ?, ?)`,
				doc, name, n, string(h)); err != nil {
				return err
			}
		}
	}
	return nil
}

func toHandles(xs []string) []attr.Handle {
	hs := make([]attr.Handle, len(xs))
	for i, s := range xs {
		hs[i] = attr.Handle(s)
	}
	return hs
}
