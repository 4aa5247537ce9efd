package attr

import (
	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
)

const SQLCreate = `
CREATE TABLE IF NOT EXISTS xrecord
(
    doc    TEXT    NOT NULL,
    handle TEXT    NOT NULL,
    idx    INTEGER NOT NULL CHECK ( idx >= 0 ),
    code   INTEGER NOT NULL,
    value  TEXT    NOT NULL,
    PRIMARY KEY (doc, handle, idx)
);`

// SQLStore serves records from the xrecord table of a drawing database.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.Exec(SQLCreate); err != nil {
		return nil, merry.Append(err, "create xrecord table")
	}
	return &SQLStore{db: db}, nil
}

func (x *SQLStore) Fetch(doc string, handle Handle, size int) (Record, error) {
	var r Record
	err := x.db.Select(&r,
		`SELECT code, value FROM xrecord WHERE doc = ? AND handle = ? ORDER BY idx LIMIT ?`,
		doc, string(handle), size)
	if err != nil {
		return nil, merry.Appendf(err, "fetch record %s", handle)
	}
	r, err = Sized(r, size)
	if err != nil {
		return nil, merry.Appendf(err, "handle %s", handle)
	}
	return r, nil
}

// Put replaces the record stored under (doc, handle).
func (x *SQLStore) Put(doc string, handle Handle, r Record) error {
	tx, err := x.db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM xrecord WHERE doc = ? AND handle = ?`, doc, string(handle)); err != nil {
		_ = tx.Rollback()
		return merry.Appendf(err, "put record %s", handle)
	}
	for i, p := range r {
		if _, err := tx.Exec(`INSERT INTO xrecord(doc, handle, idx, code, value) VALUES (?, ?, ?, ?, ?)`,
			doc, string(handle), i, p.Code, p.Value); err != nil {
			_ = tx.Rollback()
			return merry.Appendf(err, "put record %s", handle)
		}
	}
	return tx.Commit()
}
