// Package luadwg builds drawings from Lua scripts. A script describes layers,
// entities, their extension records and the named dictionaries through the
// global "go" object, so sample structures can be kept as text and loaded
// into a drawing database without a CAD application.
package luadwg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"
)

// Drawing is the result of a script.
type Drawing struct {
	Doc   *drawing.Memory
	Store *attr.MemStore
}

// LoadFile runs a drawing script. The document is named after the file
// unless the script calls go:Document.
func LoadFile(log *structlog.Logger, filename string) (Drawing, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".dwg"
	return load(log, name, func(L *lua.LState) error {
		return L.DoFile(filename)
	})
}

// LoadString runs a drawing script held in source.
func LoadString(log *structlog.Logger, name, source string) (Drawing, error) {
	return load(log, name, func(L *lua.LState) error {
		return L.DoString(source)
	})
}

func load(log *structlog.Logger, name string, do func(*lua.LState) error) (Drawing, error) {
	if log == nil {
		log = structlog.New()
	}
	L := lua.NewState()
	defer L.Close()
	imp := NewImport(log.New(structlog.KeyUnit, "luadwg"), L, name)
	L.SetGlobal("go", luar.New(L, imp))
	if err := do(L); err != nil {
		return Drawing{}, merry.Appendf(err, "drawing script %s", name)
	}
	d := imp.Drawing()
	layers, _ := d.Doc.Layers()
	log.Info("drawing script done", "document", d.Doc.Name(), "layers", len(layers),
		"entities", len(d.Doc.Entities()), "handles", imp.seq)
	return d, nil
}

// Save stores the drawing and its records in db, replacing an earlier copy
// of the same document.
func (x Drawing) Save(db *sqlx.DB) error {
	doc, err := drawing.NewDB(db, x.Doc.Name())
	if err != nil {
		return err
	}
	store, err := attr.NewSQLStore(db)
	if err != nil {
		return err
	}
	if err := doc.Save(x.Doc); err != nil {
		return err
	}
	return x.Store.Each(func(name string, h attr.Handle, r attr.Record) error {
		if name != x.Doc.Name() {
			return nil
		}
		return store.Put(name, h, r)
	})
}

func handle(n int) attr.Handle {
	return attr.Handle(fmt.Sprintf("%X", n))
}
