package translate

import (
	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
)

// Selection set names.
const (
	SetColumnsLines = "ColumnsLayer"
	SetColumnsFaces = "ShWallLayer"
	SetFrames       = "Frames"
	SetShells       = "Shells"
	SetPoints       = "Points"
)

// Selection is a named group of drawing entities living for one run.
type Selection struct {
	Name     string
	Entities []drawing.Entity
}

// Selections is the registry of the named entity groups of one import run.
type Selections struct {
	doc  drawing.Document
	sets map[string]*Selection
}

func NewSelections(doc drawing.Document) *Selections {
	return &Selections{doc: doc, sets: make(map[string]*Selection)}
}

// Add returns the named selection, creating an empty one on first use.
func (x *Selections) Add(name string) *Selection {
	if s, ok := x.sets[name]; ok {
		return s
	}
	s := &Selection{Name: name}
	x.sets[name] = s
	return s
}

// Select appends the entities of kind on layer to the named selection and
// returns just the appended ones.
func (x *Selections) Select(name, layer string, kind drawing.Kind) ([]drawing.Entity, error) {
	s := x.Add(name)
	xs, err := x.doc.Select(layer, kind)
	if err != nil {
		return nil, merry.Appendf(err, "select %s on layer %q", kind, layer)
	}
	s.Entities = append(s.Entities, xs...)
	return xs, nil
}

// Clear empties the named selection keeping it registered.
func (x *Selections) Clear(name string) {
	if s, ok := x.sets[name]; ok {
		s.Entities = nil
	}
}

// Delete drops the named selection.
func (x *Selections) Delete(name string) {
	delete(x.sets, name)
}

func (x *Selections) size(name string) int {
	if s, ok := x.sets[name]; ok {
		return len(s.Entities)
	}
	return 0
}

func (x *Selections) has(name string) bool {
	_, ok := x.sets[name]
	return ok
}
