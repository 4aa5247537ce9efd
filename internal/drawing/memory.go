package drawing

import (
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
)

// Memory is a Document held in memory.
type Memory struct {
	name         string
	layers       []string
	entities     []Entity
	dictionaries map[string][]attr.Handle
}

func NewMemory(name string) *Memory {
	return &Memory{
		name:         name,
		dictionaries: make(map[string][]attr.Handle),
	}
}

func (x *Memory) Name() string {
	return x.name
}

// AddLayer appends a layer unless a layer with that name exists.
func (x *Memory) AddLayer(name string) {
	for _, s := range x.layers {
		if s == name {
			return
		}
	}
	x.layers = append(x.layers, name)
}

// Add appends e to the drawing, creating its layer on first use.
func (x *Memory) Add(e Entity) error {
	if err := checkVertices(e); err != nil {
		return err
	}
	if e.Ext == nil {
		e.Ext = Extension{}
	}
	x.AddLayer(e.Layer)
	x.entities = append(x.entities, e)
	return nil
}

func (x *Memory) AddToDictionary(name string, handle attr.Handle) {
	x.dictionaries[name] = append(x.dictionaries[name], handle)
}

func (x *Memory) Layers() ([]string, error) {
	return append([]string(nil), x.layers...), nil
}

func (x *Memory) Dictionary(name string) ([]attr.Handle, error) {
	return append([]attr.Handle(nil), x.dictionaries[name]...), nil
}

func (x *Memory) DictionaryNames() []string {
	var xs []string
	for name := range x.dictionaries {
		xs = append(xs, name)
	}
	return xs
}

func (x *Memory) Select(layer string, kind Kind) ([]Entity, error) {
	var xs []Entity
	for _, e := range x.entities {
		if e.Layer == layer && e.Kind == kind {
			xs = append(xs, e)
		}
	}
	return xs, nil
}

// Entities returns all entities in drawing order.
func (x *Memory) Entities() []Entity {
	return append([]Entity(nil), x.entities...)
}
