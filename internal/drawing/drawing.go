// Package drawing is the read side of a CAD document: layers, entities
// selected by layer and kind, their coordinates and the attribute record
// handles attached to them.
package drawing

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
)

type Kind int

const (
	KindLine Kind = iota
	KindFace
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "LINE"
	case KindFace:
		return "3DFACE"
	case KindPoint:
		return "POINT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Vertices is the number of coordinates an entity of kind k carries.
func (k Kind) Vertices() int {
	switch k {
	case KindLine:
		return 2
	case KindFace:
		return 4
	case KindPoint:
		return 1
	default:
		return 0
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindLine, KindFace, KindPoint} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, merry.Errorf("unknown entity kind %q", s)
}

// Named dictionaries of a drawing.
const (
	DictMaterials    = "ConcMaterial"
	DictLoadPatterns = "LoadPatterns"
	DictFrameSecs    = "FrSecProp"
	DictSlabSecs     = "SlabSecProp"
	DictWallSecs     = "WallSecProps"
	DictPiers        = "PierIDs"
	DictSpandrels    = "SpandralIDs"
)

// Extension record keys.
const (
	KeySecProp          = "SecProp"
	KeyWallProp         = "WallProp"
	KeyDistLoads        = "DistLoads"
	KeyWallDistLoads    = "WallDistLoads"
	KeyRestrain         = "Restrain"
	KeyPierID           = "PierID"
	KeySpandrelID       = "SpandrelID"
	KeySpandrelIDLegacy = "SpandralID"
)

type Point3 struct {
	X float64 `db:"x" yaml:"x"`
	Y float64 `db:"y" yaml:"y"`
	Z float64 `db:"z" yaml:"z"`
}

// Extension maps a record key to the handles stored under it. A single
// record is a one element collection.
type Extension map[string][]attr.Handle

// Lookup returns the record stored under key, if any.
func (x Extension) Lookup(key string) (attr.Handle, bool) {
	hs := x[key]
	if len(hs) == 0 {
		return "", false
	}
	return hs[0], true
}

// Collection returns the records stored under key, if any.
func (x Extension) Collection(key string) ([]attr.Handle, bool) {
	hs, ok := x[key]
	return hs, ok
}

type Entity struct {
	Handle   string
	Layer    string
	Kind     Kind
	Vertices []Point3
	Ext      Extension
}

// Document is read only for the importer.
type Document interface {
	// Name identifies the document for attribute store lookups.
	Name() string
	// Layers lists layer names in document order.
	Layers() ([]string, error)
	// Dictionary lists the record handles of a named dictionary in order.
	// A dictionary the drawing never defined has no records.
	Dictionary(name string) ([]attr.Handle, error)
	// Select returns the entities of kind on layer in drawing order.
	Select(layer string, kind Kind) ([]Entity, error)
}

var ErrMalformedEntity = merry.New("malformed drawing entity")

func checkVertices(e Entity) error {
	if len(e.Vertices) != e.Kind.Vertices() {
		return ErrMalformedEntity.Appendf("%s %s on layer %q has %d vertices, want %d",
			e.Kind, e.Handle, e.Layer, len(e.Vertices), e.Kind.Vertices())
	}
	return nil
}
