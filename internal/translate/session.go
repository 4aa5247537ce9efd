// Package translate turns drawing dictionaries and layers into objects of a
// structural model: materials, load patterns, sections, labels, frames,
// areas and restrained points.
package translate

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
)

// Record sizes per schema.
const (
	sizeMaterial     = 8
	sizeLoadPattern  = 2
	sizeFrameSection = 7
	sizeSlabSection  = 5
	sizeWallSection  = 3
	sizeLabel        = 1
	sizePointer      = 1
	sizeFrameLoad    = 4
	sizeAreaLoad     = 3
)

type Options struct {
	// SelfWeight is the dead pattern self weight multiplier. Drawn dead
	// loads are dropped when it equals 1.
	SelfWeight float64
	Scheme     modifier.Scheme
	Modifiers  modifier.Set
}

type Counts struct {
	Materials     int `yaml:"materials"`
	Patterns      int `yaml:"patterns"`
	FrameSections int `yaml:"frame_sections"`
	AreaSections  int `yaml:"area_sections"`
	Piers         int `yaml:"piers"`
	Spandrels     int `yaml:"spandrels"`
	Frames        int `yaml:"frames"`
	Areas         int `yaml:"areas"`
	Points        int `yaml:"points"`
	Loads         int `yaml:"loads"`
}

// Session carries everything one import run works with. It is owned by a
// single run and is not safe for concurrent use.
type Session struct {
	Doc     drawing.Document
	Store   attr.Store
	Model   model.Model
	Variant variant.Variant
	Options Options
	Log     *structlog.Logger
	Counts  Counts

	selections *Selections
}

func NewSession(doc drawing.Document, store attr.Store, m model.Model, v variant.Variant, opts Options, log *structlog.Logger) *Session {
	if log == nil {
		log = structlog.New()
	}
	return &Session{
		Doc:        doc,
		Store:      store,
		Model:      m,
		Variant:    v,
		Options:    opts,
		Log:        log,
		selections: NewSelections(doc),
	}
}

func (s *Session) fetch(h attr.Handle, size int) (attr.Record, error) {
	return s.Store.Fetch(s.Doc.Name(), h, size)
}

// eachRecord fetches every record of a named dictionary in order.
func (s *Session) eachRecord(dictionary string, size int, f func(attr.Record) error) error {
	handles, err := s.Doc.Dictionary(dictionary)
	if err != nil {
		return merry.Appendf(err, "dictionary %s", dictionary)
	}
	for i, h := range handles {
		r, err := s.fetch(h, size)
		if err != nil {
			return merry.Appendf(err, "dictionary %s record %d", dictionary, i)
		}
		if err := f(r); err != nil {
			return merry.Appendf(err, "dictionary %s record %d", dictionary, i)
		}
	}
	return nil
}

// calls performs model calls in order and stops at the first failure.
func calls(fs ...func() error) error {
	for _, f := range fs {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}
