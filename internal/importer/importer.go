// Package importer runs an import of a drawing into a fresh model of an
// analysis application: materials, load patterns, sections, the columns
// layer and then every other layer, strictly in that order.
package importer

import (
	"sync/atomic"
	"time"

	"github.com/ansel1/merry"
	"github.com/google/uuid"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/translate"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
)

const retryAdvice = "Close the generated model and try again."

var (
	ErrTargetUnreachable = merry.New("target application is not reachable")
	ErrBusy              = merry.New("an import is already running")
)

type Options struct {
	// SelfWeight is the dead pattern self weight multiplier, 0 or 1.
	SelfWeight    float64                `yaml:"self_weight_multiplier"`
	Scheme        modifier.Scheme        `yaml:"modifiers"`
	WallCrack     modifier.WallCrack     `yaml:"wall_crack"`
	SlabDimension modifier.SlabDimension `yaml:"slab_dimension"`
	// ColumnsLayer sets the base story elevation when not empty.
	ColumnsLayer string `yaml:"columns_layer"`
}

type Report struct {
	RunID    string           `yaml:"run_id"`
	Target   string           `yaml:"target"`
	Document string           `yaml:"document"`
	State    State            `yaml:"state"`
	Counts   translate.Counts `yaml:"counts"`
	Started  time.Time        `yaml:"started"`
	Elapsed  time.Duration    `yaml:"elapsed"`
	Error    string           `yaml:"error,omitempty"`
}

// Importer runs one import at a time against its target application.
type Importer struct {
	Variant   variant.Variant
	Connector model.Connector
	Log       *structlog.Logger

	running int32
}

func New(v variant.Variant, c model.Connector, log *structlog.Logger) *Importer {
	if log == nil {
		log = structlog.New()
	}
	return &Importer{Variant: v, Connector: c, Log: log}
}

// Run imports doc into a blank model. Errors carry a user message naming
// the failed condition. There is no rollback: after a failure the target
// holds a partial model to be discarded.
func (x *Importer) Run(doc drawing.Document, store attr.Store, opts Options) (Report, error) {
	report := Report{
		RunID:    uuid.New().String(),
		Target:   x.Variant.String(),
		Document: doc.Name(),
		State:    Idle,
		Started:  time.Now(),
	}
	log := pkg.LogPrependSuffixKeys(x.Log.New(structlog.KeyUnit, "import"),
		"run", report.RunID, "target", report.Target)

	err := x.run(log, doc, store, opts, &report)
	report.Elapsed = time.Since(report.Started)
	if err != nil {
		report.State = Failed
		err = withUserMessage(err)
		report.Error = err.Error()
		log.PrintErr(err, "state", report.State, "counts", report.Counts)
		return report, err
	}
	log.Info("import done", "elapsed", report.Elapsed, "frames", report.Counts.Frames,
		"areas", report.Counts.Areas, "points", report.Counts.Points, "loads", report.Counts.Loads)
	return report, nil
}

func (x *Importer) run(log *structlog.Logger, doc drawing.Document, store attr.Store, opts Options, report *Report) error {
	if !atomic.CompareAndSwapInt32(&x.running, 0, 1) {
		return ErrBusy.Appendf("target %s", x.Variant).
			WithUserMessage("An import is already running against this program. Wait for it to finish.")
	}
	defer atomic.StoreInt32(&x.running, 0)

	modifiers, err := modifier.Resolve(opts.Scheme, opts.WallCrack, opts.SlabDimension)
	if err != nil {
		return merry.WithUserMessagef(err, "Invalid options: %v", err)
	}

	m, err := x.Connector.Connect(report.RunID)
	if err != nil {
		unreachable := ErrTargetUnreachable.Appendf("%s", x.Variant).WithCause(err)
		if msg := merry.UserMessage(err); msg != "" {
			return unreachable.WithUserMessage(msg)
		}
		return unreachable.WithUserMessagef("%s is not running. Start it and try again.", x.Variant)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.PrintErr(merry.Prepend(err, "close target session"))
		}
	}()

	s := translate.NewSession(doc, store, m, x.Variant, translate.Options{
		SelfWeight: opts.SelfWeight,
		Scheme:     opts.Scheme,
		Modifiers:  modifiers,
	}, log)
	defer func() {
		report.Counts = s.Counts
	}()

	columnsLayer := opts.ColumnsLayer
	if columnsLayer != "" && !x.Variant.HasBaseFromColumns() {
		log.Warn("columns layer ignored: not supported by target", "layer", columnsLayer)
		columnsLayer = ""
	}

	works := Works{
		{Name: "new model", Func: func() error {
			if err := m.InitializeNewModel(model.UnitsKNmC); err != nil {
				return err
			}
			return m.NewBlank()
		}},
		{Name: "materials", State: MaterialsLoaded, Func: s.DefineMaterials},
		{Name: "load patterns", State: LoadPatternsLoaded, Func: s.DefineLoadPatterns},
		{Name: "sections", State: SectionsLoaded, Func: func() error {
			if err := s.DefineSections(); err != nil {
				return err
			}
			return s.RegisterLateralLabels()
		}},
	}
	if columnsLayer != "" {
		works = append(works, Work{Name: "columns layer", State: ColumnsLayerImported, Func: func() error {
			return s.ImportColumnsLayer(columnsLayer)
		}})
	}
	works = append(works,
		Work{Name: "layers", State: RemainingLayersImported, Func: func() error {
			return s.ImportLayers(columnsLayer)
		}},
		Work{Name: "refresh view", State: Done, Func: m.RefreshView},
	)
	return works.Run(log, &report.State)
}

// withUserMessage makes sure err tells the operator what failed and what to
// do next.
func withUserMessage(err error) error {
	if msg := merry.UserMessage(err); msg != "" {
		return err
	}
	return merry.WithUserMessagef(err, "Import failed: %v. %s", err, retryAdvice)
}

// UserMessage is the plain language description of a failed run.
func UserMessage(err error) string {
	if err == nil {
		return "Work is done!"
	}
	if msg := merry.UserMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
