package importer

import (
	"time"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

// Work is a stage of the run, entering State on success. Idle marks a
// stage which leaves the state as it is.
type Work struct {
	Name  string
	State State
	Func  func() error
}

type Works []Work

func (x Work) Perform(log *structlog.Logger) error {
	startTime := time.Now()
	log = log.New("work", x.Name)
	log.Debug("begin")
	if err := x.Func(); err != nil {
		return merry.Prepend(err, x.Name)
	}
	keyvals := []interface{}{"elapsed", time.Since(startTime)}
	if x.State != Idle {
		keyvals = append(keyvals, "state", x.State)
	}
	log.Info("done", keyvals...)
	return nil
}

// Run performs works in order, moving state along. On failure state is
// Failed and nothing after the failing work runs.
func (x Works) Run(log *structlog.Logger, state *State) error {
	for _, w := range x {
		if err := w.Perform(log); err != nil {
			*state = Failed
			return err
		}
		if w.State != Idle {
			*state = w.State
		}
	}
	return nil
}
