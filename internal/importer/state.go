package importer

import "fmt"

// State is the progress of an import run. Failed is absorbing.
type State int

const (
	Idle State = iota
	MaterialsLoaded
	LoadPatternsLoaded
	SectionsLoaded
	ColumnsLayerImported
	RemainingLayersImported
	Done
	Failed
)

var stateNames = map[State]string{
	Idle:                    "idle",
	MaterialsLoaded:         "materials loaded",
	LoadPatternsLoaded:      "load patterns loaded",
	SectionsLoaded:          "sections loaded",
	ColumnsLayerImported:    "columns layer imported",
	RemainingLayersImported: "remaining layers imported",
	Done:                    "done",
	Failed:                  "failed",
}

func (x State) String() string {
	if s, ok := stateNames[x]; ok {
		return s
	}
	return fmt.Sprintf("State(%d)", int(x))
}

func (x State) MarshalYAML() (interface{}, error) {
	return x.String(), nil
}
