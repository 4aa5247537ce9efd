package translate

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/model"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
)

// BaseStory is the story whose elevation the columns layer sets.
const BaseStory = "Base"

const retryAdvice = "Close the generated model and try again."

var (
	ErrMissingSectionProperty = merry.New("missing section property")
	ErrNoColumnsOnLayer       = merry.New("columns layer has no elements")
)

// Restraint masks by the value of a point's restrain record.
var Restraints = map[string]model.Restraint{
	"Hinged": {true, true, true, false, false, false},
	"Fixed":  {true, true, true, true, true, true},
}

// LayerGroup returns the group definition for a layer and entity kind.
func LayerGroup(layer string, kind drawing.Kind) model.Group {
	var suffix string
	switch kind {
	case drawing.KindLine:
		suffix = "LINES"
	case drawing.KindFace:
		suffix = "Shells"
	default:
		suffix = "POINTS"
	}
	g := model.Group{Name: layer + "_" + suffix, Color: -1}
	for i := range g.Flags {
		g.Flags[i] = true
	}
	// no auto seismic and auto wind output
	g.Flags[8], g.Flags[9] = false, false
	return g
}

// ObjectName names the i-th entity of kind imported from layer.
func ObjectName(layer string, kind drawing.Kind, i int) string {
	switch kind {
	case drawing.KindLine:
		return fmt.Sprintf("%s_Fr %d", layer, i)
	case drawing.KindFace:
		return fmt.Sprintf("%s_Sh %d", layer, i)
	default:
		return fmt.Sprintf("%s_Po %d", layer, i)
	}
}

// ImportColumnsLayer sets the base story elevation to the lowest coordinate
// of the lines and faces on layer and imports them as frames and areas.
// Points of the layer are not imported.
func (s *Session) ImportColumnsLayer(layer string) error {
	log := s.Log.New(structlog.KeyUnit, "columns", "layer", layer)
	sel := s.selections
	lines, err := sel.Select(SetColumnsLines, layer, drawing.KindLine)
	if err != nil {
		return err
	}
	faces, err := sel.Select(SetColumnsFaces, layer, drawing.KindFace)
	if err != nil {
		return err
	}
	base, ok := baseElevation(lines, faces)
	if !ok {
		return ErrNoColumnsOnLayer.Appendf("layer %q", layer).
			WithUserMessagef("Columns layer %q has no column. %s", layer, retryAdvice)
	}
	if err := s.Model.SetStoryElevation(BaseStory, base); err != nil {
		return merry.Appendf(err, "story %s", BaseStory)
	}
	log.Info("base elevation set", "elevation", pkg.FormatFloat(base, 3), "lines", len(lines), "faces", len(faces))

	if err := s.importLines(layer, lines); err != nil {
		return err
	}
	if err := s.importFaces(layer, faces); err != nil {
		return err
	}
	sel.Delete(SetColumnsLines)
	sel.Delete(SetColumnsFaces)
	return nil
}

// baseElevation is the minimum Z of every line end and face vertex.
func baseElevation(lines, faces []drawing.Entity) (float64, bool) {
	var (
		base float64
		ok   bool
	)
	for _, xs := range [][]drawing.Entity{lines, faces} {
		for _, e := range xs {
			for _, p := range e.Vertices {
				if !ok || p.Z < base {
					base, ok = p.Z, true
				}
			}
		}
	}
	return base, ok
}

// ImportLayers imports every layer except the given one in document order.
func (s *Session) ImportLayers(except string) error {
	layers, err := s.Doc.Layers()
	if err != nil {
		return merry.Appendf(err, "layers of %s", s.Doc.Name())
	}
	for _, layer := range layers {
		if layer == except {
			continue
		}
		if err := s.ImportLayer(layer); err != nil {
			return err
		}
	}
	return nil
}

// ImportLayer imports lines as frames, faces as areas and points as nodes.
func (s *Session) ImportLayer(layer string) error {
	for _, x := range []struct {
		set  string
		kind drawing.Kind
		add  func(string, []drawing.Entity) error
	}{
		{SetFrames, drawing.KindLine, s.importLines},
		{SetShells, drawing.KindFace, s.importFaces},
		{SetPoints, drawing.KindPoint, s.importPoints},
	} {
		s.selections.Clear(x.set)
		xs, err := s.selections.Select(x.set, layer, x.kind)
		if err != nil {
			return err
		}
		if err := x.add(layer, xs); err != nil {
			return err
		}
	}
	s.Log.Debug("layer imported", "layer", layer)
	return nil
}

func (s *Session) defineGroup(layer string, kind drawing.Kind) (string, error) {
	g := LayerGroup(layer, kind)
	if err := s.Model.DefineGroup(g); err != nil {
		return "", merry.Appendf(err, "group %q", g.Name)
	}
	return g.Name, nil
}

func (s *Session) sectionName(e drawing.Entity, key string) (string, bool, error) {
	h, ok := e.Ext.Lookup(key)
	if !ok {
		return "", false, nil
	}
	r, err := s.fetch(h, sizePointer)
	if err != nil {
		return "", false, merry.Appendf(err, "%s %s %s", e.Kind, e.Handle, key)
	}
	return r.String(0), true, nil
}

func missingSectionProperty(layer string, e drawing.Entity, what string) error {
	return ErrMissingSectionProperty.Appendf("%s %s on layer %q", e.Kind, e.Handle, layer).
		WithUserMessagef("There exist %s with no assigned section property. Check the drawing. %s", what, retryAdvice)
}

func (s *Session) importLines(layer string, lines []drawing.Entity) error {
	group, err := s.defineGroup(layer, drawing.KindLine)
	if err != nil {
		return err
	}
	for i, e := range lines {
		name := ObjectName(layer, drawing.KindLine, i)
		section, ok, err := s.sectionName(e, drawing.KeySecProp)
		if err != nil {
			return err
		}
		if !ok {
			return missingSectionProperty(layer, e, "line(s)")
		}
		err = calls(
			func() error { return s.Model.AddFrameByCoordinates(name, section, e.Vertices[0], e.Vertices[1]) },
			func() error { return s.Model.AssignToGroup(model.ObjectFrame, name, group) },
		)
		if err != nil {
			return merry.Appendf(err, "frame %q", name)
		}
		s.Counts.Frames++
		if err := s.applyFrameLoads(name, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) importFaces(layer string, faces []drawing.Entity) error {
	group, err := s.defineGroup(layer, drawing.KindFace)
	if err != nil {
		return err
	}
	for i, e := range faces {
		name := ObjectName(layer, drawing.KindFace, i)
		section, slab, err := s.sectionName(e, drawing.KeySecProp)
		if err != nil {
			return err
		}
		wall := false
		if !slab {
			section, wall, err = s.sectionName(e, drawing.KeyWallProp)
			if err != nil {
				return err
			}
			if !wall {
				return missingSectionProperty(layer, e, "shell(s)")
			}
		}
		err = calls(
			func() error { return s.Model.AddAreaByCoordinates(name, section, e.Vertices) },
			func() error { return s.Model.AssignToGroup(model.ObjectArea, name, group) },
		)
		if err != nil {
			return merry.Appendf(err, "area %q", name)
		}
		s.Counts.Areas++
		if err := s.applyAreaLoads(name, e, wall); err != nil {
			return err
		}
		if err := s.assignLateralLabels(name, e); err != nil {
			return err
		}
	}
	return nil
}

// assignLateralLabels assigns the pier and spandrel labels of a face unless
// they are "None". Applications without lateral labels skip it.
func (s *Session) assignLateralLabels(area string, e drawing.Entity) error {
	if !s.Variant.HasLateralLabels() {
		return nil
	}
	pier, ok, err := s.sectionName(e, drawing.KeyPierID)
	if err != nil {
		return err
	}
	if ok && pier != labelNone {
		if err := s.Model.AssignPier(area, pier); err != nil {
			return merry.Appendf(err, "area %q pier %q", area, pier)
		}
	}
	key := drawing.KeySpandrelID
	if _, ok := e.Ext.Lookup(key); !ok {
		key = drawing.KeySpandrelIDLegacy
	}
	spandrel, ok, err := s.sectionName(e, key)
	if err != nil {
		return err
	}
	if ok && spandrel != labelNone {
		if err := s.Model.AssignSpandrel(area, spandrel); err != nil {
			return merry.Appendf(err, "area %q spandrel %q", area, spandrel)
		}
	}
	return nil
}

func (s *Session) importPoints(layer string, points []drawing.Entity) error {
	group, err := s.defineGroup(layer, drawing.KindPoint)
	if err != nil {
		return err
	}
	for i, e := range points {
		name := ObjectName(layer, drawing.KindPoint, i)
		err := calls(
			func() error { return s.Model.AddPointByCoordinates(name, e.Vertices[0]) },
			func() error { return s.Model.AssignToGroup(model.ObjectPoint, name, group) },
		)
		if err != nil {
			return merry.Appendf(err, "point %q", name)
		}
		s.Counts.Points++
		value, ok, err := s.sectionName(e, drawing.KeyRestrain)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		restraint, known := Restraints[value]
		if !known {
			s.Log.Warn("point restraint skipped: unknown value", "point", name, "restrain", value)
			continue
		}
		if err := s.Model.SetRestraint(name, restraint); err != nil {
			return merry.Appendf(err, "point %q", name)
		}
	}
	return nil
}
