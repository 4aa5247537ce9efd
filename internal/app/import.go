package app

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/attr"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/importer"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/journal"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/luadwg"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importFlags struct {
	target        string
	modifiers     string
	wallCrack     string
	slabDimension string
	selfWeight    float64
	columnsLayer  string
	script        bool
}

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Import a drawing into a new model",
	Long: `Import a drawing into a new model of the target application.

The document is one loaded with 'cad2model drawing load', or a drawing
script when --script is given. The model is started from a blank file:
materials, load patterns and sections come first, then the columns layer
when one is chosen, then every other layer in drawing order.

A failed import leaves a partial model. Close it and try again.

Examples:
  # ETABS, cracked ACI 318-11 modifiers, base level from the Columns layer
  cad2model import tower.dwg --target ETABS --modifiers ACI318-11 --columns-layer Columns

  # SAP2000 straight from a drawing script, no self weight
  cad2model import --script frame.lua --target SAP2000 --self-weight 0`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	f := importCmd.Flags()
	f.StringVarP(&importFlags.target, "target", "t", "", "analysis application: ETABS or SAP2000")
	f.StringVarP(&importFlags.modifiers, "modifiers", "m", "", "section modifiers: AllOnes, ACI318-11, TorsionOnly, EgyptianStandard")
	f.StringVar(&importFlags.wallCrack, "wall-crack", "", "wall modifiers: cracked or uncracked")
	f.StringVar(&importFlags.slabDimension, "slab-dimension", "", "slab modifiers: 2D or 3D")
	f.Float64Var(&importFlags.selfWeight, "self-weight", 1, "dead pattern self weight multiplier: 0 or 1")
	f.StringVar(&importFlags.columnsLayer, "columns-layer", "", `layer setting the base story level, "None" for none`)
	f.BoolVar(&importFlags.script, "script", false, "treat the argument as a drawing script")
}

func runImport(cmd *cobra.Command, args []string) error {
	c := cfg
	flags := cmd.Flags()
	if flags.Changed("target") {
		c.Target = importFlags.target
	}
	if flags.Changed("modifiers") {
		c.Import.Modifiers = importFlags.modifiers
	}
	if flags.Changed("wall-crack") {
		c.Import.WallCrack = importFlags.wallCrack
	}
	if flags.Changed("slab-dimension") {
		c.Import.SlabDimension = importFlags.slabDimension
	}
	if flags.Changed("self-weight") {
		c.Import.SelfWeight = importFlags.selfWeight
	}
	if flags.Changed("columns-layer") {
		c.Import.ColumnsLayer = importFlags.columnsLayer
	}
	if err := c.Validate(); err != nil {
		return merry.WithUserMessagef(err, "%v", err)
	}
	v, _ := c.Variant()
	opts, _ := c.Import.Options()

	doc, store, closeDoc, err := openDocument(args[0], importFlags.script)
	if err != nil {
		return err
	}
	defer closeDoc()

	jdb, err := journal.Open(c.Journal)
	if err != nil {
		return err
	}
	defer log.ErrIfFail(jdb.Close)

	imp := importer.New(v, journal.Connector{DB: jdb, Target: v.String(), Log: log}, log)
	report, err := imp.Run(doc, store, opts)
	out := cmd.OutOrStdout()
	b, errYaml := yaml.Marshal(report)
	if errYaml != nil {
		return errYaml
	}
	fmt.Fprint(out, string(b))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, importer.UserMessage(nil))
	return nil
}

// openDocument opens a stored drawing, or runs a drawing script.
func openDocument(name string, script bool) (drawing.Document, attr.Store, func(), error) {
	if script {
		d, err := luadwg.LoadFile(log, name)
		if err != nil {
			return nil, nil, nil, err
		}
		return d.Doc, d.Store, func() {}, nil
	}
	db, err := pkg.OpenSqliteDBx(cfg.Drawings)
	if err != nil {
		return nil, nil, nil, merry.Append(err, cfg.Drawings)
	}
	closeDB := func() { log.ErrIfFail(db.Close) }
	docs, err := drawing.ListDocuments(db)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	if !contains(docs, name) {
		closeDB()
		return nil, nil, nil, merry.Errorf("no drawing %q in %s", name, cfg.Drawings).
			WithUserMessagef("Drawing %q is not loaded. Load it with 'cad2model drawing load'.", name)
	}
	doc, err := drawing.NewDB(db, name)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	store, err := attr.NewSQLStore(db)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return doc, store, closeDB, nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
