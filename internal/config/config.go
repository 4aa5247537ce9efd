// Package config holds the settings of cad2model: the target application,
// where drawings, journals and logs live, and the default import options.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry"
	"github.com/hashicorp/go-multierror"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/importer"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/modifier"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg/cfgfile"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/variant"
	"gopkg.in/yaml.v3"
)

// Filename is the settings file name looked up next to the executable.
const Filename = "cad2model.yaml"

// NoColumnsLayer is the columns layer value of the import form meaning none.
const NoColumnsLayer = "None"

var ErrInvalid = merry.New("invalid configuration")

var logLevels = []string{"dbg", "inf", "wrn", "err"}

type Config struct {
	// Target is the analysis application: ETABS or SAP2000.
	Target string `yaml:"target"`
	// Drawings is the sqlite file drawing scripts are loaded into.
	Drawings string `yaml:"drawings"`
	// Journal is the sqlite file model calls are recorded to.
	Journal  string `yaml:"journal"`
	LogDir   string `yaml:"log_dir"`
	LogLevel string `yaml:"log_level"`
	Import   Import `yaml:"import"`
}

// Import holds options as written in the file. Scheme labels of the import
// form are accepted.
type Import struct {
	SelfWeight    float64 `yaml:"self_weight_multiplier"`
	Modifiers     string  `yaml:"modifiers"`
	WallCrack     string  `yaml:"wall_crack"`
	SlabDimension string  `yaml:"slab_dimension"`
	ColumnsLayer  string  `yaml:"columns_layer"`
}

func Default() Config {
	return Config{
		Target:   variant.Etabs.String(),
		Drawings: "drawings.sqlite",
		Journal:  "journal.sqlite",
		LogDir:   "logs",
		LogLevel: "inf",
		Import: Import{
			SelfWeight:    1,
			Modifiers:     string(modifier.AllOnes),
			WallCrack:     string(modifier.Cracked),
			SlabDimension: string(modifier.Slab2D),
			ColumnsLayer:  NoColumnsLayer,
		},
	}
}

// Variant parses Target.
func (c Config) Variant() (variant.Variant, error) {
	return variant.Parse(c.Target)
}

// Options converts the import settings, failing on any unknown name.
func (c Import) Options() (importer.Options, error) {
	var (
		mulErr *multierror.Error
		opts   importer.Options
		err    error
	)
	if opts.Scheme, err = modifier.ParseScheme(c.Modifiers); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if opts.WallCrack, err = modifier.ParseWallCrack(c.WallCrack); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if opts.SlabDimension, err = modifier.ParseSlabDimension(c.SlabDimension); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if c.SelfWeight != 0 && c.SelfWeight != 1 {
		mulErr = multierror.Append(mulErr, merry.Errorf("self weight multiplier must be 0 or 1, got %v", c.SelfWeight))
	}
	opts.SelfWeight = c.SelfWeight
	opts.ColumnsLayer = strings.TrimSpace(c.ColumnsLayer)
	if strings.EqualFold(opts.ColumnsLayer, NoColumnsLayer) {
		opts.ColumnsLayer = ""
	}
	if err := mulErr.ErrorOrNil(); err != nil {
		return opts, ErrInvalid.Append(err.Error())
	}
	return opts, nil
}

func (c Config) Validate() error {
	var mulErr *multierror.Error
	if _, err := c.Variant(); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if _, err := c.Import.Options(); err != nil {
		mulErr = multierror.Append(mulErr, err)
	}
	if !validLogLevel(c.LogLevel) {
		mulErr = multierror.Append(mulErr, merry.Errorf("log level must be one of %s, got %q",
			strings.Join(logLevels, ", "), c.LogLevel))
	}
	if c.Drawings == "" {
		mulErr = multierror.Append(mulErr, merry.New("drawings file is not set"))
	}
	if c.Journal == "" {
		mulErr = multierror.Append(mulErr, merry.New("journal file is not set"))
	}
	if err := mulErr.ErrorOrNil(); err != nil {
		return ErrInvalid.Append(err.Error())
	}
	return nil
}

func validLogLevel(s string) bool {
	for _, x := range logLevels {
		if x == s {
			return true
		}
	}
	return false
}

// Resolve makes relative paths relative to dir.
func (c Config) Resolve(dir string) Config {
	for _, p := range []*string{&c.Drawings, &c.Journal, &c.LogDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return c
}

func file(filename string) *cfgfile.F {
	return cfgfile.New(filename, yaml.Marshal, yaml.Unmarshal)
}

// Load reads the settings file. Values missing from the file keep their
// defaults and a missing file gives the defaults.
func Load(filename string) (Config, error) {
	c := Default()
	if err := file(filename).Get(&c); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, merry.Append(err, filename)
	}
	return c, nil
}

// Exists reports whether the settings file is present.
func Exists(filename string) bool {
	return file(filename).Exists()
}

func Save(filename string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return file(filename).Set(c)
}
