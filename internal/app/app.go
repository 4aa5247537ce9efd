// Package app is the cad2model command line: loading drawing scripts,
// running imports into an analysis application and inspecting the journal
// of recorded model calls.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/config"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg/cfgfile"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg/logfile"
	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Commit string
	UUID   string
	Date   string
	Time   string
}

var (
	log       = structlog.New()
	buildInfo BuildInfo

	configFilename string
	cfg            config.Config
	closeLogFile   = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "cad2model",
	Short: "Import CAD drawings into structural analysis models",
	Long: `cad2model - CAD drawing to structural model importer

Reads layers, entities and engineering attributes of a drawing and builds
the model of an analysis application from them: concrete materials, load
patterns, frame and area sections with stiffness modifiers, frames, areas,
restrained points, loads, piers and spandrels.

Supported applications: ETABS, SAP2000.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		closeLogFile()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configFilename, "config",
		cfgfile.NextToExecutable(config.Filename), "settings file")
}

// Main runs the command line and exits with status 1 on failure.
func Main(info BuildInfo) {
	buildInfo = info
	if err := Execute(os.Args[1:], os.Stdout); err != nil {
		closeLogFile()
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// Execute runs the command line with args, printing results to out.
func Execute(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	err := rootCmd.Execute()
	if err != nil {
		log.PrintErr(err, "stack", pkg.FormatMerryStacktrace(err, "\n"))
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configFilename)
	if err != nil {
		return err
	}
	cfg = c.Resolve(filepath.Dir(configFilename))

	var output io.Writer = os.Stderr
	if cfg.LogDir != "" {
		f, err := logfile.New(cfg.LogDir, ".cad2model")
		if err != nil {
			return merry.Append(err, "open log file")
		}
		closeLogFile = func() {
			log.ErrIfFail(f.Close)
			closeLogFile = func() {}
		}
		output = io.MultiWriter(os.Stderr, f)
	}
	pkg.SetLogOutput(output, cfg.LogLevel, log)
	log.Debug("config loaded", "file", configFilename, "target", cfg.Target, "command", cmd.CommandPath())
	return nil
}

func userMessage(err error) string {
	if msg := merry.UserMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
