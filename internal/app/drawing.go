package app

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/drawing"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/luadwg"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
	"github.com/spf13/cobra"
)

var drawingCmd = &cobra.Command{
	Use:   "drawing",
	Short: "Manage the drawings available for import",
}

var drawingLoadCmd = &cobra.Command{
	Use:   "load <script.lua>...",
	Short: "Run drawing scripts and store the drawings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := pkg.OpenSqliteDBx(cfg.Drawings)
		if err != nil {
			return merry.Append(err, cfg.Drawings)
		}
		defer log.ErrIfFail(db.Close)
		for _, filename := range args {
			d, err := luadwg.LoadFile(log, filename)
			if err != nil {
				return err
			}
			if err := d.Save(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", filename, d.Doc.Name())
		}
		return nil
	},
}

var drawingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored drawings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := pkg.OpenSqliteDBx(cfg.Drawings)
		if err != nil {
			return merry.Append(err, cfg.Drawings)
		}
		defer log.ErrIfFail(db.Close)
		// creates the tables of a new file
		if _, err := drawing.NewDB(db, ""); err != nil {
			return err
		}
		docs, err := drawing.ListDocuments(db)
		if err != nil {
			return err
		}
		for _, name := range docs {
			doc, err := drawing.NewDB(db, name)
			if err != nil {
				return err
			}
			xs, err := doc.Layers()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d layers\n", name, len(xs))
		}
		return nil
	},
}

func init() {
	drawingCmd.AddCommand(drawingLoadCmd, drawingListCmd)
	rootCmd.AddCommand(drawingCmd)
}
