package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/journal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect model calls recorded by imports",
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List import runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(db *sqlx.DB) error {
			runs, err := journal.Runs(db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				state := "unfinished"
				if r.FinishedAt != nil {
					state = "finished " + r.FinishedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%d calls\t%s\n",
					r.RunID, r.Target, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Calls, state)
			}
			return nil
		})
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show [run]",
	Short: "Print the calls of a run, the last one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(db *sqlx.DB) error {
			var run string
			if len(args) > 0 {
				run = args[0]
			} else {
				last, ok, err := journal.LastRun(db)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
					return nil
				}
				run = last.RunID
			}
			calls, err := journal.Calls(db, run)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(calls)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(b))
			return nil
		})
	},
}

var journalResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Finish unfinished runs left by interrupted imports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(db *sqlx.DB) error {
			n, err := journal.Reset(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d runs finished\n", n)
			return nil
		})
	},
}

func init() {
	journalCmd.AddCommand(journalRunsCmd, journalShowCmd, journalResetCmd)
	rootCmd.AddCommand(journalCmd)
}

func withJournal(f func(*sqlx.DB) error) error {
	db, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer log.ErrIfFail(db.Close)
	return f(db)
}
