package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/store"
)

// RunsCmd lists stored imports
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored imports",
	Long:  "List every import run in the database, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var (
	runsDBPath string
	runsFormat string
)

func init() {
	RunsCmd.Flags().StringVar(&runsDBPath, "db", "", "Database path (defaults to database.path from am.toml)")
	RunsCmd.Flags().StringVar(&runsFormat, "format", "text", "Output format: text, json, yaml")
}

func runRuns(cmd *cobra.Command, args []string) error {
	database, err := openDatabase(runsDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := store.New(database, nil).Runs(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to list runs")
	}
	if runsFormat != "text" {
		return writeFormatted(cmd.OutOrStdout(), runsFormat, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No imports yet")
		return nil
	}

	data := pterm.TableData{{"Run", "Source", "Started", "Persons", "Families", "Dummies", "Version"}}
	for _, r := range runs {
		data = append(data, []string{
			string(r.ID), r.Source, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprint(r.Persons), fmt.Sprint(r.Families), fmt.Sprint(r.Dummies), r.ToolVersion,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render runs table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
