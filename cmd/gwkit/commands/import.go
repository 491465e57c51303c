package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/store"
)

// ImportCmd stores a resolved GW file as a new import run
var ImportCmd = &cobra.Command{
	Use:   "import <file.gw>",
	Short: "Store a resolved .gw file in the SQLite database",
	Long: `Parse and resolve a GeneWeb source file, then write every person, family,
event, relation and note to the SQLite database as one import run.

Examples:
  gwkit import family.gw
  gwkit import family.gw --db genealogy.db --no-fail`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importDBPath string
	importNoFail bool
)

func init() {
	ImportCmd.Flags().StringVar(&importDBPath, "db", "", "Database path (defaults to database.path from am.toml)")
	ImportCmd.Flags().BoolVar(&importNoFail, "no-fail", false, "Skip malformed blocks instead of aborting")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase(importDBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	s := store.New(database, nil)
	id, report, err := importFile(cmd.Context(), s, cfg, args[0], importNoFail)
	if err != nil {
		return showParseError(cmd.ErrOrStderr(), err)
	}
	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("Imported %s as run %s: %d persons, %d families, %d never defined",
		args[0], id, report.Persons, report.Families, len(report.Dummies)))
	return nil
}

func importFile(ctx context.Context, s *store.Store, cfg *am.Config, path string, noFail bool) (store.RunID, Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, g, err := loadSource(path, parseOptions(cfg, noFail))
	if err != nil {
		return "", Report{}, err
	}
	id, err := s.SaveGraph(ctx, path, g)
	if err != nil {
		return "", Report{}, err
	}
	return id, buildReport(path, res, g), nil
}
