package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/store"
	"github.com/teranos/gwkit/watch"
)

// WatchCmd re-checks a GW file every time it is saved
var WatchCmd = &cobra.Command{
	Use:   "watch <file.gw>",
	Short: "Re-check (and optionally re-import) a file on every change",
	Long: `Check a GeneWeb source file, then check it again after every change.
With --import every successful check is also stored as a new import run.
Changes arriving within watch.debounce_ms of each other are handled once.

Examples:
  gwkit watch family.gw
  gwkit watch family.gw --import --db genealogy.db`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchImport bool
	watchDBPath string
)

func init() {
	WatchCmd.Flags().BoolVar(&watchImport, "import", false, "Store every successful check as an import run")
	WatchCmd.Flags().StringVar(&watchDBPath, "db", "", "Database path for --import (defaults to database.path from am.toml)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	path := args[0]

	var s *store.Store
	if watchImport {
		var database *sql.DB
		database, err = openDatabase(watchDBPath)
		if err != nil {
			return err
		}
		defer database.Close()
		s = store.New(database, nil)
	}

	w, err := watch.New(path, cfg.GetDebounce(), func(ctx context.Context) error {
		if err := checkFile(cmd, cfg, path); err != nil {
			return err
		}
		if s == nil {
			return nil
		}
		id, _, err := importFile(ctx, s, cfg, path, true)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), pterm.Info.Sprintfln("Stored as run %s", id))
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), pterm.Info.Sprintfln("Watching %s (Ctrl+C to stop)", path))
	return w.Run(cmd.Context())
}
