package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/cmd/gwkit/commands"
	"github.com/teranos/gwkit/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gwkit",
	Short: "gwkit - GeneWeb .gw genealogy toolkit",
	Long: `gwkit - Read, check and import GeneWeb .gw genealogy sources.

Available commands:
  parse    - Parse a .gw file and summarize its blocks
  check    - Report parse errors and persons referenced but never defined
  import   - Store a resolved .gw file in the SQLite database
  watch    - Re-check (and optionally re-import) a file on every change
  runs     - List stored imports
  date     - Parse GW dates and measure spans between them
  am       - Manage gwkit configuration ("I am")

Examples:
  gwkit parse family.gw --format json
  gwkit check family.gw
  gwkit import family.gw --db genealogy.db
  gwkit date diff 12/5/1900 ~1970`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		cfg, err := am.Load()
		if err != nil {
			return err
		}
		if cfg.Log.Verbosity > verbosity {
			verbosity = cfg.Log.Verbosity
		}
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ImportCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.RunsCmd)
	rootCmd.AddCommand(commands.DateCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
