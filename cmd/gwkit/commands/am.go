package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage gwkit configuration",
	Long: `am: manage gwkit configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GWKIT_* prefix)
3. Project config (./am.toml, searched up the directory tree)
4. User config (~/.gwkit/am.toml)
5. System config (/etc/gwkit/am.toml)
6. Default values

Examples:
  gwkit am show                    # Show current configuration
  gwkit am show --format json      # Show configuration in JSON format
  gwkit am where                   # Show where every setting comes from
  gwkit am check ./am.toml         # Strictly check a config file
  gwkit am init                    # Write ./am.toml with default values
  gwkit am set watch.debounce_ms 50 --user`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current gwkit configuration from all sources",
	RunE:  runAmShow,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long:  "List every effective setting together with the source it was read from.",
	RunE:  runAmWhere,
}

var amCheckCmd = &cobra.Command{
	Use:   "check <am.toml>",
	Short: "Strictly check a configuration file",
	Long: `Decode a configuration file strictly, listing keys gwkit does not read
(usually typos) and validating every value.`,
	Args: cobra.ExactArgs(1),
	RunE: runAmCheck,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Args:  cobra.NoArgs,
	RunE:  runAmInit,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Long: `Set one dotted key (e.g. parse.no_fail) in the project or user config
file. The previous file is kept as .back1, .back2 and .back3.`,
	Args: cobra.ExactArgs(2),
	RunE: runAmSet,
}

var (
	configFormat string
	configFile   string
	configUser   bool
	configForce  bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	for _, c := range []*cobra.Command{amInitCmd, amSetCmd} {
		c.Flags().StringVar(&configFile, "file", "am.toml", "Config file to write")
		c.Flags().BoolVar(&configUser, "user", false, "Write the user config (~/.gwkit/am.toml)")
	}
	amInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amCheckCmd)
	AmCmd.AddCommand(amInitCmd)
	AmCmd.AddCommand(amSetCmd)
}

func targetConfigPath() (string, error) {
	if configUser {
		return am.UserConfigPath()
	}
	return configFile, nil
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if configFormat != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# gwkit configuration")
	}
	return writeFormatted(cmd.OutOrStdout(), configFormat, cfg)
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/gwkit/am.toml")
	fmt.Fprintln(out, "  3. [USER]     ~/.gwkit/am.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      "+am.EnvPrefix+"_* environment variables")
	fmt.Fprintln(out)

	data := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range am.GetConfigIntrospection() {
		value := fmt.Sprintf("%v", s.Value)
		if len(value) > 50 {
			value = value[:47] + "..."
		}
		data = append(data, []string{s.Key, value, strings.ToUpper(string(s.Source)), s.SourcePath})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render settings table")
	}
	fmt.Fprintln(out, table)
	return nil
}

func runAmCheck(cmd *cobra.Command, args []string) error {
	res, err := am.CheckFile(args[0])
	out := cmd.OutOrStdout()
	if res != nil {
		for _, k := range res.Unknown {
			fmt.Fprint(out, pterm.Warning.Sprintfln("unknown key %q", k))
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprint(out, pterm.Success.Sprintfln("%s is valid", args[0]))
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath()
	if err != nil {
		return err
	}
	if _, err := am.Init(path, configForce); err != nil {
		return err
	}
	am.Reset()
	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("wrote %s", path))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath()
	if err != nil {
		return err
	}
	if _, err := am.Set(path, args[0], args[1]); err != nil {
		return err
	}
	am.Reset()
	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("%s = %s in %s", strings.ToLower(args[0]), args[1], path))
	return nil
}
