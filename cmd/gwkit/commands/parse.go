package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/parser"
)

// ParseCmd parses a GW file and prints a summary of what it holds
var ParseCmd = &cobra.Command{
	Use:   "parse <file.gw>",
	Short: "Parse a .gw file and summarize its blocks",
	Long: `Parse a GeneWeb source file, resolve every person reference and print
block counts, persons, families and the persons referenced but never defined.

Examples:
  gwkit parse family.gw
  gwkit parse family.gw --no-fail --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	parseNoFail bool
	parseFormat string
)

// errParseFailed is returned after the parse error was already shown.
var errParseFailed = errors.New("parse failed")

func init() {
	ParseCmd.Flags().BoolVar(&parseNoFail, "no-fail", false, "Skip malformed blocks instead of aborting")
	ParseCmd.Flags().StringVar(&parseFormat, "format", "text", "Output format: text, json, yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	res, g, err := loadSource(args[0], parseOptions(cfg, parseNoFail))
	if err != nil {
		return showParseError(cmd.ErrOrStderr(), err)
	}

	report := buildReport(args[0], res, g)
	if parseFormat == "text" {
		return printReport(cmd.OutOrStdout(), report)
	}
	return writeFormatted(cmd.OutOrStdout(), parseFormat, report)
}

// showParseError prints a ParseError with terminal formatting and returns
// errParseFailed; any other error is returned unchanged.
func showParseError(w io.Writer, err error) error {
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		return err
	}
	fmt.Fprintln(w, pe.FormatError(parser.ErrorContextTerminal))
	return errParseFailed
}

func printReport(w io.Writer, r Report) error {
	mode := ""
	if r.GwPlus {
		mode = ", gwplus"
	}
	fmt.Fprintf(w, "%s (%s%s)\n\n", r.File, r.Encoding, mode)

	tags := make([]string, 0, len(r.Blocks))
	for tag := range r.Blocks {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	data := pterm.TableData{{"Block", "Count"}}
	for _, tag := range tags {
		data = append(data, []string{tag, fmt.Sprint(r.Blocks[tag])})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "render block table")
	}
	fmt.Fprintln(w, table)

	fmt.Fprintf(w, "\nPersons:  %d\nFamilies: %d\nDummies:  %d\n", r.Persons, r.Families, len(r.Dummies))
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Skipped:  %d malformed blocks\n", len(r.Errors))
	}
	return nil
}
