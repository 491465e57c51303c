package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/parser"
)

// CheckCmd reports every malformed block and every dangling person reference
var CheckCmd = &cobra.Command{
	Use:   "check <file.gw>",
	Short: "Report parse errors and persons referenced but never defined",
	Long: `Parse a GeneWeb source file in no-fail mode and report every malformed
block plus every person that is referenced (as a witness, in a relation, ...)
but never defined. Exits non-zero when a block is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	return checkFile(cmd, cfg, args[0])
}

func checkFile(cmd *cobra.Command, cfg *am.Config, path string) error {
	res, g, err := loadSource(path, parseOptions(cfg, true))
	if err != nil {
		return showParseError(cmd.ErrOrStderr(), err)
	}
	report := buildReport(path, res, g)
	out := cmd.OutOrStdout()

	for _, e := range res.Errors {
		fmt.Fprint(out, pterm.Error.Sprintln(e.FormatError(parser.ErrorContextPlain)))
	}

	if len(report.Dummies) > 0 {
		data := pterm.TableData{{"Referenced but not defined"}}
		for _, k := range report.Dummies {
			data = append(data, []string{k})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, "render dummy table")
		}
		fmt.Fprintln(out, table)
	}

	switch {
	case len(report.Errors) > 0:
		return errors.Newf("%s: %d malformed blocks", path, len(report.Errors))
	case len(report.Dummies) > 0:
		fmt.Fprint(out, pterm.Warning.Sprintfln("%s: %d persons, %d never defined", path, report.Persons, len(report.Dummies)))
	default:
		fmt.Fprint(out, pterm.Success.Sprintfln("%s: %d persons, %d families", path, report.Persons, report.Families))
	}
	return nil
}
