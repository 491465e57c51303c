package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/date"
)

// DateCmd groups the date utilities
var DateCmd = &cobra.Command{
	Use:   "date",
	Short: "Parse GW dates and measure spans between them",
	Long: `Inspect dates written in GW notation.

Examples:
  gwkit date parse "~12/5/1900"
  gwkit date parse "0(spring_1926)"
  gwkit date diff 12/5/1900 3/1970
  gwkit date compare 1900 ">1899"`,
}

var dateParseCmd = &cobra.Command{
	Use:   "parse <date>",
	Short: "Show how a GW date is understood",
	Args:  cobra.ExactArgs(1),
	RunE:  runDateParse,
}

var dateDiffCmd = &cobra.Command{
	Use:   "diff <from> <to>",
	Short: "Measure the span between two dates",
	Long:  "Measure the span between two dates using 365-day years and 30-day months.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDateDiff,
}

var dateCompareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Order two dates",
	Args:  cobra.ExactArgs(2),
	RunE:  runDateCompare,
}

var (
	dateFormat    string
	strictCompare bool
)

func init() {
	dateParseCmd.Flags().StringVar(&dateFormat, "format", "text", "Output format: text, json, yaml")
	dateCompareCmd.Flags().BoolVar(&strictCompare, "strict", false, "Treat precisions as part of the order")

	DateCmd.AddCommand(dateParseCmd)
	DateCmd.AddCommand(dateDiffCmd)
	DateCmd.AddCommand(dateCompareCmd)
}

// DateInfo is the decomposed form of a parsed date.
type DateInfo struct {
	Canonical  string `json:"canonical" yaml:"canonical"`
	Kind       string `json:"kind" yaml:"kind"` // calendar, text or none
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	Day        int    `json:"day,omitempty" yaml:"day,omitempty"`
	Month      int    `json:"month,omitempty" yaml:"month,omitempty"`
	Year       int    `json:"year,omitempty" yaml:"year,omitempty"`
	Precision  string `json:"precision,omitempty" yaml:"precision,omitempty"`
	Bound      string `json:"bound,omitempty" yaml:"bound,omitempty"`
	Calendar   string `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	Compressed *int   `json:"compressed,omitempty" yaml:"compressed,omitempty"`
}

func describeDate(d date.Date) DateInfo {
	switch v := d.(type) {
	case date.CalendarDate:
		info := DateInfo{
			Canonical: v.String(),
			Kind:      "calendar",
			Day:       v.Day,
			Month:     v.Month,
			Year:      v.Year,
			Precision: v.Prec.Kind.String(),
			Calendar:  v.Calendar.String(),
		}
		if v.Prec.Bound != nil {
			info.Bound = v.Prec.Bound.String()
		}
		if code, ok := v.DateValue.Compress(); ok {
			info.Compressed = &code
		}
		return info
	case date.TextDate:
		return DateInfo{Canonical: v.String(), Kind: "text", Text: v.Text}
	}
	return DateInfo{Canonical: "0", Kind: "none"}
}

func runDateParse(cmd *cobra.Command, args []string) error {
	d, err := date.Parse(args[0])
	if err != nil {
		return err
	}
	info := describeDate(d)
	if dateFormat != "text" {
		return writeFormatted(cmd.OutOrStdout(), dateFormat, info)
	}
	printDateInfo(cmd.OutOrStdout(), info)
	return nil
}

func printDateInfo(w io.Writer, info DateInfo) {
	fmt.Fprintf(w, "Canonical:  %s\n", info.Canonical)
	switch info.Kind {
	case "text":
		fmt.Fprintf(w, "Text:       %s\n", info.Text)
	case "calendar":
		fmt.Fprintf(w, "Day:        %d\nMonth:      %d\nYear:       %d\n", info.Day, info.Month, info.Year)
		fmt.Fprintf(w, "Precision:  %s\n", info.Precision)
		if info.Bound != "" {
			fmt.Fprintf(w, "Bound:      %s\n", info.Bound)
		}
		fmt.Fprintf(w, "Calendar:   %s\n", info.Calendar)
		if info.Compressed != nil {
			fmt.Fprintf(w, "Compressed: %d\n", *info.Compressed)
		}
	default:
		fmt.Fprintln(w, "No date")
	}
}

// structured parses a date that must carry day/month/year values.
func structured(text string) (date.DateValue, error) {
	d, err := date.Parse(text)
	if err != nil {
		return date.DateValue{}, err
	}
	v, ok := date.Value(d)
	if !ok {
		return date.DateValue{}, errors.WithHint(
			errors.NewInvalidRequestError("%q has no day, month and year", text),
			"free-text and empty dates cannot be measured")
	}
	return v, nil
}

func runDateDiff(cmd *cobra.Command, args []string) error {
	from, err := structured(args[0])
	if err != nil {
		return err
	}
	to, err := structured(args[1])
	if err != nil {
		return err
	}
	span, err := date.Difference(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), describeSpan(span))
	return nil
}

var spanQualifiers = map[date.PrecisionKind]string{
	date.About:  "about ",
	date.Maybe:  "maybe ",
	date.Before: "less than ",
	date.After:  "more than ",
}

func describeSpan(span *date.DateValue) string {
	if span == nil {
		return "unbounded"
	}
	return fmt.Sprintf("%s%d years, %d months, %d days", spanQualifiers[span.Prec.Kind], span.Year, span.Month, span.Day)
}

func runDateCompare(cmd *cobra.Command, args []string) error {
	a, err := date.Parse(args[0])
	if err != nil {
		return err
	}
	b, err := date.Parse(args[1])
	if err != nil {
		return err
	}
	c, err := date.Compare(a, b, strictCompare)
	if err != nil {
		return err
	}
	op := "="
	switch {
	case c < 0:
		op = "<"
	case c > 0:
		op = ">"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", a, op, b)
	return nil
}
