package parser

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/gwkit/errors"
)

// ErrorContext indicates the environment where parser errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (logs, JSON)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindLex     ErrorKind = "lex"     // Unreadable or undecodable input
	ErrorKindDate    ErrorKind = "date"    // Malformed date text
	ErrorKindGrammar ErrorKind = "grammar" // Record violates the block grammar
)

// ParseError is a grammar, date or input failure annotated with the
// approximate source line.
type ParseError struct {
	Err         error     // Underlying error; wraps ErrDateParse or ErrGrammar
	Kind        ErrorKind // Error category
	Message     string    // Human-readable message
	Line        int       // Approximate 1-based source line, 0 if unknown
	Block       string    // Tag of the block being parsed
	Token       string    // Offending token (optional)
	Suggestions []string  // Possible fixes
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

func (e *ParseError) formatPlainError() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Message)
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, ". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *ParseError) formatTerminalError() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))

	b.WriteString("\n\n" + pterm.LightCyan("Context:"))
	if e.Line > 0 {
		fmt.Fprintf(&b, "\n  %s %d", pterm.Yellow("Line:"), e.Line)
	}
	if e.Block != "" {
		fmt.Fprintf(&b, "\n  %s %s", pterm.Yellow("Block:"), e.Block)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, "\n  %s '%s'", pterm.Yellow("Token:"), e.Token)
	}
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\n" + pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", s)
		}
	}
	return b.String()
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newGrammarError creates a grammar ParseError with a formatted message.
func newGrammarError(format string, args ...interface{}) *ParseError {
	msg := fmt.Sprintf(format, args...)
	return &ParseError{
		Kind:    ErrorKindGrammar,
		Message: msg,
		Err:     errors.Wrap(errors.ErrGrammar, msg),
	}
}

// newDateError wraps a date.Parse failure.
func newDateError(tok string, err error) *ParseError {
	return &ParseError{
		Kind:    ErrorKindDate,
		Message: err.Error(),
		Token:   tok,
		Err:     err,
	}
}

// WithToken sets the token that caused the error
func (e *ParseError) WithToken(tok string) *ParseError {
	e.Token = tok
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// at fills in position details that the low-level parsers cannot know.
func (e *ParseError) at(line int, block string) *ParseError {
	if e.Line == 0 {
		e.Line = line
	}
	if e.Block == "" {
		e.Block = block
	}
	return e
}

// asParseError converts any error into a *ParseError.
func asParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Kind: ErrorKindLex, Message: err.Error(), Err: err}
}
