package clapgo

import (
	"errors"
	"io"
)

// ErrInvalidParserOption is returned by NewParser when an option receives an unusable value
var ErrInvalidParserOption = errors.New("invalid parser option")

// WithStdout sets the writer used for help and version output
func WithStdout(w io.Writer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if w == nil {
			*err = errors.Join(ErrInvalidParserOption, errors.New("nil stdout writer"))
			return
		}
		parser.stdout = w
	}
}

// WithStderr sets the writer used for diagnostics
func WithStderr(w io.Writer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if w == nil {
			*err = errors.Join(ErrInvalidParserOption, errors.New("nil stderr writer"))
			return
		}
		parser.stderr = w
	}
}

// WithAutoHelp controls whether every level receives -h/--help
func WithAutoHelp(enabled bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.autoHelp = enabled
	}
}

// WithAutoVersion controls whether levels with a version receive -V/--version
func WithAutoVersion(enabled bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.autoVersion = enabled
	}
}

// WithPrefixMatching controls whether unambiguous prefixes of long forms are accepted
func WithPrefixMatching(enabled bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.prefixMatching = enabled
	}
}

// WithRenderer replaces the renderer of help entries
func WithRenderer(renderer Renderer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.renderer = renderer
	}
}

// WithHelpConfig sets the help layout options. A renderer set with WithRenderer is kept.
func WithHelpConfig(config HelpConfig) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if config.ColumnGap < 1 {
			config.ColumnGap = 1
		}
		parser.helpConfig = config
	}
}

// WithExitCode sets the exit code ParseOrExit uses for failed parses
func WithExitCode(code int) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if code == 0 {
			*err = errors.Join(ErrInvalidParserOption, errors.New("exit code of a failed parse can't be 0"))
			return
		}
		parser.exitCode = code
	}
}

// WithExitFunc replaces os.Exit in ParseOrExit
func WithExitFunc(exit func(code int)) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.exitFunc = exit
	}
}
