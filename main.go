package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mcncl/tojson/internal/command"
	"github.com/mcncl/tojson/internal/config"
	"github.com/mcncl/tojson/internal/errors"
	"github.com/mcncl/tojson/internal/parser"
	"github.com/mcncl/tojson/internal/pipeline"
	"github.com/mcncl/tojson/internal/value"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `help:"Path to input value document. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Raw     bool   `help:"Remove all whitespace from the output." short:"r"`
	Indent  int    `help:"Number of spaces per indentation level."`
	Config  string `help:"Path to a config file. Defaults to the nearest .tojson.yml." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("tojson"),
		kong.Description("Convert value documents to JSON text"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("tojson version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Indent, CLI.Raw, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Dev.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	err = run(&Context{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: tojson --help\n")
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the value documents
	input, err := parseInput(ctx)
	if err != nil {
		return err
	}

	// 2. Convert to JSON text
	cmd := command.NewToJSON(ctx.Logger)
	call := command.Call{
		Head:   value.Span{},
		Raw:    ctx.Config.Output.Raw,
		Indent: ctx.Config.Output.Indent,
	}
	out, err := cmd.Run(call, input)
	if err != nil {
		return err
	}

	// 3. Unwrap the result value
	text, err := resultText(out.IntoValue(call.Head))
	if err != nil {
		return err
	}
	if ctx.Config.Output.TrailingNewline {
		text += "\n"
	}

	// 4. Output the result
	return writeOutput(ctx, text)
}

// resultText extracts the rendered text from the command result
func resultText(v value.Value) (string, error) {
	switch v := v.(type) {
	case value.String:
		return v.Val, nil
	case value.Error:
		return "", v.Err
	default:
		return "", errors.NewConversionError(fmt.Sprintf("unexpected %s result", v.Type()), nil)
	}
}

// parseInput reads value documents from file or stdin
func parseInput(ctx *Context) (pipeline.Data, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return nil, errors.NewInputError("failed to access stdin", err)
		}
		if (info.Mode() & os.ModeCharDevice) != 0 {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(data))
}

// writeOutput writes text to file or stdout
func writeOutput(ctx *Context, text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.Debug("wrote JSON", zap.String("path", CLI.Output))
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
