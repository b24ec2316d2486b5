package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/mcncl/jsonalchemy/internal/config"
	"github.com/mcncl/jsonalchemy/internal/emitter"
	"github.com/mcncl/jsonalchemy/internal/errors"
	"github.com/mcncl/jsonalchemy/internal/parser"
	"github.com/skillian/logging"
)

// CLI defines the command-line interface
var CLI struct {
	Input          string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output         string `help:"Path to output Python file. If not specified, writes to stdout." short:"o" type:"path"`
	Name           string `help:"Type name used for the table and class. Defaults to the configured table_name." short:"n"`
	Config         string `help:"Path to a YAML config file. If not specified, .jsonalchemy.yml is searched for from the working directory up." short:"c" type:"path"`
	PreserveFloats bool   `help:"Read number literals as written instead of rewriting .0 to .1 before parsing." short:"P"`
	Debug          bool   `help:"Enable debug logging." short:"d"`
	Version        bool   `help:"Show version information." short:"v"`
	Interactive    bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

var logger = logging.GetLogger(
	"jsonalchemy",
	logging.LoggerHandler(
		new(logging.ConsoleHandler),
		logging.HandlerFormatter(logging.DefaultFormatter{}),
		logging.HandlerLevel(logging.VerboseLevel),
	),
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jsonalchemy"),
		kong.Description("A tool to convert JSON to SQLAlchemy models"),
		kong.UsageOnError(),
	)

	// No arguments at all means interactive paste mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := app.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError() has already printed usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonalchemy version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonalchemy --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies CLI overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(configPath, CLI.Name, CLI.PreserveFloats, CLI.Debug)
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Debug {
		logger.SetLevel(logging.VerboseLevel)
	} else {
		logger.SetLevel(logging.WarnLevel)
	}
	if logger.Level() <= logging.VerboseLevel {
		logger.Verbose("configuration:\n\n%v", spew.Sdump(ctx.Config))
	}

	jsonText, err := readInput()
	if err != nil {
		return err
	}
	logger.Debug1("read %d bytes of JSON input", len(jsonText))

	em := emitter.NewWithConfig(ctx.Config)
	if logger.Level() <= logging.VerboseLevel {
		if model, err := em.Model(jsonText, ""); err == nil {
			logger.Verbose("model:\n\n%v", spew.Sdump(model))
		}
	}

	result := em.Emit(jsonText, "")
	if result.Error != "" {
		return errors.NewParsingError(result.Error, errors.ErrInvalidJSON)
	}

	return writeOutput(result.Code)
}

// readInput reads raw JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := parser.ReadFile(CLI.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(jsonData), nil
}

// writeOutput writes code to file or stdout
func writeOutput(code string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(code), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Generated model written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonalchemy Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", errors.NewInputError("error reading input", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return string(data), nil
}
