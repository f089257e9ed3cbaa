package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/omarnabikhan/tilde/internal/terminal"
)

// Config captures runtime configuration. The zero-argument, empty-environment result is the
// plain editor: ANSI terminal, no log file, no tracing.
type Config struct {
	Backend string
	Logging Logging
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBackend = "TILDE_BACKEND"
	envLogFile = "TILDE_LOG_FILE"
	envTrace   = "TILDE_TRACE"
)

type flagValues struct {
	backend *string
	logFile *string
	trace   *bool
}

func newFlagSet(env map[string]string, output io.Writer) (*flag.FlagSet, flagValues) {
	fs := flag.NewFlagSet("tilde", flag.ContinueOnError)
	fs.SetOutput(output)
	values := flagValues{
		backend: fs.String("backend", envOrDefault(env, envBackend, terminal.KindANSI), "terminal backend: "+strings.Join(terminal.Kinds(), ", ")),
		logFile: fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file (empty disables logging)"),
		trace:   fs.Bool("trace", envOrBool(env, envTrace, false), "log a JSON trace entry for every key (needs -log-file)"),
	}
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tilde [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment: %s, %s, %s\n", envBackend, envLogFile, envTrace)
	}
	return fs, values
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	// Parse errors are reported by the caller; usage is printed on request only.
	fs, values := newFlagSet(parseEnv(environ), io.Discard)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return Config{
		Backend: strings.ToLower(strings.TrimSpace(*values.backend)),
		Logging: Logging{
			FilePath: *values.logFile,
			Trace:    *values.trace,
		},
	}, nil
}

// PrintUsage writes the flag list, with defaults as the given environment resolves them.
func PrintUsage(w io.Writer, environ []string) {
	fs, _ := newFlagSet(parseEnv(environ), w)
	fs.Usage()
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits: 0 after printing usage for -h, 2 on bad input.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, flag.ErrHelp) {
		PrintUsage(os.Stderr, os.Environ())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		PrintUsage(os.Stderr, os.Environ())
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configuration names things that exist.
func Validate(cfg Config) error {
	if !terminal.Supported(cfg.Backend) {
		return fmt.Errorf("%w: %q (want one of %s)", terminal.ErrUnknownBackend, cfg.Backend, strings.Join(terminal.Kinds(), ", "))
	}
	if cfg.Logging.Trace && strings.TrimSpace(cfg.Logging.FilePath) == "" {
		return fmt.Errorf("trace requires a log file")
	}
	return nil
}
