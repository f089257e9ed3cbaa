package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/omarnabikhan/tilde"
	"github.com/omarnabikhan/tilde/internal"
	"github.com/omarnabikhan/tilde/internal/config"
	"github.com/omarnabikhan/tilde/internal/logging"
	"github.com/omarnabikhan/tilde/internal/terminal"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Configure(cfg.Logging.FilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.SetTraceEnabled(cfg.Logging.Trace)

	term, err := terminal.Open(cfg.Backend)
	if err != nil {
		logging.Errorf("open terminal: %v", err)
		logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// There is no quit key: the editor runs until it is interrupted or killed. Give the terminal
	// back before going.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-signalChan
		logging.Infof("received %s, shutting down", sig)
		term.Close()
		logging.Close()
		os.Exit(0)
	}()

	err = run(term, cfg)
	if errors.Is(err, terminal.ErrClosed) {
		// The signal handler closed the terminal mid-frame and is about to exit.
		select {}
	}
	// Otherwise run only comes back on a terminal failure, which is fatal.
	term.Close()
	logging.Errorf("%v", err)
	logging.Close()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func run(term tilde.Terminal, cfg config.Config) error {
	rows, cols := term.Size()
	logging.Infof("starting backend=%s size=%dx%d trace=%t", cfg.Backend, rows, cols, cfg.Logging.Trace)
	return internal.NewEditor(term).Run()
}
