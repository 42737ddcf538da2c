package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/smarty/mcinstall/contracts"
	"github.com/smarty/mcinstall/core"
	"github.com/smarty/mcinstall/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch name := args[0]; name {
	case "version":
		_, _ = fmt.Fprintf(stdout, "mcinstall [%s]\n", ldflagsSoftwareVersion)
		return 0
	case "install", "list", "versions":
		config, err := loadConfig(name, args[1:], stderr)
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		logger := newLogger(config.Verbose, stderr)
		return newApp(name, config, logger, stdout).Run(ctx)
	default:
		usage(stderr)
		return 2
	}
}

func usage(stderr io.Writer) {
	_, _ = fmt.Fprintln(stderr, `Usage: mcinstall <command> [flags]

commands:
  install <version>     install a version (or latest, latest-snapshot)
  list                  list installations
  versions [pattern...] list published versions matching glob patterns
  version               print the mcinstall version

Run 'mcinstall <command> --help' for the flags of a command.`)
}

func loadConfig(name string, args []string, stderr io.Writer) (contracts.Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return contracts.Config{}, err
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return contracts.Config{}, err
	}
	loader := core.NewConfigLoader(shell.NewDiskFileSystem(), stderr, core.DefaultConfig(configDir, cacheDir))
	return loader.LoadConfig(name, args)
}

func newLogger(verbose bool, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

type App interface {
	Run(ctx context.Context) int
}

func newApp(name string, config contracts.Config, logger *logrus.Logger, stdout io.Writer) App {
	services := newServices(config, logger)
	switch name {
	case "install":
		return NewInstallApp(config, services, logger)
	case "list":
		return NewListApp(config, services, logger, stdout)
	default:
		return NewVersionsApp(config, services, logger, stdout)
	}
}

var ldflagsSoftwareVersion = "debug"
