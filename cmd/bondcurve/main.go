// ====================================
// File: cmd/bondcurve/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bondcurve/internal/app"
	"github.com/rovshanmuradov/bondcurve/internal/config"
	"github.com/rovshanmuradov/bondcurve/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (json or yaml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.CreatePrettyLogger(*debug || cfg.DebugLogging)
	defer log.Sync()

	runner := app.NewRunner(log, os.Stdout)
	if err := runner.InitializeWith(cfg); err != nil {
		log.Error("Failed to initialize", zap.Error(err))
		os.Exit(1)
	}

	if err := runner.Run(ctx, flag.Args()); err != nil {
		log.Error("Command failed", zap.Error(err))
		code := app.ExitCode(err)
		if code == 2 {
			usage()
		}
		os.Exit(code)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: bondcurve [-config path] [-debug] <command> [args]

Commands:
  estimate <supply>...        print the estimated price for each supply
  table                       print the sample table
  sweep [-lo -hi -steps -format csv|json -out dir]
                              evaluate a supply grid and export it
  chart [-lo -hi -steps -out file -title text]
                              render the curve to png, svg or pdf

Flags:
`)
	flag.PrintDefaults()
}
