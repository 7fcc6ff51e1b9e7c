package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/ritzau/pivot-slicer/pkg/config"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/output"
	"github.com/ritzau/pivot-slicer/pkg/pubsub"
	"github.com/ritzau/pivot-slicer/pkg/session"
	"github.com/ritzau/pivot-slicer/pkg/source"
	"github.com/ritzau/pivot-slicer/pkg/watcher"
	"github.com/ritzau/pivot-slicer/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("pivot-slicer", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pivot-slicer [flags] [input.csv]\n\n")
		flags.PrintDefaults()
	}
	config.Flags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	if cfg.Input == "" && flags.NArg() > 0 {
		cfg.Input = flags.Arg(0)
	}
	if cfg.Input == "" {
		flags.Usage()
		os.Exit(2)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store
	if cfg.StateFile != "" {
		store = session.NewFileStore(cfg.StateFile)
	}

	publisher := pubsub.NewSSEPublisher()
	pubsub.ConfigureTopics(publisher)
	defer publisher.Close()

	sess := session.New(session.Options{
		Settings:  cfg.Style,
		Store:     store,
		Publisher: publisher,
	})

	load := func() error {
		table, err := source.ReadFile(cfg.Input, cfg.Columns)
		if err != nil {
			return err
		}
		sess.Load(ctx, table)
		return nil
	}
	if err := load(); err != nil {
		logging.Fatal("failed to load input", "error", err)
	}

	if cfg.Watch {
		go func() {
			quiet := time.Duration(cfg.DebounceMs) * time.Millisecond
			maxWait := time.Duration(cfg.MaxWaitMs) * time.Millisecond
			err := watcher.Watch(ctx, cfg.Input, quiet, maxWait, func(watcher.ChangeEvent) {
				if err := load(); err != nil {
					logging.Warn("reload failed, keeping loaded data", "error", err)
					return
				}
				if !cfg.WebMode {
					printReport(cfg, sess)
				}
			})
			if err != nil {
				logging.Error("watcher stopped", "error", err)
			}
		}()
	}

	if cfg.WebMode {
		server := web.NewServer(sess, publisher)
		if err := server.Start(ctx, cfg.Port); err != nil {
			logging.Fatal("web server failed", "error", err)
		}
		return
	}

	printReport(cfg, sess)
	if cfg.Watch {
		<-ctx.Done()
	}
}

func setupLogging(cfg *config.Config) {
	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
	if err != nil {
		logging.Warn("invalid verbosity, using info", "error", err)
	}
}

func printReport(cfg *config.Config, sess *session.Session) {
	snap := sess.Snapshot()
	output.PrintReport(os.Stdout, output.Report{
		Source:   cfg.Input,
		Data:     sess.Data(),
		State:    snap.State,
		Weights:  sess.Weights(),
		Settings: cfg.Style,
		Top:      cfg.Top,
	})
}
