package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voxlate/config"
)

const usage = `usage: voxlate [-config path] <command> [flags] [args]

commands:
  serve                          run the local HTTP API
  translate [-from] [-to] text   translate text and synthesize the result
  speak [-lang] text             synthesize text and play it
  extract [-kind] [-to] file     extract text from an image or PDF and translate it
  record [-from] [-to]           record speech, transcribe, translate and play it
  languages                      list the supported languages
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	app := &app{cfg: cfg, logger: logger, out: os.Stdout, in: os.Stdin}

	command, args := flag.Arg(0), flag.Args()[1:]

	var runErr error
	switch command {
	case "serve":
		runErr = app.serve(ctx, args)
	case "translate":
		runErr = app.translate(ctx, args)
	case "speak":
		runErr = app.speak(ctx, args)
	case "extract":
		runErr = app.extract(ctx, args)
	case "record":
		runErr = app.record(ctx, args)
	case "languages":
		runErr = app.languages(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		flag.Usage()
		os.Exit(2)
	}

	if runErr != nil && runErr != context.Canceled {
		logger.Error(command+" failed", "error", runErr)
		os.Exit(1)
	}
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
