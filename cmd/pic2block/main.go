package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/pic2block/internal/config"
	"github.com/ironsheep/pic2block/internal/imaging"
	"github.com/ironsheep/pic2block/internal/ocr"
	"github.com/ironsheep/pic2block/internal/recognition"
	"github.com/ironsheep/pic2block/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitRun   = 2
)

const usage = `pic2block - flowchart shape recognition

Usage:
  pic2block classify [flags] IMAGE          print the classification report as JSON
  pic2block annotate [flags] -o OUT IMAGE   write IMAGE with every shape outlined
  pic2block serve [flags]                   run the MCP server on stdin/stdout

Flags:
  -tolerance N       pixel tolerance for equal coordinates (default 5)
  -ocr               read the text inside every classified block
  -lang CODE         Tesseract language (default eng)
  -max-dimension N   shrink larger images to N pixels per side first
  -d, -i, -w, -c     log level debug, info, warning or error (default info)

Options:
  --version, -v      Print version information
  --help, -h         Print this help message

Environment variables:
  PIC2BLOCK_TOLERANCE, PIC2BLOCK_THRESHOLD, PIC2BLOCK_APPROX_EPSILON,
  PIC2BLOCK_MIN_REGION_AREA, PIC2BLOCK_MAX_DIMENSION, PIC2BLOCK_OCR,
  PIC2BLOCK_OCR_LANGUAGE, PIC2BLOCK_LOG_LEVEL
Flags override the environment. Logs go to stderr.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "pic2block %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	case "--help", "-h", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	case "classify", "annotate", "serve":
	default:
		fmt.Fprintf(stderr, "pic2block: unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	cmd := args[0]
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "pic2block: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	lv := bindFlags(fs, cfg)
	var out string
	if cmd == "annotate" {
		fs.StringVar(&out, "o", "", "output PNG path")
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	lv.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "pic2block: %v\n", err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	rec := recognition.New(recognition.WithLogger(logger))
	opts := recognition.OptionsFromConfig(cfg)
	if cfg.OCR {
		if err := ocr.Available(cfg.OCRLanguage); err != nil {
			logger.Warn("text extraction unavailable, block text will be empty", slog.Any("error", err))
		}
	}

	if cmd == "serve" {
		if fs.NArg() != 0 {
			fmt.Fprintf(stderr, "pic2block: serve takes no arguments\n")
			return exitUsage
		}
		logger.Info("pic2block MCP server starting",
			slog.String("version", Version),
			slog.String("build_time", BuildTime),
			slog.String("commit", GitCommit))
		srv := server.New(rec, opts, server.WithLogger(logger), server.WithVersion(Version))
		if err := srv.Serve(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server error", slog.Any("error", err))
			return exitRun
		}
		return exitOK
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "pic2block: %s needs exactly one IMAGE\n", cmd)
		return exitUsage
	}
	path := fs.Arg(0)

	switch cmd {
	case "classify":
		err = classify(rec, path, opts, stdout)
	case "annotate":
		if out == "" {
			fmt.Fprintf(stderr, "pic2block: annotate needs -o OUT\n")
			return exitUsage
		}
		err = annotate(rec, path, out, opts)
	}
	if err != nil {
		logger.Error(cmd+" failed", slog.String("image", path), slog.Any("error", err))
		return exitRun
	}
	return exitOK
}

// levelFlags holds the -d/-i/-w/-c switches. The most verbose one set wins.
type levelFlags struct {
	debug, info, warn, crit bool
}

func (l *levelFlags) apply(cfg *config.Config) {
	switch {
	case l.debug:
		cfg.LogLevel = slog.LevelDebug
	case l.info:
		cfg.LogLevel = slog.LevelInfo
	case l.warn:
		cfg.LogLevel = slog.LevelWarn
	case l.crit:
		cfg.LogLevel = slog.LevelError
	}
}

// bindFlags registers the common flags with cfg's values as defaults.
func bindFlags(fs *flag.FlagSet, cfg *config.Config) *levelFlags {
	fs.IntVar(&cfg.Tolerance, "tolerance", cfg.Tolerance, "pixel tolerance")
	fs.BoolVar(&cfg.OCR, "ocr", cfg.OCR, "read block text")
	fs.StringVar(&cfg.OCRLanguage, "lang", cfg.OCRLanguage, "Tesseract language")
	fs.IntVar(&cfg.MaxDimension, "max-dimension", cfg.MaxDimension, "maximum image side")

	lv := &levelFlags{}
	fs.BoolVar(&lv.debug, "d", false, "debug logging")
	fs.BoolVar(&lv.info, "i", false, "info logging")
	fs.BoolVar(&lv.warn, "w", false, "warning logging")
	fs.BoolVar(&lv.crit, "c", false, "error logging")
	return lv
}

func classify(rec *recognition.Recognizer, path string, opts recognition.Options, stdout io.Writer) error {
	rep, err := rec.Recognize(path, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func annotate(rec *recognition.Recognizer, path, out string, opts recognition.Options) error {
	_, annotated, err := rec.AnnotateFile(path, opts)
	if err != nil {
		return err
	}
	return imaging.Save(annotated, out)
}
