// Package main is the entry point for inputctl, which builds input maps from
// definition files and Lua scripts, fires actions and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/dshills/inputkit/internal/config"
	"github.com/dshills/inputkit/internal/config/watcher"
	"github.com/dshills/inputkit/internal/host/memhost"
	"github.com/dshills/inputkit/internal/inputmap"
	"github.com/dshills/inputkit/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	ScriptPath string
	Watch      bool
	Dump       bool
	LogLevel   string
	Fires      fireList
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, err := newLogger(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	inputmap.SetLogger(log.Named("inputmap"))
	config.SetLogger(log.Named("config"))
	script.SetLogger(log.Named("script"))

	if opts.ConfigPath == "" && opts.ScriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to load; pass -config and/or -script")
		flag.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := memhost.New()
	var contexts []*inputmap.Context
	var w *watcher.Watcher

	if opts.ConfigPath != "" {
		if opts.Watch {
			w, err = watcher.New(opts.ConfigPath, engine,
				watcher.OnReload(dumpOnReload(opts.Dump, os.Stdout, os.Stderr)),
				watcher.OnError(func(err error) {
					fmt.Fprintf(os.Stderr, "Error: reload: %v\n", err)
				}),
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			defer w.Close()
			contexts = append(contexts, w.Current().Contexts()...)
		} else {
			def, err := config.Load(opts.ConfigPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			set, err := config.Apply(engine, def)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			defer set.Destroy()
			contexts = append(contexts, set.Contexts()...)
		}
	}

	if opts.ScriptPath != "" {
		rt, err := script.NewRuntime(engine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer rt.Close()
		if err := rt.DoFile(ctx, opts.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		contexts = append(contexts, rt.Contexts()...)
	}

	for _, spec := range opts.Fires {
		state, err := fire(contexts, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: fire: %v\n", err)
			return 1
		}
		log.Info("fired", zap.String("context", spec.Context), zap.String("action", spec.Action), zap.Any("state", state))
	}

	if opts.Dump {
		if err := dump(os.Stdout, contexts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if w != nil {
		if err := w.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		<-ctx.Done()
	}
	return 0
}

func dump(w io.Writer, contexts ...*inputmap.Context) error {
	doc, err := inputmap.Describe(contexts...)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(doc))
	return err
}

// dumpOnReload prints each reloaded set to out when enabled. Failures go to
// errOut like other reload errors.
func dumpOnReload(enabled bool, out, errOut io.Writer) func(*config.Set) {
	return func(set *config.Set) {
		if !enabled {
			return
		}
		if err := dump(out, set.Contexts()...); err != nil {
			fmt.Fprintf(errOut, "Error: dump: %v\n", err)
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var verbose bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Input map definition (.toml, .yaml, .yml or .json)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Input map definition (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script that builds input contexts")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload -config when it changes, until interrupted")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the input map as JSON")
	flag.Var(&opts.Fires, "fire", "Fire an action: Context.Action=value (repeatable)")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&verbose, "verbose", false, "Shorthand for -log-level debug")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inputctl - build and exercise input maps\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inputctl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inputctl -config input.toml -dump\n")
		fmt.Fprintf(os.Stderr, "  inputctl -script bindings.lua -fire Gameplay.Jump=true\n")
		fmt.Fprintf(os.Stderr, "  inputctl -config input.yaml -fire Gameplay.Move=1,0 -dump\n")
		fmt.Fprintf(os.Stderr, "  inputctl -config input.toml -watch -dump\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("inputctl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	if verbose {
		opts.LogLevel = "debug"
	}
	if opts.Watch && opts.ConfigPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -watch requires -config")
		os.Exit(1)
	}
	return opts
}
