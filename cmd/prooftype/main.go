// Package main is the entry point for the prooftype tool.
//
// The tool exercises the filetype engine outside a running editor:
// dry-run a buffer activation, parse prover output, or watch a
// definitions directory for changes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dshills/prooftype/internal/config"
	"github.com/dshills/prooftype/internal/editor"
	"github.com/dshills/prooftype/internal/ftplugin"
	"github.com/dshills/prooftype/internal/ftplugin/def"
	"github.com/dshills/prooftype/internal/ftplugin/script"
	"github.com/dshills/prooftype/internal/interact"
	"github.com/dshills/prooftype/internal/interact/easycrypt"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath string
	DefsDir    string
	Filetype   string
	Parse      bool
	Watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	defs := def.NewRegistryWithBuiltins()
	loaders := map[string]def.LoaderFunc{
		".yaml": def.LoadYAML,
		".yml":  def.LoadYAML,
		".lua":  script.Load,
	}

	dir := opts.DefsDir
	if dir == "" {
		dir = cfg.DefsDir
	}
	if dir != "" && !opts.Watch {
		if err := def.LoadDir(dir, defs, loaders); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("some definitions failed to load")
		}
	}

	switch {
	case opts.Parse:
		return runParse(defs, opts.Filetype, os.Stdin, os.Stdout)
	case opts.Watch:
		return runWatch(dir, defs, loaders)
	default:
		return runActivate(defs, opts.Filetype, cfg.Snapshot(), os.Stdout)
	}
}

// runActivate dry-runs one buffer activation and prints the applied
// options and the undo command the host would store.
func runActivate(defs *def.Registry, filetype string, caps ftplugin.Snapshot, out io.Writer) int {
	buf := editor.NewBuffer(1, "scratch")
	buf.SetFiletype(filetype)

	reg := ftplugin.NewRegistry(defs)
	rec, err := reg.Activate(buf, caps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "filetype: %s\n", rec.Filetype())
	fmt.Fprintf(out, "record: %s\n", rec.ID())

	fmt.Fprintln(out, "groups:")
	for _, g := range rec.Groups() {
		fmt.Fprintf(out, "  %s\n", g)
	}

	fmt.Fprintln(out, "options:")
	opts := buf.Options()
	for _, key := range opts.Keys() {
		value, _ := opts.Get(key)
		fmt.Fprintf(out, "  %s = %v\n", key, value)
	}

	cmd, err := rec.UndoCommand()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "undo: %s\n", cmd)
	return 0
}

// runParse reads prover output on stdin and prints it structured.
// The backend is resolved from the filetype definition's prover route.
func runParse(defs *def.Registry, filetype string, in io.Reader, out io.Writer) int {
	backends := interact.NewRegistry()
	if err := backends.Register(easycrypt.New()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ft, err := defs.Lookup(filetype)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	backend, err := backends.Lookup(ft.Prover)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading input: %v\n", err)
		return 1
	}
	output, err := backend.ParseOutput(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, e := range output.Errors {
		fmt.Fprintf(out, "[error %d-%d] %s\n", e.Span.Start, e.Span.End, e.Message)
	}
	for _, m := range output.Logs {
		fmt.Fprintf(out, "[%s] %s", m.Severity, m.Message)
	}
	if output.Goal != "" {
		fmt.Fprintf(out, "goal:\n%s", output.Goal)
	}
	if output.Prompt != nil {
		fmt.Fprintf(out, "prompt: %d (%s)\n", output.Prompt.State, output.Prompt.Mode)
	}
	return 0
}

// runWatch loads a definitions directory and logs reloads until
// interrupted.
func runWatch(dir string, defs *def.Registry, loaders map[string]def.LoaderFunc) int {
	if dir == "" {
		fmt.Fprintln(os.Stderr, "Error: no definitions directory to watch")
		return 1
	}

	w, err := def.NewWatcher(dir, defs, loaders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	if err := w.LoadAll(); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("some definitions failed to load")
	}
	w.OnReload(func(event def.ReloadEvent) {
		if event.Err != nil {
			log.Error().Err(event.Err).Str("path", event.Path).Msg("reload failed")
			return
		}
		log.Info().Str("filetype", event.Filetype).Str("path", event.Path).Msg("definition reloaded")
	})
	w.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.DefsDir, "defs", "", "Filetype definitions directory")
	flag.StringVar(&opts.Filetype, "filetype", "easycrypt", "Filetype to activate or parse for")
	flag.StringVar(&opts.Filetype, "t", "easycrypt", "Filetype to activate or parse for (shorthand)")
	flag.BoolVar(&opts.Parse, "parse", false, "Parse prover output from stdin")
	flag.BoolVar(&opts.Watch, "watch", false, "Watch the definitions directory")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("prooftype %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}
	return opts
}
