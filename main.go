package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/reporoulette/internal/config"
	"github.com/johanforsgren/reporoulette/internal/logger"
	"github.com/johanforsgren/reporoulette/internal/provider/github"
	"github.com/johanforsgren/reporoulette/internal/roulette"
	"github.com/johanforsgren/reporoulette/internal/ui"
	"github.com/johanforsgren/reporoulette/internal/ui/views"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("reporoulette", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to the TOML config file (default ~/.reporoulette/config.toml)")
	logPath := flags.String("log", "", "path to the session log file (overrides config)")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  reporoulette [flags]               start the terminal UI")
		fmt.Fprintln(stderr, "  reporoulette [flags] pick <user>   print one random repository of <user>")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger.EnsureInit()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitFailure
	}

	sessionLog := cfg.LogFile()
	if *logPath != "" {
		sessionLog = *logPath
	}
	if err := logger.Init(sessionLog); err != nil {
		fmt.Fprintf(stderr, "Warning: file logging disabled: %v\n", err)
	} else if sessionLog != "" {
		logger.LogFileOpen(sessionLog)
	}
	defer logger.Close()

	provider, err := github.NewProvider(github.ClientOptions{
		BaseURL:   cfg.APIBaseURL,
		UserAgent: cfg.UserAgent,
		HTTPDebug: cfg.HTTPDebug,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error creating GitHub client: %v\n", err)
		return exitFailure
	}
	workflow := roulette.NewWorkflow(provider, roulette.WithTimeout(cfg.RequestTimeout.Duration))

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return runTUI(ctx, workflow, stderr)
	case rest[0] == "pick":
		return runPick(ctx, workflow, rest[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command %q\n", rest[0])
		flags.Usage()
		return exitUsage
	}
}

func runTUI(ctx context.Context, workflow *roulette.Workflow, stderr io.Writer) int {
	logger.Log("Starting terminal UI")
	p := tea.NewProgram(ui.NewModel(ctx, workflow), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// runPick performs one fetch for args[0] and prints the card. Failure
// outcomes print the same message the UI would show.
func runPick(ctx context.Context, workflow *roulette.Workflow, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: reporoulette pick <username>")
		return exitUsage
	}

	session := roulette.NewSession()
	session.OnChange = func(prev, next roulette.FetchState) {
		if next.IsLoading() {
			fmt.Fprintf(stderr, "Fetching repositories for %s...\n", session.Username())
		}
	}
	session.SetUsername(args[0])

	outcome, err := workflow.Run(ctx, session)
	if errors.Is(err, roulette.ErrEmptyUsername) {
		fmt.Fprintln(stderr, session.Error())
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	logger.Log("Pick finished with %s", outcome.Kind)

	state := session.State()
	if state.Status != roulette.StatusSuccess {
		fmt.Fprintln(stderr, state.Message)
		return exitFailure
	}

	fmt.Fprintln(stdout, views.RenderRepositoryCard(*state.Repository, 0))
	if state.Repository.URL != "" {
		fmt.Fprintln(stdout, state.Repository.URL)
	}
	return exitOK
}
