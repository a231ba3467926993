package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/scorer/pkg/engine"
	"github.com/germanamz/scorer/pkg/wiki"
)

const usageText = `Usage: scorer <command> [flags]

Commands:
  score   Score an article read from -file or stdin
  models  List the models offered by the current provider
  config  Choose the provider, API key and model interactively
  wiki    Check a title on Wikipedia and print link templates

Run "scorer <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "score":
		err = scoreCmd(os.Args[2:])
	case "models":
		err = modelsCmd(os.Args[2:])
	case "config":
		err = configCmd(os.Args[2:])
	case "wiki":
		err = wikiCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usageText)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are accepted by every subcommand.
type globalFlags struct {
	configPath   string
	envFile      string
	settingsPath string
	verbose      bool
}

func newFlagSet(name, synopsis string, g *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scorer %s\n\nFlags:\n", synopsis)
		fs.PrintDefaults()
	}

	fs.StringVar(&g.configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&g.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&g.settingsPath, "settings", "", "path to settings file (default: user config dir)")
	fs.BoolVar(&g.verbose, "verbose", false, "log at debug level")

	return fs
}

func notifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func scoreCmd(args []string) error {
	var g globalFlags
	fs := newFlagSet("score", "score [flags] [-file path]", &g)
	file := fs.String("file", "", "article file (default: read stdin)")
	_ = fs.Parse(args)

	article, err := readArticle(*file, os.Stdin)
	if err != nil {
		return err
	}

	a, err := setup(g)
	if err != nil {
		return err
	}

	ctx, cancel := notifyContext()
	defer cancel()

	sub := a.eng.Events().Subscribe(8)
	defer a.eng.Events().Unsubscribe(sub)

	s := a.eng.Settings()
	m := newScoreModel(ctx, a.eng, sub.C, article, fmt.Sprintf("%s / %s", s.Provider.Label(), s.SelectedModel))

	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	sm, ok := final.(scoreModel)
	if !ok {
		return fmt.Errorf("unexpected program model %T", final)
	}
	if sm.err != nil {
		return describeScoreError(sm.err)
	}
	if !sm.done {
		return context.Canceled
	}

	width := terminalWidth()
	initMarkdownRenderer(width)
	fmt.Fprintln(os.Stdout, renderReport(sm.result, width))

	if out, ok := a.eng.Last(); ok {
		if line := renderUsage(out); line != "" {
			fmt.Fprintln(os.Stdout, line)
		}
	}

	return nil
}

func modelsCmd(args []string) error {
	var g globalFlags
	fs := newFlagSet("models", "models [flags]", &g)
	_ = fs.Parse(args)

	a, err := setup(g)
	if err != nil {
		return err
	}

	ctx, cancel := notifyContext()
	defer cancel()

	list, err := a.eng.Models(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, renderModels(list))

	return nil
}

func configCmd(args []string) error {
	var g globalFlags
	fs := newFlagSet("config", "config [flags] [-provider name]", &g)
	name := fs.String("provider", "", "provider to configure: openrouter, gemini or cerebras (default: ask)")
	_ = fs.Parse(args)

	preset, err := parseProviderFlag(*name)
	if err != nil {
		return err
	}

	a, err := setup(g)
	if err != nil {
		return err
	}

	ctx, cancel := notifyContext()
	defer cancel()

	if err := runSettingsForm(ctx, a.eng, a.store, preset); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved settings to %s\n", a.store.Path())

	return nil
}

func wikiCmd(args []string) error {
	var g globalFlags
	fs := newFlagSet("wiki", "wiki [flags] <title>", &g)
	_ = fs.Parse(args)

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		fs.Usage()
		return errors.New("wiki: a title is required")
	}

	if err := loadDotEnv(g.envFile); err != nil {
		return err
	}

	cfg, err := engine.LoadConfig(g.configPath)
	if err != nil {
		return err
	}

	ctx, cancel := notifyContext()
	defer cancel()

	c := wiki.New(nil, newLogger(cfg.LogLevel, g.verbose, os.Stderr))
	b := c.CheckBoth(ctx, title)
	if err := b.Err(); err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, renderWiki(b))

	return nil
}

// readArticle reads the article from path, or from stdin when path is empty.
func readArticle(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is an explicit CLI argument
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}

	return string(data), nil
}
