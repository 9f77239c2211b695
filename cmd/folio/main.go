// Folio runs the portfolio hero in a window, in a terminal, or serves its
// content and feeds over HTTP.
//
//	folio [window|term|serve] [flags]
//
// Settings come from the environment and an optional .env file; see
// internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/feeds"
	"github.com/phanxgames/folio/internal/config"
	"github.com/phanxgames/folio/prefs"
	"github.com/phanxgames/folio/server"
	"github.com/phanxgames/folio/site"
	"github.com/phanxgames/folio/term"
	"github.com/phanxgames/folio/window"
)

const windowTitle = "Folio"

func main() {
	log.SetFlags(0)
	log.SetPrefix("[folio] ")

	cmd, args := splitCommand(os.Args[1:])
	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: folio [window|term|serve] [flags]\n")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, args); err != nil {
		log.Fatal(err)
	}
}

var commands = map[string]func(config.Config, []string) error{
	"window": runWindow,
	"term":   runTerm,
	"serve":  runServe,
}

// splitCommand separates the subcommand from its flags. Without one, or
// when the first argument is a flag, the window runs.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		return args[0], args[1:]
	}
	return "window", args
}

// loadSite reads the site document, falling back to the embedded one.
func loadSite(path string) (*site.Site, error) {
	if path == "" {
		return site.Default(), nil
	}
	return site.Load(path)
}

// openThemes restores theme state. A store that cannot open degrades to
// memory; its close function is always safe to call.
func openThemes(cfg config.Config, s *site.Site) (*folio.Themes, func() error) {
	store, closeFn, err := prefs.OpenOrMemory(cfg.DBPath)
	if err != nil {
		log.Printf("preferences: %v; using memory store", err)
	}
	themes, err := folio.NewThemes(store, s.Themes, cfg.PrefersDark)
	if err != nil {
		log.Printf("preferences: %v", err)
	}
	return themes, closeFn
}

func runWindow(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	script := fs.String("script", "", "JSON test script to run")
	debug := fs.Bool("debug", false, "log frame stats to stderr")
	noFeeds := fs.Bool("no-feeds", false, "skip fetching GitHub and Medium")
	fs.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "show the FPS overlay")
	fs.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "draw a static grid instead of the web")
	_ = fs.Parse(args)

	s, err := loadSite(cfg.SitePath)
	if err != nil {
		return err
	}
	themes, closeFn := openThemes(cfg, s)
	defer closeFn()

	g, err := window.NewGame(window.Options{
		Site:          s,
		Themes:        themes,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ReducedMotion: cfg.ReducedMotion,
		ShowFPS:       cfg.ShowFPS,
		Debug:         *debug,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	if err != nil {
		return err
	}
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			return err
		}
		runner, err := window.LoadTestScript(data)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !*noFeeds {
		g.LoadFeeds(ctx, feeds.NewClient(nil), cfg.GitHubUser, cfg.MediumUser)
	}
	return window.Run(g, window.RunConfig{
		Title:     windowTitle,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: true,
	})
}

func runTerm(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("term", flag.ExitOnError)
	fs.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "draw a static grid instead of the web")
	_ = fs.Parse(args)

	s, err := loadSite(cfg.SitePath)
	if err != nil {
		return err
	}
	themes, closeFn := openThemes(cfg, s)
	defer closeFn()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return term.Run(ctx, screen, term.Options{
		Site:          s,
		Themes:        themes,
		ReducedMotion: cfg.ReducedMotion,
		Logger:        log.Default(),
	})
}

func runServe(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr(), "listen address")
	_ = fs.Parse(args)

	s, err := loadSite(cfg.SitePath)
	if err != nil {
		return err
	}
	store, closeFn, err := prefs.OpenOrMemory(cfg.DBPath)
	if err != nil {
		log.Printf("preferences: %v; using memory store", err)
	}
	defer closeFn()

	ttl := cfg.FeedTTL
	if ttl == 0 {
		ttl = -1
	}
	srv := server.New(server.Options{
		Site:       s,
		Feeds:      feeds.NewClient(nil),
		Prefs:      store,
		TTL:        ttl,
		GitHubUser: cfg.GitHubUser,
		MediumUser: cfg.MediumUser,
		Logger:     log.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, *addr)
}
