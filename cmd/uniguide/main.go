package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/uniguide/internal/cli"
	"github.com/alexanderramin/uniguide/internal/config"
	"github.com/alexanderramin/uniguide/internal/db"
	"github.com/alexanderramin/uniguide/internal/intelligence"
	"github.com/alexanderramin/uniguide/internal/llm"
	"github.com/alexanderramin/uniguide/internal/metrics"
	"github.com/alexanderramin/uniguide/internal/repository"
	"github.com/alexanderramin/uniguide/internal/router"
	"github.com/alexanderramin/uniguide/internal/server"
	"github.com/alexanderramin/uniguide/internal/service"
	"github.com/alexanderramin/uniguide/internal/session"
	"github.com/alexanderramin/uniguide/internal/weather"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath pulls --config out of the arguments before cobra runs, since
// wiring needs the config first.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("uniguide", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}

	stderrLevel := new(slog.LevelVar)
	stderrLevel.Set(cfg.Log.SlogLevel())
	logger, closeLog := config.SetupLogger(cfg.Log.File, cfg.Log.SlogLevel(), stderrLevel)
	defer closeLog()
	slog.SetDefault(logger)

	ctx := context.Background()

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionID, err := service.ResolveSessionID(ctx, repository.NewSQLiteSessionInfoRepo(database))
	if errors.Is(err, service.ErrNoIdentity) {
		return fmt.Errorf("%w: run the portal scraper to seed %s", err, cfg.DB.Path)
	}
	if err != nil {
		return err
	}

	repos := service.Repos{
		Courses:     repository.NewSQLiteCourseRepo(database),
		Assignments: repository.NewSQLiteAssignmentRepo(database),
		Exams:       repository.NewSQLiteExamRepo(database),
		Events:      repository.NewSQLiteEventRepo(database),
		Alerts:      repository.NewSQLiteAlertRepo(database),
	}

	m := metrics.New()
	observers := llm.MultiObserver{m}
	if cfg.LLM.LogCalls {
		observers = append(observers, llm.NewLogObserver(logger))
	}
	llmClient, err := llm.NewClient(cfg.LLM, observers)
	if err != nil {
		logger.Warn("llm unavailable, replies fall back to store data", "error", err)
		disabled := cfg.LLM
		disabled.Enabled = false
		llmClient, _ = llm.NewClient(disabled, observers)
	} else if cfg.LLM.Enabled && !llmClient.Available(ctx) {
		logger.Warn("llm provider not reachable, replies fall back to store data",
			"provider", string(cfg.LLM.Provider))
	}

	weatherClient := weather.NewOpenWeatherClient(cfg.Weather)
	tips := intelligence.NewTipService(llmClient, logger)
	source := service.NewContextSource(repos, weatherClient, cfg.Campus.City, logger)

	turns := service.NewTurnService(service.TurnDeps{
		Memory:    session.NewMemory(session.NewMemoryStore(), logger),
		Router:    router.New(router.WithLogger(logger)),
		Courses:   repos.Courses,
		Responder: service.NewResponder(repos, weatherClient, tips, cfg.Campus.City, logger),
		Synth:     intelligence.NewSynthesisService(llmClient, source, cfg.Campus.Name, logger),
		Logger:    logger,
	}, service.NewLogUseCaseObserver(logger), m)

	srv, err := server.New(server.Config{
		Addr:        cfg.Server.Addr,
		RatePerMin:  cfg.Server.RatePerMin,
		TurnTimeout: cfg.Server.TurnTimeout,
		SessionID:   sessionID,
		Turns:       turns,
		Metrics:     m,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("configuring http server: %w", err)
	}

	app := &cli.App{
		Turns:     turns,
		SessionID: sessionID,
		Server:    srv,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		// Logs keep going to the file; stderr would draw over the chat view.
		OnFullScreen: func() { stderrLevel.Set(config.LevelSilent) },
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
