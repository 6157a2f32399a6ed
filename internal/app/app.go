package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/RobotSudo/time-bot/internal/commands"
	"github.com/RobotSudo/time-bot/internal/config"
	"github.com/RobotSudo/time-bot/internal/discord"
	"github.com/RobotSudo/time-bot/internal/scheduler"
	"github.com/RobotSudo/time-bot/internal/store"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	session *discordgo.Session
	httpSrv *http.Server
	repo    store.Repo
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, session: session, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting time-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick", a.cfg.TickInterval),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	svc := commands.New(a.repo, a.log)
	router := discord.NewRouter(a.session, a.log, svc)
	a.session.AddHandler(router.HandleInteraction)

	if err := a.session.Open(); err != nil {
		a.log.Error("discord gateway open failed", zap.Error(err))
		_ = a.repo.Close()
		return err
	}
	a.log.Info("discord gateway open", zap.String("user", a.session.State.User.Username))

	if err := router.Register(); err != nil {
		// Commands may already exist from a prior run; a registration
		// failure is not worth dying over.
		a.log.Warn("slash command registration failed", zap.Error(err))
	}

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	platform := discord.NewActions(a.session, a.log, a.cfg.RoleName, a.cfg.ChannelID)
	sched := scheduler.New(a.repo, a.log, platform, a.cfg.TickInterval)
	go sched.Run(ctx)

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	// Create a short-lived shutdown context and cancel it immediately after use.
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}

	if err := a.session.Close(); err != nil {
		a.log.Warn("discord session close error", zap.Error(err))
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
	return nil
}
