package cli

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/Tsedii1275/campusadmin/internal/access"
	"github.com/Tsedii1275/campusadmin/internal/core/config"
	"github.com/Tsedii1275/campusadmin/internal/infra/api"
	"github.com/Tsedii1275/campusadmin/internal/infra/store/memory"
)

var (
	cfgPath   string
	isDebug   bool
	forceMock bool
)

var rootCmd = &cobra.Command{
	Use:   "campusadmin",
	Short: "Campus administration console",
	Long:  `campusadmin manages university users and the administrator profile, staying usable when the admin API is unreachable.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&forceMock, "mock", false, "never contact the admin API, use local data only")
}

// app bundles everything a command needs.
type app struct {
	cfg     *config.AppConfig
	log     *slog.Logger
	client  *api.Client
	users   *access.Users
	account *access.Account
	closers []func() error
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// A missing default config file is fine for local use; an
		// explicitly named file must exist.
		if !errors.Is(err, fs.ErrNotExist) || cfgPath != "config.yaml" {
			return nil, err
		}
		cfg = config.Default()
	}

	log := newLogger(cfg.Logging)

	mode := cfg.AccessMode(os.Getenv("APP_ENV"))
	if forceMock {
		mode = access.ModeMock
	}
	log.Debug("Access layer initialized", "mode", string(mode))

	client := api.NewClient(cfg.API.BaseURL, tokenSource(cfg.API.Token, log), log)

	a := &app{
		cfg:    cfg,
		log:    log,
		client: client,
	}
	a.closers = append(a.closers, func() error { client.Close(); return nil })

	cache, err := buildCache(cfg, log, a)
	if err != nil {
		return nil, err
	}

	st := memory.NewStore()
	policy := access.NewPolicy(mode, log)
	a.users = access.NewUsers(client, st, policy, cache, log)
	a.account = access.NewAccount(client, st, policy, cache, log)
	return a, nil
}

func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.log.Warn("Cleanup failed", "error", err)
		}
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	if isDebug || cfg.Level == "debug" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func tokenSource(token string, log *slog.Logger) api.TokenSource {
	if token == "" {
		return nil
	}
	if strings.Count(token, ".") == 2 {
		return api.NewJWTToken(token, log)
	}
	return api.StaticToken(token)
}

func buildCache(cfg *config.AppConfig, log *slog.Logger, a *app) (access.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := access.NewRedisCache(cfg.Cache.Redis, cfg.Cache.ReadTTL(), log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rc.Close)
		return rc, nil
	case "none":
		return access.NopCache{}, nil
	default:
		return access.NewMemoryCache(cfg.Cache.ReadTTL()), nil
	}
}
