package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spigell/hh-gateway/internal/ai"
	"github.com/spigell/hh-gateway/internal/ai/gemini"
	"github.com/spigell/hh-gateway/internal/api"
	"github.com/spigell/hh-gateway/internal/cache"
	"github.com/spigell/hh-gateway/internal/config"
	"github.com/spigell/hh-gateway/internal/headhunter"
	"github.com/spigell/hh-gateway/internal/logger"
	"github.com/spigell/hh-gateway/internal/repository/postgres"
	"github.com/spigell/hh-gateway/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the hh-gateway HTTP server",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	logger.Info("starting the hh-gateway", zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("connecting to redis", zap.Error(err))
	}
	defer rdb.Close()

	store := cache.NewStore(rdb, logger)
	tokens := cache.NewTokenStore(rdb)

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connecting to postgres", zap.Error(err))
	}
	apps := postgres.NewApplicationRepository(db)

	clientSecret, err := cfg.HH.ResolveClientSecret()
	if err != nil {
		logger.Fatal("loading headhunter client secret", zap.Error(err))
	}

	hh := headhunter.New(logger, headhunter.Credentials{
		ClientID:     cfg.HH.ClientID,
		ClientSecret: clientSecret,
		RedirectURI:  cfg.HH.RedirectURI,
	})
	if cfg.HH.UserAgent != "" {
		hh.UserAgent = cfg.HH.UserAgent
	}

	generator, err := newGenerator(ctx, cfg.AI, logger)
	if err != nil {
		logger.Fatal("building ai generator", zap.Error(err))
	}

	jwtSecret, err := cfg.ResolveJWTSecret()
	if err != nil {
		logger.Fatal("loading jwt secret", zap.Error(err))
	}

	warmer := service.NewWarmer(cfg.Warmer.Workers, cfg.Warmer.QueueSize, logger)
	gateway := service.NewGatewayService(hh, store, tokens, generator, apps, warmer, logger)
	auth := service.NewAuthService(hh, tokens, jwtSecret, cfg.JWTTTL(), logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(auth, gateway, cfg.FrontendOrigin, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}

	// The warmer drains its in-flight tasks before the process exits.
	warmer.Stop()

	logger.Info("stopped")
}

// newGenerator picks the match/letter generator. Without a configured AI
// provider the deterministic heuristic keeps the endpoints functional.
func newGenerator(ctx context.Context, cfg *config.AIConfig, baseLogger *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		baseLogger.Info("ai is disabled, using heuristic generator")
		return ai.NewHeuristic(), nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := cfg.Gemini.ResolveAPIKey()
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(baseLogger, "gemini", client.Model())

	return gemini.NewGenerator(client, genLogger, cfg.Gemini.MaxLogLength), nil
}
