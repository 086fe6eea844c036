package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"troffee-admin-console/internal/adapters/backend"
	"troffee-admin-console/internal/adapters/broadcaster"
	"troffee-admin-console/internal/adapters/redis"
	"troffee-admin-console/internal/adapters/rest"
	"troffee-admin-console/internal/adapters/ws"
	"troffee-admin-console/internal/app"
	"troffee-admin-console/internal/config"
	"troffee-admin-console/internal/domain/localtime"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Troffee Admin Console...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := localtime.LoadLocation(cfg.Console.DisplayTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Console.DisplayTimezone).Msg("Failed to load display timezone")
	}
	converter := localtime.NewConverter(loc)
	log.Info().Str("timezone", loc.String()).Msg("Display timezone loaded")

	// Redis carries change events between open consoles
	redisClient := redis.NewClient(cfg.Redis)
	if err := redis.PingRedis(ctx, redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	redisBroadcaster := broadcaster.NewBroadcaster(broadcaster.RedisBroadcasterParams{
		RedisClient: redisClient,
		Channel:     cfg.Redis.EventsChannel,
		Logger:      log.Logger,
	})

	apiClient := backend.NewClient(backend.ClientParams{
		Config: cfg.Backend,
		Logger: log.Logger,
	})
	log.Info().Str("backend_url", cfg.Backend.GetBaseURL()).Msg("Platform API client initialized")

	auctionEditor := app.NewAuctionEditorService(app.AuctionEditorServiceParams{
		API:       apiClient,
		Notifier:  redisBroadcaster,
		Converter: converter,
		Logger:    log.Logger,
	})
	userService := app.NewUserService(app.UserServiceParams{
		API:      apiClient,
		Notifier: redisBroadcaster,
		Clock:    clock.NewClock(),
		Debounce: cfg.Console.SearchDebounce,
		PageSize: cfg.Console.UsersPageSize,
		Logger:   log.Logger,
	})

	log.Info().Msg("Business services initialized")

	wsHandler := ws.NewHandler(ws.WsHandlerParams{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			// TODO: restrict to the admin frontend origin once it is configurable
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		UserService: userService,
		Notifier:    redisBroadcaster,
		Logger:      log.Logger,
	})

	go wsHandler.ListenForEvents(ctx)

	server := rest.NewServer(rest.ServerParams{
		Config: cfg,
		Handler: rest.NewHandler(rest.HandlerParams{
			Editor:      auctionEditor,
			UserService: userService,
			Logger:      log.Logger,
		}),
		WsHandler: wsHandler,
		Logger:    log.Logger,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start admin console server")
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping admin console server")
	}

	cancel()
	if err := redisBroadcaster.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis broadcaster")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
