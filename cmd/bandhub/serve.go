package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/bandhub/bandhub/internal/api"
	"github.com/bandhub/bandhub/internal/api/handler"
	"github.com/bandhub/bandhub/internal/core/service"
	"github.com/bandhub/bandhub/internal/infrastructure/db/mongo"
	"github.com/bandhub/bandhub/internal/infrastructure/db/postgres"
	"github.com/bandhub/bandhub/internal/infrastructure/db/redis"
	"github.com/bandhub/bandhub/internal/infrastructure/hasher"
	"github.com/bandhub/bandhub/internal/infrastructure/session"
	"github.com/bandhub/bandhub/internal/pkg/config"
	"github.com/bandhub/bandhub/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Apply migrations and start the HTTP server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-migrations",
				Usage: "Start without applying pending migrations",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c.Context)
			if err != nil {
				return err
			}
			return serve(c.Context, cfg, log, !c.Bool("skip-migrations"))
		},
	}
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bandhub",
	})
	return cfg, log, nil
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) error {
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "bandhub",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	posts := mongo.NewPostRepository(mongoDB)
	if err := posts.EnsureIndexes(ctx); err != nil {
		return err
	}

	codec, err := session.NewCodec(cfg.Session.Keys, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	users := postgres.NewUserRepository(db)
	catalog := postgres.NewCatalogRepository(db)

	e, err := api.NewRouter(api.Deps{
		Log: log,
		Auth: service.NewAuthService(users, hasher.NewBcrypt(cfg.Auth.BcryptCost), service.AuthOptions{
			RequireFullName: cfg.Auth.RequireFullName,
		}, log),
		Catalog:  service.NewCatalogService(catalog, redis.NewCatalogCache(rdb, cfg.Redis.CacheTTL), log),
		Songs:    service.NewSongService(postgres.NewSongRepository(db), log),
		Webboard: service.NewWebboardService(catalog, posts, users, log),
		Sessions: session.NewStore(codec, session.CookieOptions{
			Name:   cfg.Session.Cookie,
			Secure: cfg.Session.Secure,
		}),
		Checks: []handler.DependencyCheck{
			handler.PostgresCheck(db),
			handler.RedisCheck(rdb),
			handler.MongoCheck(mongoClient),
		},
		PublicDir:   cfg.Web.PublicDir,
		PicturesDir: cfg.Web.PicturesDir,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return listen(ctx, server, log)
}

// listen runs the server until ctx is cancelled, then drains in-flight
// requests.
func listen(ctx context.Context, server *http.Server, log zerolog.Logger) error {
	log = log.With().Str("server.addr", server.Addr).Logger()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("initiating shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("shutdown completed")
	return <-errCh
}
