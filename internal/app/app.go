package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"robotdemo/internal/auth"
	"robotdemo/internal/config"
	"robotdemo/internal/database"
	"robotdemo/internal/httpserver"
	"robotdemo/internal/metrics"
	"robotdemo/internal/robot"
	"robotdemo/internal/session"
)

const sweepInterval = time.Minute

type App struct {
	cfg        config.Config
	lg         *zap.SugaredLogger
	httpServer *http.Server
	background []func(ctx context.Context) error
	cleanup    []func() error
}

func New(ctx context.Context, cfg config.Config, lg *zap.SugaredLogger) (*App, error) {
	a := &App{cfg: cfg, lg: lg}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		if db, err = database.Open(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.cleanup = append(a.cleanup, sqlDB.Close)
		if err := database.Migrate(ctx, db, lg); err != nil {
			_ = a.close()
			return nil, err
		}
		lg.Infow("database ready")
	}

	var robots robot.Repository
	if db != nil {
		robots = robot.NewGormRepository(db)
	} else {
		robots = robot.NewMemoryRepository(robot.Seed(), robot.WithLatency(cfg.SimulatedLatency))
	}

	users := auth.NewDirectory(auth.DemoUsers())
	store, err := a.sessionStore(ctx, users, db)
	if err != nil {
		_ = a.close()
		return nil, err
	}
	lg.Infow("session store ready", "backend", cfg.SessionBackend)

	handler := httpserver.NewRouter(httpserver.Deps{
		Robots:  robots,
		Auth:    auth.NewService(users, store, cfg.Production(), cfg.SessionTTL, lg),
		Metrics: metrics.New(),
		PerPage: cfg.RobotsPerPage,
		Log:     lg,
	})
	a.httpServer = &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func (a *App) sessionStore(ctx context.Context, users *auth.Directory, db *gorm.DB) (session.Store, error) {
	switch a.cfg.SessionBackend {
	case "userid":
		return session.NewUserIDStore(users.Exists), nil
	case "redis":
		client, err := session.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		a.cleanup = append(a.cleanup, client.Close)
		return session.NewRedisStore(client), nil
	case "postgres":
		if db == nil {
			return nil, errors.New("session backend postgres requires DATABASE_URL")
		}
		store := session.NewGormStore(db)
		a.background = append(a.background, func(ctx context.Context) error {
			return every(ctx, sweepInterval, func() {
				if n, err := store.PurgeExpired(ctx); err != nil {
					a.lg.Warnw("purge sessions", "error", err)
				} else if n > 0 {
					a.lg.Debugw("purged sessions", "count", n)
				}
			})
		})
		return store, nil
	case "jwt":
		return session.NewJWTStore(a.cfg.JWTSecret)
	case "memory":
		store := session.NewMemoryStore()
		a.background = append(a.background, func(ctx context.Context) error {
			return store.Janitor(ctx, sweepInterval, func(n int) {
				a.lg.Debugw("swept sessions", "count", n)
			})
		})
		return store, nil
	}
	return nil, fmt.Errorf("unknown session backend %q", a.cfg.SessionBackend)
}

func every(ctx context.Context, d time.Duration, fn func()) error {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down within shutdownTimeout.
func (a *App) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln, shutdownTimeout)
}

func (a *App) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	defer func() {
		if err := a.close(); err != nil {
			a.lg.Warnw("cleanup failed", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range a.background {
		job := job
		g.Go(func() error { return job(gctx) })
	}
	g.Go(func() error {
		a.lg.Infow("listening", "addr", ln.Addr().String())
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) close() error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, a.cleanup[i]())
	}
	a.cleanup = nil
	return errors.Join(errs...)
}
