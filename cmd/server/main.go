package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"gradtrack/projects/internal/authz"
	"gradtrack/projects/internal/config"
	"gradtrack/projects/internal/grading"
	internalhttp "gradtrack/projects/internal/http"
	"gradtrack/projects/internal/identity"
	"gradtrack/projects/internal/persist"
	"gradtrack/projects/internal/seed"
	"gradtrack/projects/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, cleanup, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	defer cleanup()

	snap, err := backend.Load(ctx)
	if err != nil {
		if !errors.Is(err, persist.ErrNoSnapshot) {
			log.Fatalf("snapshot load failed: %v", err)
		}
		snap = seed.Snapshot()
		if err := backend.Save(ctx, snap); err != nil {
			log.Fatalf("seed save failed: %v", err)
		}
		log.Printf("no snapshot found, seeded default dataset")
	}

	st := store.New(backend, snap)
	identitySvc := identity.NewService(st)
	resolver := authz.NewResolver(st)
	engine := grading.NewEngine(st, resolver)

	server := internalhttp.NewServer(cfg, st, identitySvc, resolver, engine)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("projects http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newBackend(ctx context.Context, cfg config.Config) (persist.Backend, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "postgres":
		pool, err := persist.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		backend := persist.NewPostgres(pool)
		if err := backend.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return backend, pool.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}
		return persist.NewRedis(client, cfg.SnapshotKey), cleanup, nil
	case "memory":
		return persist.NewMemory(), noop, nil
	case "file":
		return persist.NewFile(cfg.SnapshotPath), noop, nil
	default:
		return nil, noop, errors.New("unknown STORAGE_DRIVER: " + cfg.StorageDriver)
	}
}
