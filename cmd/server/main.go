// Command server runs the mentions service: mention parsing, notification
// dispatch and the composer autofill endpoints, wired per environment
// configuration. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mentiond/internal/mentions/events"
	"mentiond/internal/mentions/handler"
	mentionmetrics "mentiond/internal/mentions/metrics"
	"mentiond/internal/mentions/models"
	"mentiond/internal/mentions/parser"
	"mentiond/internal/mentions/ports"
	"mentiond/internal/mentions/service/notifier"
	"mentiond/internal/mentions/store/forum"
	"mentiond/internal/mentions/store/identity"
	"mentiond/internal/mentions/store/sent"
	"mentiond/internal/platform/config"
	"mentiond/internal/platform/httpserver"
	"mentiond/internal/platform/logger"
	"mentiond/internal/platform/metrics"
	platformredis "mentiond/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	settings := models.ParseSettings(cfg.Mentions, log)

	var (
		users  ports.Users
		groups ports.Groups
		topics ports.Topics
		posts  ports.Posts
		privs  ports.Privileges
		notifs ports.Notifications
	)
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(context.Background()); err != nil {
			return err
		}
		users = identity.NewPostgres(db)
		groups = identity.NewPostgresGroups(db)
		f := forum.NewPostgres(db)
		topics, posts, privs, notifs = f, f, f, f
		log.Info("using postgres identity and forum stores")
	} else {
		m := identity.NewMemoryStore()
		f := forum.NewMemoryStore()
		users, groups = m, m.Groups()
		topics, posts, privs, notifs = f, f, f, f
		log.Warn("no postgres configured, using in-memory stores")
	}

	var sentStore ports.SentStore
	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		sentStore = sent.NewRedis(rdb.Client)
		log.Info("using redis sent store")
	} else {
		sentStore = sent.NewMemoryStore()
		log.Warn("no redis configured, sent records will not survive restarts")
	}

	publisher, err := events.New(cfg.Kafka.Brokers,
		events.WithLogger(log),
		events.WithTopic(cfg.Kafka.Topic),
	)
	if err != nil {
		return err
	}
	defer publisher.Close()

	mmetrics := mentionmetrics.New()
	hmetrics := metrics.New()

	p, err := parser.New(users, groups, cfg.Server.BaseURL, settings.Display,
		parser.WithLogger(log),
		parser.WithMetrics(mmetrics))
	if err != nil {
		return err
	}

	notifierOpts := []notifier.Option{
		notifier.WithLogger(log),
		notifier.WithMetrics(mmetrics),
	}
	if publisher != nil {
		notifierOpts = append(notifierOpts, notifier.WithDeliveryHook(publisher))
	}
	n, err := notifier.New(notifier.Collaborators{
		Users:         users,
		Groups:        groups,
		Topics:        topics,
		Posts:         posts,
		Privileges:    privs,
		Notifications: notifs,
		Sent:          sentStore,
	}, settings, notifierOpts...)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Get("/healthz", healthz(rdb))
	router.Handle("/metrics", promhttp.Handler())
	handler.New(p, n, users, groups, settings, log, hmetrics).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting mentiond", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// healthz reports process liveness, including the Redis connection when one
// is configured.
func healthz(rdb *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				status = "redis unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
