package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tilequest/internal/adapter/eventlog"
	httpadapter "tilequest/internal/adapter/http"
	metricsinmem "tilequest/internal/adapter/metrics/inmemory"
	gormrepo "tilequest/internal/adapter/repo/gorm"
	memrepo "tilequest/internal/adapter/repo/memory"
	"tilequest/internal/adapter/stream"
	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/app/replay"
	"tilequest/internal/app/session"
	"tilequest/internal/config"
	"tilequest/internal/domain/board"
	"tilequest/internal/logger"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	events, txManager, err := buildRepos(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("build repositories")
	}

	kpiRecorder := metricsinmem.NewRecorder()
	sessions := buildSessionUseCase(cfg, log, events, txManager, kpiRecorder)
	hub := stream.NewHub(nil, cfg.CORSOrigin, log.WithField("component", "stream"))
	sessions.Observers = append(sessions.Observers, hub)
	hub.States = sessions

	h := httpadapter.Handler{
		SessionUC:   sessions,
		ReplayUC:    replay.UseCase{Events: events},
		KPI:         kpiRecorder,
		AllowOrigin: cfg.CORSOrigin,
	}

	streamSrv := &http.Server{
		Addr:              cfg.StreamAddr,
		Handler:           hub.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.StreamAddr).Info("event stream listening")
		if err := streamSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("event stream stopped")
		}
	}()

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	log.WithFields(logrus.Fields{
		"addr":    cfg.HTTPAddr,
		"storage": storageName(cfg),
	}).Info("tilequest server listening")
	s.Spin()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := streamSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("event stream shutdown")
	}
}

func buildSessionUseCase(cfg config.Config, log logrus.FieldLogger, events ports.EventRepository, tx ports.TxManager, metrics ports.CommandMetrics) session.UseCase {
	return session.UseCase{
		TxManager: tx,
		Events:    events,
		Sessions:  session.NewRegistry(),
		Manager: game.Manager{
			DefaultTerrain:     board.Terrain(cfg.DefaultTerrain),
			StartingEntityKind: cfg.StartingEntityKind,
		},
		Metrics:   metrics,
		Observers: []session.Observer{eventlog.New(log.WithField("component", "eventlog"))},
		Log:       log,
		Now:       time.Now,
	}
}

func buildRepos(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (ports.EventRepository, ports.TxManager, error) {
	if !cfg.UsesPostgres() {
		store := memrepo.NewStore()
		return memrepo.NewEventRepo(store), memrepo.NewTxManager(store), nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	applied, err := gormrepo.ApplyMigrations(ctx, db, gormrepo.Migrations)
	if err != nil {
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	if len(applied) > 0 {
		log.WithField("versions", applied).Info("migrations applied")
	}
	return gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db), nil
}

func storageName(cfg config.Config) string {
	if cfg.UsesPostgres() {
		return "postgres"
	}
	return "memory"
}
