package main

import (
	"net/http"
	"os"

	"liars-roulette/apps/server/internal/config"
	"liars-roulette/apps/server/internal/gateway"
	"liars-roulette/apps/server/internal/history"
	"liars-roulette/apps/server/internal/session"
	"liars-roulette/apps/server/pkg/logger"
	"liars-roulette/game"

	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("load config: " + err.Error())
	}

	logger.InitLogger(cfg.Server.Mode)
	defer func() { _ = logger.Log.Sync() }()
	log := zap.L().Named("server")

	var (
		hist     history.Service
		histMode string
	)
	if cfg.History.Driver == "" {
		// No driver configured: fall back to the HISTORY_* env vars.
		hist, histMode, err = history.NewServiceFromEnv()
	} else {
		hist, histMode, err = history.NewService(cfg.History.Driver, cfg.History.DSN)
	}
	if err != nil {
		log.Fatal("init history service failed", zap.Error(err))
	}
	defer hist.Close()

	pacing := session.DefaultPacing()
	if shot, death, survive, lobby, scale := cfg.Pacing.Durations(); scale > 0 {
		if shot > 0 {
			pacing.ShotSuspense = shot
		}
		if death > 0 {
			pacing.DeathRestart = death
		}
		if survive > 0 {
			pacing.SurviveRestart = survive
		}
		if lobby > 0 {
			pacing.LobbyReturn = lobby
		}
		pacing.ThinkScale = scale
	}

	gw := gateway.New()
	sess, err := session.New(session.Config{
		Game: game.Config{
			MaxSeats: cfg.Game.MaxSeats,
			MinSeats: 2,
			HandSize: cfg.Game.HandSize,
			Seed:     cfg.Game.Seed,
		},
		Pacing:    pacing,
		History:   hist,
		Send:      gw.SendTo,
		Broadcast: gw.Broadcast,
	})
	if err != nil {
		log.Fatal("create session failed", zap.Error(err))
	}
	defer sess.Stop()
	gw.AttachSession(sess)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("history", histMode))
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
