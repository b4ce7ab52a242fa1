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

	"github.com/AutumnThyme/PumpkinSnatcher/internal/browser"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/config"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/fetch"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/serverapp"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/snapshot"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/track"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/tracker"
)

func main() {
	logger := log.Default()

	cfg, err := config.LoadOrDefault("pumpkinsnatcher.yml")
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	client := fetch.NewClient(cfg.Endpoint.URL, cfg.Endpoint.Timeout(), logger)
	logger.Printf("fetching pumpkin data from %s", cfg.Endpoint.URL)
	data, err := client.Fetch(context.Background())
	if err != nil {
		logger.Fatalf("fetch pumpkin data: %v", err)
	}

	claimedSet := claimed.LoadFile(cfg.ClaimedPath(), logger)
	logger.Printf("loaded %d claimed pumpkin IDs", len(claimedSet))

	now := time.Now()
	newPumpkins := track.FilterNew(data, claimedSet)
	recent := track.FilterRecent(newPumpkins, now, logger)
	progress := track.CalculateProgress(data, claimedSet, cfg.Progress.TotalPumpkins)
	logger.Printf("progress: %d/%d claimed, %d left, %d new this hour",
		progress.Claimed, progress.Total, progress.Left, len(recent))

	if err := snapshot.Write(cfg.AllSnapshotPath(), data); err != nil {
		logger.Fatalf("write %s: %v", cfg.AllSnapshotPath(), err)
	}
	if err := snapshot.Write(cfg.RecentSnapshotPath(), recent); err != nil {
		logger.Fatalf("write %s: %v", cfg.RecentSnapshotPath(), err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Snapshot: tracker.Snapshot{
			Data:      data,
			FetchedAt: now.UTC(),
		},
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	addr := cfg.Addr()
	url := "http://" + addr
	if *cfg.Server.OpenBrowser {
		delay := time.Duration(cfg.Server.OpenBrowserDelayMS) * time.Millisecond
		browser.OpenAfter(delay, url, logger)
	}

	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		logger.Printf("pumpkin snatcher listening on %s", url)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
