package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/everlyy/music-bot/internal/config"
	"github.com/everlyy/music-bot/internal/lastfm"
	"github.com/everlyy/music-bot/internal/playlists"
	"github.com/everlyy/music-bot/internal/scrobble"
	"github.com/everlyy/music-bot/internal/session"
)

func run() error {
	// Optional; credentials usually live in the environment already
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	log := logrus.WithField("component", "main")

	if !cfg.HasLastfmConfig() {
		return fmt.Errorf("last.fm api_key and api_secret are required")
	}
	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)

	store, err := session.Open(cfg.SessionDB)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	sources := playlists.NewSources(playlists.SearchPaths{
		StrawberryDB:  cfg.Playlists.StrawberryDB,
		XSPFDir:       cfg.Playlists.XSPFDir,
		CollectionDir: cfg.Playlists.CollectionDir,
	})
	logPlaylists(log, sources.LoadAll())

	queue := scrobble.NewQueue()
	worker := scrobble.NewWorker(queue, store, client)
	worker.Start()
	defer worker.Stop()

	var watcher *playlists.Watcher
	if cfg.Playlists.XSPFDir != "" {
		watcher, err = playlists.WatchXSPFDir(cfg.Playlists.XSPFDir, func() {
			log.Info("playlist directory changed, reloading")
			logPlaylists(log, sources.LoadAll())
		})
		if err != nil {
			log.WithError(err).Warn("playlist watcher unavailable")
		} else {
			defer watcher.Close()
		}
	}

	log.Info("music bot ready")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	return nil
}

func logPlaylists(log *logrus.Entry, loaded []playlists.Playlist) {
	for _, pl := range loaded {
		log.WithFields(logrus.Fields{
			"playlist": pl.Name,
			"source":   pl.Source,
			"tracks":   len(pl.Tracks),
		}).Info("loaded playlist")
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
