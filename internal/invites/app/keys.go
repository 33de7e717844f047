package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/invites/pkg/jwtx"
)

// KeyRefresher periodically reloads the auth service's verification keys
// into a KeySet, from a JWKS URL or a local JWKS file.
type KeyRefresher struct {
	Keys     *jwtx.KeySet
	URL      string
	File     string
	Client   *http.Client
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewKeyRefresher creates a refresher. If interval is 0 or negative it
// defaults to 15 minutes.
func NewKeyRefresher(keys *jwtx.KeySet, url, file string, logger *slog.Logger, interval time.Duration) *KeyRefresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &KeyRefresher{
		Keys:     keys,
		URL:      url,
		File:     file,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Refresh loads the key set once. On failure the current keys are kept.
func (k *KeyRefresher) Refresh(ctx context.Context) error {
	var (
		set jwtx.JWKS
		err error
	)
	switch {
	case k.URL != "":
		set, err = jwtx.FetchJWKS(ctx, k.Client, k.URL)
	case k.File != "":
		set, err = jwtx.LoadJWKSFile(k.File)
	default:
		return errors.New("no jwks source configured")
	}
	if err != nil {
		return err
	}

	n, err := k.Keys.ResetFromJWKS(set)
	if err != nil {
		return err
	}
	k.Logger.Debug("verification keys loaded", "num_keys", n, "skipped", len(set.Keys)-n)
	return nil
}

// Start begins the background worker. It is non-blocking; call Stop to
// shut it down.
func (k *KeyRefresher) Start() {
	go k.run()
	k.Logger.Info("key refresher started", "interval", k.Interval)
}

// Stop shuts down the worker and waits for an in-progress refresh.
func (k *KeyRefresher) Stop() {
	close(k.stopCh)
	<-k.doneCh
	k.Logger.Info("key refresher stopped")
}

func (k *KeyRefresher) run() {
	defer close(k.doneCh)

	ticker := time.NewTicker(k.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.refreshOnce()
		case <-k.stopCh:
			return
		}
	}
}

func (k *KeyRefresher) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := k.Refresh(ctx); err != nil {
		k.Logger.Error("failed to refresh verification keys", "error", err)
	}
}
