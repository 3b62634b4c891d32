package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/lookingglass/internal/logger"
	"github.com/rewired-gh/lookingglass/internal/render"
	"github.com/rewired-gh/lookingglass/internal/store"
	"github.com/rewired-gh/lookingglass/internal/telegram"
	"github.com/rewired-gh/lookingglass/internal/views"
)

// digestSender is the part of *telegram.Client the watch loop uses.
type digestSender interface {
	Send(d telegram.Digest) error
}

func newWatchCmd(opts *options) *cobra.Command {
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the dashboard periodically",
		Long: `Mount the whole dashboard every interval and print it. Data from a failed
refresh keeps the previous values. When telegram.enabled is set, a digest of
every refresh is posted to the configured chat.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				if interval < 10*time.Second {
					return fmt.Errorf("--interval must be at least 10 seconds")
				}
				cfg.Watch.Interval = interval
			}

			// Initialize Telegram client
			var sender digestSender
			if cfg.Telegram.Enabled {
				tc, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
				if err != nil {
					return fmt.Errorf("failed to initialize Telegram client: %w", err)
				}
				sender = tc
				logger.Info("Telegram client initialized successfully")
			} else {
				logger.Debug("Telegram digests disabled")
			}

			// Setup graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			go func() {
				select {
				case <-sigChan:
					logger.Info("Shutdown signal received, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			a := newApp(cfg)
			w := &watcher{
				out:       cmd.OutOrStdout(),
				store:     a.store,
				dashboard: a.dashboard(),
				sender:    sender,
			}
			return w.run(ctx, cfg.Watch.Interval, count)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default from watch.interval)")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many refreshes (0 runs until interrupted)")
	return cmd
}

// watcher refreshes one dashboard against one long-lived store.
type watcher struct {
	out       io.Writer
	store     *store.Store
	dashboard *views.Dashboard
	sender    digestSender

	consecutiveFailures int
}

func (w *watcher) run(ctx context.Context, interval time.Duration, count int) error {
	unsubscribe := w.store.Subscribe(logTransitions())
	defer unsubscribe()

	logger.Info("Starting watch (interval: %v)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run initial refresh immediately
	refreshes := 0
	w.refresh(ctx, time.Now())
	refreshes++

	for {
		if count > 0 && refreshes >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped")
			return nil
		case tickTime := <-ticker.C:
			w.refresh(ctx, tickTime)
			refreshes++
		}
	}
}

// refresh mounts every page, prints the dashboard and posts a digest.
func (w *watcher) refresh(ctx context.Context, at time.Time) {
	startTime := time.Now()
	logger.Debug("Starting refresh")

	if err := w.dashboard.Mount(ctx); err != nil {
		logger.Warn("Refresh interrupted: %v", err)
		return
	}

	st := w.store.Snapshot()
	reportInvalid(st)

	fmt.Fprintf(w.out, "%s\n", render.Colors.Muted(at.Format("2006-01-02 15:04:05")))
	render.Dashboard(w.out, st)
	fmt.Fprintln(w.out)

	if st.Error != "" {
		w.consecutiveFailures++
		logger.Error("Refresh finished with error: %s (%d in a row)", st.Error, w.consecutiveFailures)
	} else {
		if w.consecutiveFailures > 0 {
			logger.Info("Refresh recovered after %d failures", w.consecutiveFailures)
		}
		w.consecutiveFailures = 0
	}

	if w.sender != nil {
		d := telegram.BuildDigest(st, at, telegram.DefaultTopN)
		if d.Empty() {
			logger.Debug("Nothing to report, skipping digest")
		} else if err := w.sender.Send(d); err != nil {
			logger.Warn("Failed to send digest to Telegram: %v", err)
		}
	}

	logger.Info("Refresh completed in %v", time.Since(startTime))
}

// logTransitions logs loading flag changes at debug level.
func logTransitions() func(store.State) {
	var mu sync.Mutex
	prev := make(map[store.Group]bool)
	return func(st store.State) {
		mu.Lock()
		defer mu.Unlock()
		for _, g := range store.Groups {
			if st.Loading[g] != prev[g] {
				logger.Debug("%s loading=%v", g, st.Loading[g])
				prev[g] = st.Loading[g]
			}
		}
	}
}
