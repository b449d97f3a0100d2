package cashiercli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/barbershop_cashdrawer/internal/client/ledgerapi"
	"github.com/SscSPs/barbershop_cashdrawer/internal/client/sessioncache"
	"github.com/redis/go-redis/v9"
)

var _ sessioncache.Registry = (*ledgerapi.Client)(nil)

// app is what every subcommand works with.
type app struct {
	settings *Settings
	client   *ledgerapi.Client
	tracker  *sessioncache.Tracker
	out      io.Writer
	errOut   io.Writer
	closers  []func() error
}

func newApp(settings *Settings, logger *slog.Logger, out, errOut io.Writer) *app {
	a := &app{settings: settings, out: out, errOut: errOut}
	a.client = ledgerapi.New(settings.ServerURL, settings.Token, ledgerapi.WithLogger(logger))

	var store sessioncache.Store
	if settings.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		a.closers = append(a.closers, rdb.Close)
		store = sessioncache.NewRedisStore(rdb, sessioncache.RedisKey(settings.EmployeeID), 0)
	} else {
		store = sessioncache.NewFileStore(settings.StateFile)
	}

	a.tracker = sessioncache.NewTracker(a.client, store, settings.EmployeeID,
		sessioncache.WithPollInterval(settings.PollInterval),
		sessioncache.WithLogger(logger),
		sessioncache.WithNoticeHandler(a.printNotice),
	)
	return a
}

// resume restores the cached session, reporting any discarded one on errOut.
func (a *app) resume(ctx context.Context) error {
	if _, err := a.tracker.Resume(ctx); err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	return nil
}

func (a *app) printNotice(n sessioncache.Notice) {
	fmt.Fprintf(a.errOut, "! %s\n", n.Message)
}

func (a *app) close() {
	a.tracker.Shutdown()
	for _, c := range a.closers {
		_ = c()
	}
}
