package sessioncache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultPollInterval is how often an active session is re-read from the ledger.
const DefaultPollInterval = 12 * time.Second

// ErrNoActiveSession is returned by operations that need an active session when there is none.
var ErrNoActiveSession = errors.New("no active cash session")

// Registry is the part of the ledger the tracker depends on.
type Registry interface {
	GetSession(ctx context.Context, sessionID string) (*dto.CashSessionResponse, error)
	// GetOpenSession returns nil with no error when the employee has no open session.
	GetOpenSession(ctx context.Context, employeeID string) (*dto.CashSessionResponse, error)
	OpenSession(ctx context.Context, employeeID string, openingBalance decimal.Decimal) (*dto.CashSessionResponse, error)
	CloseSession(ctx context.Context, sessionID string, closingBalance decimal.Decimal, note *string) (*dto.CloseSessionResponse, error)
	AddEntry(ctx context.Context, sessionID string, req dto.AddEntryRequest) (*dto.LedgerEntryResponse, error)
	ListEntries(ctx context.Context, sessionID string, kind *domain.EntryKind) (*dto.ListEntriesResponse, error)
}

// NoticeKind identifies a notice delivered to the client UI.
type NoticeKind string

const (
	// NoticeSessionClosedRemotely means the ledger closed the active session, e.g. from an admin view.
	NoticeSessionClosedRemotely NoticeKind = "SESSION_CLOSED_REMOTELY"
	// NoticeSessionDiscarded means a cached session could not be resumed and was forgotten.
	NoticeSessionDiscarded NoticeKind = "SESSION_DISCARDED"
)

// Notice tells the client that its active session changed without it asking.
type Notice struct {
	Kind      NoticeKind
	SessionID string
	Message   string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPollInterval sets the poll interval. Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithLogger sets the tracker's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithNoticeHandler registers fn to receive notices. fn is called without locks held
// and may be called from the poll goroutine.
func WithNoticeHandler(fn func(Notice)) Option {
	return func(t *Tracker) { t.onNotice = fn }
}

// Tracker holds a cashier's active session and keeps it honest against the ledger.
//
// While a session is active one goroutine polls the ledger for it. The goroutine is
// cancelled the moment the active session becomes nil, replaced or Shutdown is called.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Tracker struct {
	registry   Registry
	store      Store
	employeeID string
	interval   time.Duration
	logger     *slog.Logger
	onNotice   func(Notice)

	mu      sync.Mutex
	active  *dto.CashSessionResponse
	entries []dto.LedgerEntryResponse
	poll    *poller
}

type poller struct {
	sessionID string
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewTracker creates a tracker for employeeID. Call Resume to restore a cached session.
func NewTracker(registry Registry, store Store, employeeID string, opts ...Option) *Tracker {
	t := &Tracker{
		registry:   registry,
		store:      store,
		employeeID: employeeID,
		interval:   DefaultPollInterval,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resume restores the active session on startup. A cached session that is closed,
// missing or owned by someone else is discarded and Resume reports no session.
// With nothing cached the ledger is asked for the employee's open session.
func (t *Tracker) Resume(ctx context.Context) (*dto.CashSessionResponse, error) {
	rec, err := t.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptRecord) {
			return nil, fmt.Errorf("load session cache: %w", err)
		}
		t.logger.Warn("Discarding unreadable session cache", slog.String("error", err.Error()))
		t.discard(ctx, "", "The saved session could not be read and was discarded.")
		rec = nil
	}

	if rec != nil {
		session, err := t.reconcile(ctx, *rec)
		if err != nil || session == nil {
			return nil, err
		}
		return t.adopt(ctx, session)
	}

	session, err := t.registry.GetOpenSession(ctx, t.employeeID)
	if err != nil {
		return nil, fmt.Errorf("look up open session for %s: %w", t.employeeID, err)
	}
	if session == nil {
		return nil, nil
	}
	return t.adopt(ctx, session)
}

// Open opens a session with the given opening balance. When the employee already has
// an open session it is adopted instead and resumed is true.
func (t *Tracker) Open(ctx context.Context, openingBalance decimal.Decimal) (session *dto.CashSessionResponse, resumed bool, err error) {
	if active := t.Active(); active != nil {
		return active, true, nil
	}

	created, err := t.registry.OpenSession(ctx, t.employeeID, openingBalance)
	var openErr *apperrors.AlreadyOpenError
	if errors.As(err, &openErr) && openErr.SessionID != "" {
		t.logger.Info("Session already open, resuming", slog.String("session_id", openErr.SessionID))
		existing, err := t.registry.GetSession(ctx, openErr.SessionID)
		if err != nil {
			return nil, false, fmt.Errorf("resume open session %s: %w", openErr.SessionID, err)
		}
		session, err = t.adopt(ctx, existing)
		return session, true, err
	}
	if err != nil {
		return nil, false, err
	}
	session, err = t.adopt(ctx, created)
	return session, false, err
}

// AddEntry records an entry against the active session. If the ledger reports the
// session closed or gone, the tracker drops it before returning the error.
func (t *Tracker) AddEntry(ctx context.Context, req dto.AddEntryRequest) (*dto.LedgerEntryResponse, error) {
	active := t.Active()
	if active == nil {
		return nil, ErrNoActiveSession
	}

	entry, err := t.registry.AddEntry(ctx, active.SessionID, req)
	if errors.Is(err, apperrors.ErrSessionClosed) || errors.Is(err, apperrors.ErrNotFound) {
		t.deactivate(ctx, active.SessionID, &Notice{
			Kind:      NoticeSessionClosedRemotely,
			SessionID: active.SessionID,
			Message:   "This session was closed elsewhere. Open a new session to keep recording.",
		}, true)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	if t.active != nil && t.active.SessionID == active.SessionID {
		t.entries = append(t.entries, *entry)
	}
	t.mu.Unlock()
	return entry, nil
}

// Close reconciles and closes the active session.
func (t *Tracker) Close(ctx context.Context, closingBalance decimal.Decimal, note *string) (*dto.CloseSessionResponse, error) {
	active := t.Active()
	if active == nil {
		return nil, ErrNoActiveSession
	}

	result, err := t.registry.CloseSession(ctx, active.SessionID, closingBalance, note)
	if errors.Is(err, apperrors.ErrAlreadyClosed) || errors.Is(err, apperrors.ErrNotFound) {
		t.deactivate(ctx, active.SessionID, &Notice{
			Kind:      NoticeSessionClosedRemotely,
			SessionID: active.SessionID,
			Message:   "This session had already been closed elsewhere.",
		}, true)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	t.deactivate(ctx, active.SessionID, nil, true)
	return result, nil
}

// Active returns a copy of the active session, or nil.
func (t *Tracker) Active() *dto.CashSessionResponse {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	s := *t.active
	return &s
}

// Entries returns a copy of the active session's entries.
func (t *Tracker) Entries() []dto.LedgerEntryResponse {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]dto.LedgerEntryResponse, len(t.entries))
	copy(out, t.entries)
	return out
}

// Shutdown stops polling and waits for the poll goroutine to exit.
// The cached record is kept so the next Resume can pick the session up again.
func (t *Tracker) Shutdown() {
	t.mu.Lock()
	p := t.poll
	t.poll = nil
	t.mu.Unlock()
	stopPoller(p, true)
}

// reconcile validates a cached record against the ledger. It returns nil without
// error when the record was discarded.
func (t *Tracker) reconcile(ctx context.Context, rec Record) (*dto.CashSessionResponse, error) {
	if rec.EmployeeID != t.employeeID {
		t.discard(ctx, rec.SessionID, "The saved session belongs to another employee and was discarded.")
		return nil, nil
	}

	session, err := t.registry.GetSession(ctx, rec.SessionID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrValidation):
		t.discard(ctx, rec.SessionID, "The saved session no longer exists.")
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reconcile cached session %s: %w", rec.SessionID, err)
	case !session.IsOpen():
		t.discard(ctx, rec.SessionID, "The saved session was already closed.")
		return nil, nil
	case session.EmployeeID != t.employeeID:
		t.discard(ctx, rec.SessionID, "The saved session belongs to another employee and was discarded.")
		return nil, nil
	}
	return session, nil
}

// adopt makes session the active one, loads its entries, caches it and starts polling.
func (t *Tracker) adopt(ctx context.Context, session *dto.CashSessionResponse) (*dto.CashSessionResponse, error) {
	list, err := t.registry.ListEntries(ctx, session.SessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("load entries for session %s: %w", session.SessionID, err)
	}

	rec := Record{SessionID: session.SessionID, EmployeeID: session.EmployeeID, SavedAt: time.Now().UTC()}
	if err := t.store.Save(ctx, rec); err != nil {
		// The ledger stays authoritative; only resume-after-restart is lost.
		t.logger.Warn("Failed to cache active session", slog.String("session_id", session.SessionID), slog.String("error", err.Error()))
	}

	adopted := *session
	adopted.Entries = nil
	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	next := &poller{sessionID: session.SessionID, cancel: cancel, done: make(chan struct{})}

	t.mu.Lock()
	prev := t.poll
	t.active = &adopted
	t.entries = list.Entries
	t.poll = next
	t.mu.Unlock()

	stopPoller(prev, true)
	go t.pollLoop(pollCtx, next)

	t.logger.Info("Active session adopted", slog.String("session_id", adopted.SessionID), slog.Int("entries", len(list.Entries)))
	out := adopted
	return &out, nil
}

// deactivate drops sessionID if it is still the active session. wait must be false
// when called from the poll goroutine itself.
func (t *Tracker) deactivate(ctx context.Context, sessionID string, notice *Notice, wait bool) {
	t.mu.Lock()
	if t.active == nil || t.active.SessionID != sessionID {
		t.mu.Unlock()
		return
	}
	t.active = nil
	t.entries = nil
	p := t.poll
	t.poll = nil
	t.mu.Unlock()

	stopPoller(p, wait)
	t.clearIfCached(context.WithoutCancel(ctx), sessionID)
	if notice != nil {
		t.notify(*notice)
	}
}

func (t *Tracker) discard(ctx context.Context, sessionID, message string) {
	if err := t.store.Clear(ctx); err != nil {
		t.logger.Warn("Failed to clear session cache", slog.String("error", err.Error()))
	}
	t.notify(Notice{Kind: NoticeSessionDiscarded, SessionID: sessionID, Message: message})
}

// clearIfCached clears the store only while it still points at sessionID.
func (t *Tracker) clearIfCached(ctx context.Context, sessionID string) {
	rec, err := t.store.Load(ctx)
	if err == nil && rec != nil && rec.SessionID != sessionID {
		return
	}
	if err := t.store.Clear(ctx); err != nil {
		t.logger.Warn("Failed to clear session cache", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}
}

func (t *Tracker) notify(n Notice) {
	t.logger.Info("Session notice", slog.String("kind", string(n.Kind)), slog.String("session_id", n.SessionID))
	if t.onNotice != nil {
		t.onNotice(n)
	}
}

func (t *Tracker) pollLoop(ctx context.Context, p *poller) {
	defer close(p.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.checkRemote(ctx, p.sessionID) {
				return
			}
		}
	}
}

// checkRemote re-reads the session and reports whether polling should stop.
// Transient failures are logged and retried on the next tick.
func (t *Tracker) checkRemote(ctx context.Context, sessionID string) bool {
	session, err := t.registry.GetSession(ctx, sessionID)
	switch {
	case ctx.Err() != nil:
		return true
	case errors.Is(err, apperrors.ErrNotFound):
		t.deactivate(ctx, sessionID, &Notice{
			Kind:      NoticeSessionDiscarded,
			SessionID: sessionID,
			Message:   "The active session no longer exists.",
		}, false)
		return true
	case err != nil:
		t.logger.Warn("Session poll failed, retrying next interval", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return false
	case !session.IsOpen():
		t.deactivate(ctx, sessionID, &Notice{
			Kind:      NoticeSessionClosedRemotely,
			SessionID: sessionID,
			Message:   "This session was closed elsewhere. New entries are no longer accepted.",
		}, false)
		return true
	}

	t.mu.Lock()
	if t.active != nil && t.active.SessionID == sessionID {
		refreshed := *session
		t.entries = refreshed.Entries
		refreshed.Entries = nil
		t.active = &refreshed
	}
	t.mu.Unlock()
	return false
}

func stopPoller(p *poller, wait bool) {
	if p == nil {
		return
	}
	p.cancel()
	if wait {
		<-p.done
	}
}
