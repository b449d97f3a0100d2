package cashiercli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/client/sessioncache"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Env carries what the subcommands share.
type Env struct {
	Viper  *viper.Viper
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// Register the subcommands.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&openCmd{env: env}, "session")
	c.Register(&statusCmd{env: env}, "session")
	c.Register(&closeCmd{env: env}, "session")
	c.Register(&watchCmd{env: env}, "session")
	c.Register(&historyCmd{env: env}, "session")

	c.Register(&entryCmd{env: env, kind: domain.EntryIncome}, "entries")
	c.Register(&entryCmd{env: env, kind: domain.EntryExpense}, "entries")
	c.Register(&entriesCmd{env: env}, "entries")
	c.Register(&voidCmd{env: env}, "entries")
}

// run loads settings, builds the app and reports fn's error on Err.
func (e *Env) run(ctx context.Context, fn func(context.Context, *app) error) subcommands.ExitStatus {
	settings, err := LoadSettings(e.Viper)
	if err != nil {
		fmt.Fprintln(e.Err, err)
		return subcommands.ExitFailure
	}
	a := newApp(settings, e.Logger, e.Out, e.Err)
	defer a.close()

	if err := fn(ctx, a); err != nil {
		fmt.Fprintln(e.Err, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, fmt.Errorf("-%s is required", name)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s %q: %w", name, raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("-%s must not be negative", name)
	}
	return d, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// openCmd holds the flags for the 'open' subcommand.
type openCmd struct {
	env     *Env
	balance string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open a cash session, or resume the one already open" }
func (*openCmd) Usage() string {
	return `cashier open -balance <amount>

  Opens a cash session with the counted opening balance. If you already have an
  open session it is resumed instead.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.balance, "balance", "", "Cash counted in the drawer at opening")
}

func (c *openCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := parseAmount("balance", c.balance)
	if err != nil {
		fmt.Fprintln(c.env.Err, err)
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		session, resumed, err := a.tracker.Open(ctx, balance)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		if resumed {
			fmt.Fprintln(a.out, "You already have an open session; resuming it.")
		}
		printMarkdown(a.out, sessionMarkdown(session, nil, a.settings.Currency))
		return nil
	})
}

// statusCmd shows the active session with its running totals.
type statusCmd struct {
	env *Env
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the open session and its expected balance" }
func (*statusCmd) Usage() string {
	return `cashier status
`
}
func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		active := a.tracker.Active()
		if active == nil {
			fmt.Fprintln(a.out, "No open session. Use `cashier open` to start one.")
			return nil
		}
		summary, err := a.client.GetSummary(ctx, active.SessionID)
		if err != nil {
			return fmt.Errorf("summarize session: %w", err)
		}
		printMarkdown(a.out, sessionMarkdown(active, summary, a.settings.Currency))
		return nil
	})
}

// entryCmd records income or expense, depending on kind.
type entryCmd struct {
	env            *Env
	kind           domain.EntryKind
	amount         string
	description    string
	classification string
	justification  string
}

func (c *entryCmd) Name() string { return strings.ToLower(string(c.kind)) }
func (c *entryCmd) Synopsis() string {
	if c.kind == domain.EntryIncome {
		return "record money received, e.g. a haircut"
	}
	return "record money taken out of the drawer"
}
func (c *entryCmd) Usage() string {
	return fmt.Sprintf(`cashier %s -amount <amount> -d <description> [-class <classification>] [-why <justification>]
`, c.Name())
}

func (c *entryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount of the entry")
	f.StringVar(&c.description, "d", "", "What the entry is for")
	if c.kind == domain.EntryIncome {
		f.StringVar(&c.classification, "class", "", "Payment method: CASH, CARD or TRANSFER (default CASH)")
	} else {
		f.StringVar(&c.classification, "class", "", "Category: SUPPLIES, UTILITIES, PAYROLL, MAINTENANCE or OTHER (default OTHER)")
	}
	f.StringVar(&c.justification, "why", "", "Optional justification")
}

func (c *entryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		fmt.Fprintln(c.env.Err, err)
		return subcommands.ExitUsageError
	}
	if strings.TrimSpace(c.description) == "" {
		fmt.Fprintln(c.env.Err, "-d is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		entry, err := a.tracker.AddEntry(ctx, dto.AddEntryRequest{
			Kind:           c.kind,
			Amount:         &amount,
			Description:    c.description,
			Classification: strings.ToUpper(c.classification),
			Justification:  optional(c.justification),
		})
		if errors.Is(err, sessioncache.ErrNoActiveSession) {
			return errors.New("no open session: use `cashier open` first")
		}
		if err != nil {
			return fmt.Errorf("record %s: %w", c.Name(), err)
		}
		fmt.Fprintf(a.out, "Recorded %s %s (%s), entry %s\n",
			strings.ToLower(string(entry.Kind)), utils.FormatMoney(entry.Amount, a.settings.Currency), entry.Classification, entry.EntryID)
		return nil
	})
}

// entriesCmd lists the entries of the open session.
type entriesCmd struct {
	env  *Env
	kind string
}

func (*entriesCmd) Name() string     { return "entries" }
func (*entriesCmd) Synopsis() string { return "list the entries of the open session" }
func (*entriesCmd) Usage() string {
	return `cashier entries [-kind INCOME|EXPENSE]
`
}

func (c *entriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Only show INCOME or EXPENSE entries")
}

func (c *entriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var kind *domain.EntryKind
	if c.kind != "" {
		k := domain.EntryKind(strings.ToUpper(c.kind))
		if !k.IsValid() {
			fmt.Fprintf(c.env.Err, "invalid -kind %q\n", c.kind)
			return subcommands.ExitUsageError
		}
		kind = &k
	}
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		active := a.tracker.Active()
		if active == nil {
			return errors.New("no open session")
		}
		list, err := a.client.ListEntries(ctx, active.SessionID, kind)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		printMarkdown(a.out, entriesMarkdown(list, kind, a.settings.Currency))
		return nil
	})
}

// voidCmd deletes a mistaken entry from the open session.
type voidCmd struct {
	env     *Env
	entryID string
}

func (*voidCmd) Name() string     { return "void" }
func (*voidCmd) Synopsis() string { return "delete an entry recorded by mistake" }
func (*voidCmd) Usage() string {
	return `cashier void -entry <entryID>
`
}

func (c *voidCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entryID, "entry", "", "ID of the entry to delete")
}

func (c *voidCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.entryID == "" {
		fmt.Fprintln(c.env.Err, "-entry is required")
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.client.DeleteEntry(ctx, c.entryID); err != nil {
			return fmt.Errorf("delete entry %s: %w", c.entryID, err)
		}
		fmt.Fprintf(a.out, "Entry %s deleted\n", c.entryID)
		return nil
	})
}

// closeCmd reconciles and closes the open session.
type closeCmd struct {
	env     *Env
	balance string
	note    string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "count the drawer and close the open session" }
func (*closeCmd) Usage() string {
	return `cashier close -balance <amount> [-note <text>]

  Closes the open session. A discrepancy against the expected balance does not
  block the close; it is reported so it can be reviewed.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.balance, "balance", "", "Cash counted in the drawer at closing")
	f.StringVar(&c.note, "note", "", "Optional observation")
}

func (c *closeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := parseAmount("balance", c.balance)
	if err != nil {
		fmt.Fprintln(c.env.Err, err)
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		result, err := a.tracker.Close(ctx, balance, optional(c.note))
		if errors.Is(err, sessioncache.ErrNoActiveSession) {
			return errors.New("no open session to close")
		}
		if err != nil {
			return fmt.Errorf("close session: %w", err)
		}
		printMarkdown(a.out, closeMarkdown(result, a.settings.Currency))
		return nil
	})
}

// historyCmd lists past sessions, newest first.
type historyCmd struct {
	env      *Env
	employee string
	limit    int
	next     string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list past sessions, newest first" }
func (*historyCmd) Usage() string {
	return `cashier history [-employee <id>] [-limit <n>] [-next <token>]

  Cashiers only see their own sessions; administrators may pass -employee.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.employee, "employee", "", "Employee to list (administrators only)")
	f.IntVar(&c.limit, "limit", 20, "Sessions per page (max 100)")
	f.StringVar(&c.next, "next", "", "Page token from a previous listing")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		list, err := a.client.ListSessions(ctx, dto.ListSessionsParams{
			EmployeeID: optional(c.employee),
			Limit:      c.limit,
			NextToken:  optional(c.next),
		})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		printMarkdown(a.out, historyMarkdown(list, a.settings.Currency))
		return nil
	})
}

// watchCmd keeps the open session on screen until it closes or the user interrupts.
type watchCmd struct {
	env *Env
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow the open session until it is closed" }
func (*watchCmd) Usage() string {
	return `cashier watch

  Polls the ledger and exits when the session is closed, from this terminal or elsewhere.
`
}
func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(ctx context.Context, a *app) error {
		if err := a.resume(ctx); err != nil {
			return err
		}
		active := a.tracker.Active()
		if active == nil {
			return errors.New("no open session to watch")
		}
		fmt.Fprintf(a.out, "Watching session %s (every %s). Press Ctrl+C to stop.\n", active.SessionID, a.settings.PollInterval)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		seen := len(a.tracker.Entries())
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if a.tracker.Active() == nil {
					return nil
				}
				entries := a.tracker.Entries()
				for _, e := range entries[min(seen, len(entries)):] {
					fmt.Fprintf(a.out, "+ %s %s %s\n", e.Kind, utils.FormatMoney(e.Amount, a.settings.Currency), e.Description)
				}
				seen = len(entries)
			}
		}
	})
}
