package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portsrepo "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/platform/config"
	"github.com/SscSPs/barbershop_cashdrawer/internal/repositories/memory"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{EmployeeID: "emp-boss", Role: domain.RoleAdmin}

func newLedger(t *testing.T, employeeIDs ...string) (*portssvc.ServiceContainer, portsrepo.RepositoryProvider) {
	t.Helper()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	now := time.Now().UTC()
	for _, id := range employeeIDs {
		require.NoError(t, repos.EmployeeRepo.SaveEmployee(context.Background(), domain.Employee{
			EmployeeID:  id,
			Name:        id,
			Role:        domain.RoleCashier,
			IsActive:    true,
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"},
		}))
	}
	cfg := &config.Config{ReconciliationTolerance: decimal.NewFromInt(1000), CurrencyCode: "COP"}
	return services.NewServiceContainer(cfg, repos, nil), repos
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestShiftEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(t, "emp-ana")
	cashier := domain.Actor{EmployeeID: "emp-ana", Role: domain.RoleCashier}

	session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(100000)}, cashier)
	require.NoError(t, err)

	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: amount(50000), Description: "Fade and shave"}, cashier)
	require.NoError(t, err)
	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryExpense, Amount: amount(20000), Description: "Clipper oil"}, cashier)
	require.NoError(t, err)

	result, err := svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(130000)}, cashier)
	require.NoError(t, err)
	assert.True(t, result.Summary.ExpectedBalance.Equal(decimal.NewFromInt(130000)))
	assert.True(t, result.Summary.Discrepancy.IsZero())
	assert.Equal(t, domain.ReconciliationExact, result.Summary.Classification)
	assert.Equal(t, domain.DefaultCloseNote, *result.Session.Note)

	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: amount(1), Description: "Tip"}, cashier)
	assert.ErrorIs(t, err, apperrors.ErrSessionClosed)

	_, err = svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(130000)}, cashier)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyClosed)

	open, err := svc.Session.GetOpenSessionForEmployee(ctx, "emp-ana", cashier)
	require.NoError(t, err)
	assert.Nil(t, open)

	next, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(130000)}, cashier)
	require.NoError(t, err)
	assert.NotEqual(t, session.SessionID, next.SessionID)
}

func TestDeletedEntryLeavesTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(t, "emp-ana")
	cashier := domain.Actor{EmployeeID: "emp-ana", Role: domain.RoleCashier}

	session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(100000)}, cashier)
	require.NoError(t, err)
	haircut, err := svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: amount(50000), Description: "Haircut"}, cashier)
	require.NoError(t, err)
	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: amount(15000), Description: "Beard trim"}, cashier)
	require.NoError(t, err)
	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryExpense, Amount: amount(20000), Description: "Clipper oil"}, cashier)
	require.NoError(t, err)

	before, err := svc.Session.GetSessionSummary(ctx, session.SessionID, cashier)
	require.NoError(t, err)
	assert.True(t, before.ExpectedBalance.Equal(decimal.NewFromInt(145000)))
	assert.Equal(t, 3, before.EntryCount)

	require.NoError(t, svc.Entry.DeleteEntry(ctx, haircut.EntryID, cashier))
	assert.ErrorIs(t, svc.Entry.DeleteEntry(ctx, haircut.EntryID, cashier), apperrors.ErrNotFound)

	after, err := svc.Session.GetSessionSummary(ctx, session.SessionID, cashier)
	require.NoError(t, err)
	assert.True(t, after.TotalIncome.Equal(decimal.NewFromInt(15000)))
	assert.True(t, after.ExpectedBalance.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, 1, after.IncomeCount)
	assert.Equal(t, 2, after.EntryCount)

	list, err := svc.Entry.ListEntries(ctx, session.SessionID, nil, cashier)
	require.NoError(t, err)
	assert.Len(t, list.Entries, 2)
	assert.True(t, list.Total.Equal(decimal.NewFromInt(-5000)))

	result, err := svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(95000)}, cashier)
	require.NoError(t, err)
	assert.True(t, result.Summary.ExpectedBalance.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, 2, result.Summary.EntryCount)
	assert.True(t, result.Summary.Discrepancy.IsZero())
	assert.Equal(t, domain.ReconciliationExact, result.Summary.Classification)
	assert.Nil(t, result.Warning)
}

func TestConcurrentOpenYieldsExactlyOneSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(t, "emp-ana")

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(5000)}, admin)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var opened, conflicts int
	var sessionIDs []string
	for err := range results {
		var openErr *apperrors.AlreadyOpenError
		switch {
		case err == nil:
			opened++
		case errors.As(err, &openErr):
			conflicts++
			sessionIDs = append(sessionIDs, openErr.SessionID)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, opened)
	assert.Equal(t, attempts-1, conflicts)

	open, err := svc.Session.GetOpenSessionForEmployee(ctx, "emp-ana", admin)
	require.NoError(t, err)
	require.NotNil(t, open)
	for _, id := range sessionIDs {
		assert.Equal(t, open.SessionID, id)
	}
}

func TestConcurrentAddAndCloseNeverLosesEntries(t *testing.T) {
	ctx := context.Background()
	svc, repos := newLedger(t, "emp-ana")

	session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(0)}, admin)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	var closeResult *domain.CloseResult
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: amount(100), Description: "Cut"}, admin)
			if err != nil {
				assert.ErrorIs(t, err, apperrors.ErrSessionClosed)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(0)}, admin)
		assert.NoError(t, err)
		closeResult = res
	}()
	wg.Wait()

	require.NotNil(t, closeResult)
	stored, err := repos.EntryRepo.ListEntriesBySession(ctx, session.SessionID, nil)
	require.NoError(t, err)
	// Every entry that made it in was seen by the close.
	assert.Equal(t, len(stored), closeResult.Summary.EntryCount)
	assert.True(t, closeResult.Summary.ExpectedBalance.Equal(decimal.NewFromInt(int64(100*len(stored)))))
}

func TestRandomShiftBalancesAreConserved(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(42)
	svc, _ := newLedger(t, "emp-ana")
	cashier := domain.Actor{EmployeeID: "emp-ana", Role: domain.RoleCashier}

	for shift := 0; shift < 10; shift++ {
		opening := int64(faker.IntRange(0, 200000))
		session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: "emp-ana", OpeningBalance: amount(opening)}, cashier)
		require.NoError(t, err)

		expected := opening
		for i, n := 0, faker.IntRange(0, 25); i < n; i++ {
			value := int64(faker.IntRange(1, 80000))
			kind := domain.EntryIncome
			if faker.Bool() {
				kind = domain.EntryExpense
				expected -= value
			} else {
				expected += value
			}
			_, err := svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: kind, Amount: amount(value), Description: faker.Company()}, cashier)
			require.NoError(t, err)
		}

		reported := expected + int64(faker.IntRange(-3000, 3000))
		result, err := svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(reported)}, cashier)
		if reported < 0 {
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			_, err = svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(0)}, cashier)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, err)

		assert.True(t, result.Summary.ExpectedBalance.Equal(decimal.NewFromInt(expected)), "shift %d", shift)
		assert.True(t, result.Summary.Discrepancy.Equal(decimal.NewFromInt(reported-expected)), "shift %d", shift)
		assert.Equal(t, result.Summary.Classification == domain.ReconciliationRequiresReview, result.Warning != nil)
	}
}

func TestRollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	_, repos := newLedger(t)

	tx, err := repos.SessionRepo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.SessionRepo.SaveSessionInTx(ctx, tx, domain.CashSession{
		SessionID:      "sess-1",
		EmployeeID:     "emp-ana",
		OpenedAt:       time.Now(),
		OpeningBalance: decimal.NewFromInt(10),
	}))
	require.NoError(t, repos.EntryRepo.SaveEntryInTx(ctx, tx, domain.LedgerEntry{
		EntryID: "e1", SessionID: "sess-1", Kind: domain.EntryIncome, Amount: decimal.NewFromInt(5), Description: "x",
	}))
	require.NoError(t, repos.SessionRepo.Rollback(ctx, tx))

	_, err = repos.SessionRepo.FindSessionByID(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repos.EntryRepo.FindEntryByID(ctx, "e1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Rolling back twice is a no-op and the store accepts new transactions.
	assert.NoError(t, repos.SessionRepo.Rollback(ctx, tx))
	tx2, err := repos.SessionRepo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.SessionRepo.Commit(ctx, tx2))
}

func TestListSessionsPagination(t *testing.T) {
	ctx := context.Background()
	svc, repos := newLedger(t, "emp-ana", "emp-luis")

	for _, employee := range []string{"emp-ana", "emp-luis", "emp-ana"} {
		s, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: employee, OpeningBalance: amount(1)}, admin)
		require.NoError(t, err)
		_, err = svc.Session.CloseSession(ctx, s.SessionID, dto.CloseSessionRequest{ClosingBalance: amount(1)}, admin)
		require.NoError(t, err)
	}

	all, next, err := repos.SessionRepo.ListSessions(ctx, nil, 2, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, next)

	rest, next, err := repos.SessionRepo.ListSessions(ctx, nil, 2, next)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
	assert.Nil(t, next)

	ana := "emp-ana"
	mine, _, err := repos.SessionRepo.ListSessions(ctx, &ana, 10, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	bad := "not-a-token"
	_, _, err = repos.SessionRepo.ListSessions(ctx, nil, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
