//go:build integration

package pgsql_test

import (
	"context"
	"errors"
	"log/slog"
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
	"github.com/SscSPs/barbershop_cashdrawer/internal/repositories/database/pgsql"
	"github.com/SscSPs/barbershop_cashdrawer/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgsqlRepositoryTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	admin     domain.Actor
}

func TestPgsqlRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositoryTestSuite))
}

func (suite *PgsqlRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cashdrawer"),
		tcpostgres.WithUsername("cashdrawer"),
		tcpostgres.WithPassword("cashdrawer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.Require().NoError(database.RunMigrations(dsn, "file://../../../../migrations", slog.Default()))

	suite.pool, err = database.NewPgxPool(ctx, dsn, true)
	suite.Require().NoError(err)
	suite.repos = pgsql.NewRepositoryProvider(suite.pool)
	suite.admin = domain.Actor{EmployeeID: "emp-boss", Role: domain.RoleAdmin}
}

func (suite *PgsqlRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(suite.pool)
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *PgsqlRepositoryTestSuite) newEmployee() string {
	id := "emp-" + uuid.NewString()[:8]
	now := time.Now().UTC()
	suite.Require().NoError(suite.repos.EmployeeRepo.SaveEmployee(context.Background(), domain.Employee{
		EmployeeID:  id,
		Name:        "Barber " + id,
		Role:        domain.RoleCashier,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"},
	}))
	return id
}

func (suite *PgsqlRepositoryTestSuite) newServices() *portssvc.ServiceContainer {
	cfg := &config.Config{ReconciliationTolerance: decimal.NewFromInt(1000), CurrencyCode: "COP"}
	return services.NewServiceContainer(cfg, suite.repos, nil)
}

func (suite *PgsqlRepositoryTestSuite) TestFullShift() {
	ctx := context.Background()
	svc := suite.newServices()
	employeeID := suite.newEmployee()
	opening := decimal.NewFromInt(100000)

	session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: employeeID, OpeningBalance: &opening}, suite.admin)
	suite.Require().NoError(err)

	income := decimal.NewFromInt(50000)
	expense := decimal.NewFromInt(20000)
	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: &income, Description: "Haircut"}, suite.admin)
	suite.Require().NoError(err)
	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryExpense, Amount: &expense, Description: "Towels"}, suite.admin)
	suite.Require().NoError(err)

	reported := decimal.NewFromInt(130000)
	result, err := svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: &reported}, suite.admin)
	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationExact, result.Summary.Classification)

	stored, err := suite.repos.SessionRepo.FindSessionByID(ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.ClosedAt)
	suite.True(stored.ClosingBalance.Equal(reported))
	suite.Equal(domain.DefaultCloseNote, *stored.Note)

	_, err = svc.Entry.AddEntry(ctx, session.SessionID, dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: &income, Description: "Late"}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrSessionClosed)

	_, err = svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: &reported}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
}

func (suite *PgsqlRepositoryTestSuite) TestConcurrentOpenYieldsOneSession() {
	ctx := context.Background()
	svc := suite.newServices()
	employeeID := suite.newEmployee()
	opening := decimal.NewFromInt(1000)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: employeeID, OpeningBalance: &opening}, suite.admin)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrAlreadyOpen):
			conflicts++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(attempts-1, conflicts)
}

func (suite *PgsqlRepositoryTestSuite) TestListSessionsPaginates() {
	ctx := context.Background()
	svc := suite.newServices()
	employeeID := suite.newEmployee()
	balance := decimal.NewFromInt(10)

	for i := 0; i < 3; i++ {
		session, err := svc.Session.OpenSession(ctx, dto.OpenSessionRequest{EmployeeID: employeeID, OpeningBalance: &balance}, suite.admin)
		suite.Require().NoError(err)
		_, err = svc.Session.CloseSession(ctx, session.SessionID, dto.CloseSessionRequest{ClosingBalance: &balance}, suite.admin)
		suite.Require().NoError(err)
	}

	first, next, err := suite.repos.SessionRepo.ListSessions(ctx, &employeeID, 2, nil)
	suite.Require().NoError(err)
	suite.Len(first, 2)
	suite.Require().NotNil(next)
	suite.True(!first[0].OpenedAt.Before(first[1].OpenedAt))

	second, next, err := suite.repos.SessionRepo.ListSessions(ctx, &employeeID, 2, next)
	suite.Require().NoError(err)
	suite.Len(second, 1)
	suite.Nil(next)
	suite.NotEqual(first[1].SessionID, second[0].SessionID)
}

func (suite *PgsqlRepositoryTestSuite) TestFindOpenSessionNotFound() {
	_, err := suite.repos.SessionRepo.FindOpenSessionByEmployee(context.Background(), suite.newEmployee())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PgsqlRepositoryTestSuite) TestMalformedIDsAreNotFound() {
	ctx := context.Background()
	svc := suite.newServices()
	amount := decimal.NewFromInt(10)
	description := "Fixed"

	_, err := svc.Session.GetSessionByID(ctx, "abc", suite.admin)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = svc.Session.CloseSession(ctx, "abc", dto.CloseSessionRequest{ClosingBalance: &amount}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = svc.Entry.AddEntry(ctx, "abc", dto.AddEntryRequest{Kind: domain.EntryIncome, Amount: &amount, Description: "Cut"}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = svc.Entry.UpdateEntry(ctx, "abc", dto.UpdateEntryRequest{Description: &description}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(svc.Entry.DeleteEntry(ctx, "abc", suite.admin), apperrors.ErrNotFound)
}
