package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CashSessionServiceTestSuite struct {
	suite.Suite
	sessionRepo  *MockCashSessionRepository
	entryRepo    *MockLedgerEntryRepository
	employeeRepo *MockEmployeeRepository
	metrics      *MockLedgerMetrics
	service      portssvc.CashSessionSvcFacade
	fixedNow     time.Time
	cashier      domain.Actor
	admin        domain.Actor
}

func (suite *CashSessionServiceTestSuite) SetupTest() {
	suite.sessionRepo = new(MockCashSessionRepository)
	suite.entryRepo = new(MockLedgerEntryRepository)
	suite.employeeRepo = new(MockEmployeeRepository)
	suite.metrics = new(MockLedgerMetrics)
	suite.fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	suite.cashier = domain.Actor{EmployeeID: "emp-ana", Role: domain.RoleCashier}
	suite.admin = domain.Actor{EmployeeID: "emp-boss", Role: domain.RoleAdmin}

	engine := services.NewReconciliationService(domain.ReconciliationPolicy{
		Tolerance:    decimal.NewFromInt(1000),
		CurrencyCode: "COP",
	})
	suite.service = services.NewCashSessionService(
		suite.sessionRepo,
		suite.entryRepo,
		services.NewEmployeeService(suite.employeeRepo),
		engine,
		services.WithSessionMetrics(suite.metrics),
		services.WithSessionClock(func() time.Time { return suite.fixedNow }),
	)

	suite.sessionRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestCashSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashSessionServiceTestSuite))
}

func (suite *CashSessionServiceTestSuite) activeEmployee(id string) {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, id).
		Return(&domain.Employee{EmployeeID: id, Name: "Ana", Role: domain.RoleCashier, IsActive: true}, nil).Once()
}

func (suite *CashSessionServiceTestSuite) openSession(id string) *domain.CashSession {
	return &domain.CashSession{
		SessionID:      id,
		EmployeeID:     suite.cashier.EmployeeID,
		OpenedAt:       suite.fixedNow.Add(-8 * time.Hour),
		OpeningBalance: decimal.NewFromInt(100000),
	}
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_Success() {
	ctx := context.Background()
	opening := decimal.NewFromInt(100000)
	req := dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &opening}

	suite.activeEmployee(suite.cashier.EmployeeID)
	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("LockEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).Return(nil).Once()
	suite.sessionRepo.On("FindOpenSessionByEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.sessionRepo.On("SaveSessionInTx", ctx, mock.Anything, mock.MatchedBy(func(s domain.CashSession) bool {
		return s.EmployeeID == suite.cashier.EmployeeID && s.OpeningBalance.Equal(opening) && s.ClosedAt == nil
	})).Return(nil).Once()
	suite.sessionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.metrics.On("SessionOpened").Once()

	session, err := suite.service.OpenSession(ctx, req, suite.cashier)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.NotEmpty(session.SessionID)
	suite.True(session.IsOpen())
	suite.Equal(suite.fixedNow, session.OpenedAt)
	suite.Equal(suite.cashier.EmployeeID, session.CreatedBy)
	suite.sessionRepo.AssertExpectations(suite.T())
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_AlreadyOpen() {
	ctx := context.Background()
	opening := decimal.NewFromInt(50000)
	req := dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &opening}

	suite.activeEmployee(suite.cashier.EmployeeID)
	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("LockEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).Return(nil).Once()
	suite.sessionRepo.On("FindOpenSessionByEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).
		Return(suite.openSession("sess-existing"), nil).Once()
	suite.metrics.On("OpenConflict").Once()

	session, err := suite.service.OpenSession(ctx, req, suite.cashier)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrAlreadyOpen)
	var openErr *apperrors.AlreadyOpenError
	suite.Require().True(errors.As(err, &openErr))
	suite.Equal("sess-existing", openErr.SessionID)
	suite.sessionRepo.AssertNotCalled(suite.T(), "SaveSessionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.sessionRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_UniqueViolationOnSave() {
	ctx := context.Background()
	opening := decimal.Zero
	req := dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &opening}

	suite.activeEmployee(suite.cashier.EmployeeID)
	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("LockEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).Return(nil).Once()
	suite.sessionRepo.On("FindOpenSessionByEmployeeInTx", ctx, mock.Anything, suite.cashier.EmployeeID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.sessionRepo.On("SaveSessionInTx", ctx, mock.Anything, mock.AnythingOfType("domain.CashSession")).
		Return(apperrors.NewAlreadyOpenError(suite.cashier.EmployeeID, "")).Once()
	suite.metrics.On("OpenConflict").Once()

	_, err := suite.service.OpenSession(ctx, req, suite.cashier)

	suite.ErrorIs(err, apperrors.ErrAlreadyOpen)
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_Validation() {
	ctx := context.Background()
	negative := decimal.NewFromInt(-1)
	fivePlaces := decimal.RequireFromString("100.00001")
	huge := decimal.New(1, 15)

	testCases := []struct {
		name string
		req  dto.OpenSessionRequest
	}{
		{name: "balance with five decimal places", req: dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &fivePlaces}},
		{name: "balance too large", req: dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &huge}},
		{name: "missing employee", req: dto.OpenSessionRequest{OpeningBalance: &negative}},
		{name: "missing balance", req: dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID}},
		{name: "negative balance", req: dto.OpenSessionRequest{EmployeeID: suite.cashier.EmployeeID, OpeningBalance: &negative}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			session, err := suite.service.OpenSession(ctx, tc.req, suite.cashier)
			suite.Nil(session)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.sessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_CashierForOtherEmployee() {
	ctx := context.Background()
	opening := decimal.NewFromInt(10)
	req := dto.OpenSessionRequest{EmployeeID: "emp-other", OpeningBalance: &opening}

	_, err := suite.service.OpenSession(ctx, req, suite.cashier)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.employeeRepo.AssertNotCalled(suite.T(), "FindEmployeeByID", mock.Anything, mock.Anything)
}

func (suite *CashSessionServiceTestSuite) TestOpenSession_InactiveEmployee() {
	ctx := context.Background()
	opening := decimal.NewFromInt(10)
	req := dto.OpenSessionRequest{EmployeeID: "emp-gone", OpeningBalance: &opening}

	suite.employeeRepo.On("FindEmployeeByID", ctx, "emp-gone").
		Return(&domain.Employee{EmployeeID: "emp-gone", IsActive: false}, nil).Once()

	_, err := suite.service.OpenSession(ctx, req, suite.admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.sessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_ExactMatch() {
	ctx := context.Background()
	session := suite.openSession("sess-1")
	entries := []domain.LedgerEntry{
		{EntryID: "e1", SessionID: "sess-1", Kind: domain.EntryIncome, Amount: decimal.NewFromInt(50000)},
		{EntryID: "e2", SessionID: "sess-1", Kind: domain.EntryExpense, Amount: decimal.NewFromInt(20000)},
	}
	reported := decimal.NewFromInt(130000)

	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("FindSessionByIDForUpdate", ctx, mock.Anything, "sess-1").Return(session, nil).Once()
	suite.entryRepo.On("ListEntriesBySessionInTx", ctx, mock.Anything, "sess-1").Return(entries, nil).Once()
	suite.sessionRepo.On("CloseSessionInTx", ctx, mock.Anything, mock.MatchedBy(func(s domain.CashSession) bool {
		return s.ClosedAt != nil && s.ClosingBalance.Equal(reported) && *s.Note == domain.DefaultCloseNote
	})).Return(nil).Once()
	suite.sessionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.metrics.On("SessionClosed", domain.ReconciliationExact).Once()

	result, err := suite.service.CloseSession(ctx, "sess-1", dto.CloseSessionRequest{ClosingBalance: &reported}, suite.cashier)

	suite.Require().NoError(err)
	suite.True(result.Summary.ExpectedBalance.Equal(decimal.NewFromInt(130000)))
	suite.True(result.Summary.Discrepancy.IsZero())
	suite.Equal(domain.ReconciliationExact, result.Summary.Classification)
	suite.Nil(result.Warning)
	suite.False(result.Session.IsOpen())
	suite.Equal(suite.fixedNow, *result.Session.ClosedAt)
	suite.Len(result.Session.Entries, 2)
	suite.sessionRepo.AssertExpectations(suite.T())
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_LargeDiscrepancyStillCloses() {
	ctx := context.Background()
	session := suite.openSession("sess-2")
	reported := decimal.NewFromInt(95000)
	note := "  short after lunch  "

	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("FindSessionByIDForUpdate", ctx, mock.Anything, "sess-2").Return(session, nil).Once()
	suite.entryRepo.On("ListEntriesBySessionInTx", ctx, mock.Anything, "sess-2").Return([]domain.LedgerEntry{}, nil).Once()
	suite.sessionRepo.On("CloseSessionInTx", ctx, mock.Anything, mock.MatchedBy(func(s domain.CashSession) bool {
		return *s.Note == "short after lunch" && *s.ReconciliationStatus == domain.ReconciliationRequiresReview
	})).Return(nil).Once()
	suite.sessionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.metrics.On("SessionClosed", domain.ReconciliationRequiresReview).Once()

	result, err := suite.service.CloseSession(ctx, "sess-2", dto.CloseSessionRequest{ClosingBalance: &reported, Note: &note}, suite.cashier)

	suite.Require().NoError(err)
	suite.True(result.Summary.Discrepancy.Equal(decimal.NewFromInt(-5000)))
	suite.Require().NotNil(result.Warning)
	suite.Contains(*result.Warning, "significant difference")
	suite.sessionRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_AlreadyClosed() {
	ctx := context.Background()
	session := suite.openSession("sess-3")
	closedAt := suite.fixedNow.Add(-time.Hour)
	closing := decimal.NewFromInt(100000)
	session.ClosedAt = &closedAt
	session.ClosingBalance = &closing

	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("FindSessionByIDForUpdate", ctx, mock.Anything, "sess-3").Return(session, nil).Once()

	_, err := suite.service.CloseSession(ctx, "sess-3", dto.CloseSessionRequest{ClosingBalance: &closing}, suite.cashier)

	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.sessionRepo.AssertNotCalled(suite.T(), "CloseSessionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.sessionRepo.AssertCalled(suite.T(), "Rollback", ctx, mock.Anything)
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_BalanceValidation() {
	ctx := context.Background()
	testCases := []struct {
		name    string
		balance decimal.Decimal
	}{
		{name: "negative", balance: decimal.NewFromInt(-1)},
		{name: "five decimal places", balance: decimal.RequireFromString("0.00005")},
		{name: "too large", balance: decimal.New(5, 15)},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			balance := tc.balance
			result, err := suite.service.CloseSession(ctx, "sess-1", dto.CloseSessionRequest{ClosingBalance: &balance}, suite.cashier)
			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.sessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_NotFound() {
	ctx := context.Background()
	closing := decimal.NewFromInt(1)

	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("FindSessionByIDForUpdate", ctx, mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CloseSession(ctx, "missing", dto.CloseSessionRequest{ClosingBalance: &closing}, suite.cashier)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CashSessionServiceTestSuite) TestCloseSession_OtherCashierForbidden() {
	ctx := context.Background()
	session := suite.openSession("sess-4")
	closing := decimal.NewFromInt(1)
	intruder := domain.Actor{EmployeeID: "emp-luis", Role: domain.RoleCashier}

	suite.sessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.sessionRepo.On("FindSessionByIDForUpdate", ctx, mock.Anything, "sess-4").Return(session, nil).Once()

	_, err := suite.service.CloseSession(ctx, "sess-4", dto.CloseSessionRequest{ClosingBalance: &closing}, intruder)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashSessionServiceTestSuite) TestGetOpenSessionForEmployee_None() {
	ctx := context.Background()
	suite.sessionRepo.On("FindOpenSessionByEmployee", ctx, suite.cashier.EmployeeID).
		Return(nil, apperrors.ErrNotFound).Once()

	session, err := suite.service.GetOpenSessionForEmployee(ctx, suite.cashier.EmployeeID, suite.cashier)

	suite.NoError(err)
	suite.Nil(session)
}

func (suite *CashSessionServiceTestSuite) TestListSessionHistory_CashierForcedToSelf() {
	ctx := context.Background()
	self := suite.cashier.EmployeeID
	sessions := []domain.CashSession{*suite.openSession("sess-5")}

	suite.sessionRepo.On("ListSessions", ctx, &self, 20, (*string)(nil)).Return(sessions, "next-page", nil).Once()

	result, next, err := suite.service.ListSessionHistory(ctx, suite.cashier, dto.ListSessionsParams{})

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Require().NotNil(next)
	suite.Equal("next-page", *next)
}

func (suite *CashSessionServiceTestSuite) TestListSessionHistory_CashierAskingForOthers() {
	other := "emp-luis"

	_, _, err := suite.service.ListSessionHistory(context.Background(), suite.cashier, dto.ListSessionsParams{EmployeeID: &other})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashSessionServiceTestSuite) TestListSessionHistory_CashierBlankFilterMeansSelf() {
	ctx := context.Background()
	self := suite.cashier.EmployeeID
	blank := "  "

	suite.sessionRepo.On("ListSessions", ctx, &self, 20, (*string)(nil)).Return([]domain.CashSession{}, nil, nil).Once()

	result, next, err := suite.service.ListSessionHistory(ctx, suite.cashier, dto.ListSessionsParams{EmployeeID: &blank})

	suite.Require().NoError(err)
	suite.Empty(result)
	suite.Nil(next)
	suite.sessionRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestListSessionHistory_AdminBlankFilterListsAll() {
	ctx := context.Background()
	empty := ""
	suite.sessionRepo.On("ListSessions", ctx, (*string)(nil), 20, (*string)(nil)).Return([]domain.CashSession{}, nil, nil).Once()

	_, _, err := suite.service.ListSessionHistory(ctx, suite.admin, dto.ListSessionsParams{EmployeeID: &empty})

	suite.Require().NoError(err)
	suite.sessionRepo.AssertExpectations(suite.T())
}

func (suite *CashSessionServiceTestSuite) TestListSessionHistory_AdminClampsLimit() {
	ctx := context.Background()
	suite.sessionRepo.On("ListSessions", ctx, (*string)(nil), 100, (*string)(nil)).Return([]domain.CashSession{}, nil, nil).Once()

	result, next, err := suite.service.ListSessionHistory(ctx, suite.admin, dto.ListSessionsParams{Limit: 5000})

	suite.NoError(err)
	suite.Empty(result)
	suite.Nil(next)
}

func (suite *CashSessionServiceTestSuite) TestGetSessionSummary_OpenSession() {
	ctx := context.Background()
	session := suite.openSession("sess-6")
	entries := []domain.LedgerEntry{
		{EntryID: "e1", Kind: domain.EntryIncome, Amount: decimal.NewFromInt(30000)},
		{EntryID: "e2", Kind: domain.EntryIncome, Amount: decimal.NewFromInt(20000)},
		{EntryID: "e3", Kind: domain.EntryExpense, Amount: decimal.NewFromInt(5000)},
	}
	suite.sessionRepo.On("FindSessionByID", ctx, "sess-6").Return(session, nil).Once()
	suite.entryRepo.On("ListEntriesBySession", ctx, "sess-6", (*domain.EntryKind)(nil)).Return(entries, nil).Once()

	summary, err := suite.service.GetSessionSummary(ctx, "sess-6", suite.cashier)

	suite.Require().NoError(err)
	suite.True(summary.ExpectedBalance.Equal(decimal.NewFromInt(145000)))
	suite.Equal(2, summary.IncomeCount)
	suite.Equal(1, summary.ExpenseCount)
	suite.Equal(domain.ReconciliationStatus(""), summary.Classification)
}
