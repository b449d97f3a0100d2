package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/barbershop_cashdrawer/internal/core/ports/services"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashSessionHandler handles HTTP requests for cash sessions and their entries.
type cashSessionHandler struct {
	sessionService portssvc.CashSessionSvcFacade
	entryService   portssvc.LedgerEntrySvcFacade
}

func newCashSessionHandler(sessionService portssvc.CashSessionSvcFacade, entryService portssvc.LedgerEntrySvcFacade) *cashSessionHandler {
	return &cashSessionHandler{
		sessionService: sessionService,
		entryService:   entryService,
	}
}

// RegisterCashSessionRoutes registers the session registry routes. The mutating
// handlers (typically a rate limiter) run before every write route.
func RegisterCashSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.CashSessionSvcFacade, entryService portssvc.LedgerEntrySvcFacade, mutating ...gin.HandlerFunc) {
	h := newCashSessionHandler(sessionService, entryService)
	entries := newLedgerEntryHandler(entryService)

	sessions := rg.Group("/cash-sessions")
	{
		sessions.POST("", chain(mutating, h.openSession)...)
		sessions.GET("", h.listSessions)
		sessions.GET("/open", h.getOpenSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.GET("/:sessionID/summary", h.getSessionSummary)
		sessions.POST("/:sessionID/close", chain(mutating, h.closeSession)...)
		sessions.GET("/:sessionID/entries", entries.listEntries)
		sessions.POST("/:sessionID/entries", chain(mutating, entries.addEntry)...)
	}
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens a new cash session for an employee. Cashiers may only open their own; employeeID defaults to the caller.
// @Tags cash-sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Opening balance and employee"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or inactive employee"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Failure 409 {object} dto.ErrorResponse "Employee already has an open session"
// @Failure 500 {object} dto.ErrorResponse "Failed to open session"
// @Security BearerAuth
// @Router /cash-sessions [post]
func (h *cashSessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "OpenSession", err)
		return
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		req.EmployeeID = actor.EmployeeID
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to open session")
		return
	}

	logger.Info("Cash session opened via API", slog.String("session_id", session.SessionID), slog.String("employee_id", session.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToCashSessionResponse(session))
}

// getOpenSession godoc
// @Summary Get the open session of an employee
// @Description Returns the employee's open session, or a null session when there is none
// @Tags cash-sessions
// @Produce  json
// @Param   employeeID query string false "Employee ID (defaults to the caller)"
// @Success 200 {object} dto.OpenSessionLookupResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Failed to look up open session"
// @Security BearerAuth
// @Router /cash-sessions/open [get]
func (h *cashSessionHandler) getOpenSession(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	employeeID := strings.TrimSpace(c.Query("employeeID"))
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}

	session, err := h.sessionService.GetOpenSessionForEmployee(c.Request.Context(), employeeID, actor)
	if err != nil {
		respondWithError(c, err, "Failed to look up open session")
		return
	}

	resp := dto.OpenSessionLookupResponse{}
	if session != nil {
		s := dto.ToCashSessionResponse(session)
		resp.Session = &s
	}
	c.JSON(http.StatusOK, resp)
}

// listSessions godoc
// @Summary List session history
// @Description Lists sessions newest-first. Cashiers only see their own sessions.
// @Tags cash-sessions
// @Produce  json
// @Param   employeeID query string false "Filter by employee (admins only for other employees)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Failed to list sessions"
// @Security BearerAuth
// @Router /cash-sessions [get]
func (h *cashSessionHandler) listSessions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "ListSessions", err)
		return
	}

	sessions, nextToken, err := h.sessionService.ListSessionHistory(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, dto.ListSessionsResponse{
		Sessions:  dto.ToCashSessionResponses(sessions),
		NextToken: nextToken,
	})
}

// getSession godoc
// @Summary Get a cash session
// @Description Retrieves a session together with its entries
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve session"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID} [get]
func (h *cashSessionHandler) getSession(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID, actor)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve session")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}

// getSessionSummary godoc
// @Summary Get the reconciliation summary of a session
// @Description Running totals and expected balance; closed sessions also carry discrepancy and classification
// @Tags cash-sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.ReconciliationSummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to summarize session"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/summary [get]
func (h *cashSessionHandler) getSessionSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	summary, err := h.sessionService.GetSessionSummary(c.Request.Context(), c.Param("sessionID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to summarize session")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(*summary))
}

// closeSession godoc
// @Summary Close a cash session
// @Description Reconciles the reported closing balance against the expected balance and closes the session.
// @Description A large discrepancy does not block the close; it is reported as a warning.
// @Tags cash-sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   close body dto.CloseSessionRequest true "Counted closing balance and optional note"
// @Success 200 {object} dto.CloseSessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already closed"
// @Failure 500 {object} dto.ErrorResponse "Failed to close session"
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/close [post]
func (h *cashSessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionID")

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CloseSession", err)
		return
	}

	result, err := h.sessionService.CloseSession(c.Request.Context(), sessionID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to close session")
		return
	}

	logger.Info("Cash session closed via API",
		slog.String("session_id", sessionID),
		slog.String("classification", string(result.Summary.Classification)))
	c.JSON(http.StatusOK, dto.ToCloseSessionResponse(result))
}
