package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/barbershop_cashdrawer/internal/apperrors"
	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps service errors onto status codes and error codes.
// Unexpected errors are logged and answered with fallbackMsg.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var openErr *apperrors.AlreadyOpenError
	switch {
	case errors.As(err, &openErr):
		logger.Info("Session already open", slog.String("employee_id", openErr.EmployeeID), slog.String("session_id", openErr.SessionID))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeAlreadyOpen, SessionID: openErr.SessionID})
	case errors.Is(err, apperrors.ErrAlreadyClosed):
		logger.Warn("Session already closed", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeAlreadyClosed})
	case errors.Is(err, apperrors.ErrSessionClosed):
		logger.Warn("Mutation on closed session", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeSessionClosed})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeNotFound})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeForbidden})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeUnauthorized})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeValidation})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallbackMsg, Code: dto.CodeInternal})
	}
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, op string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request for "+op, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: dto.CodeValidation})
}

// requireActor returns the authenticated actor or answers 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: dto.CodeUnauthorized})
		return domain.Actor{}, false
	}
	return actor, true
}
