package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/service"
)

// respondError maps service sentinels onto the wire contract. Anything
// unrecognized is logged and surfaced as a generic failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoAccess),
		errors.Is(err, service.ErrWorkspaceNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrInviteCodeMismatch),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})

	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})

	case errors.Is(err, service.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})

	case errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrSelfRoleChange),
		errors.Is(err, service.ErrOwnerRoleChange),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUnsupportedMime):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})

	default:
		slog.ErrorContext(c.Request.Context(), "request handling failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

// pathID parses a snowflake id path segment. A malformed id answers 400
// and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid " + name})
		return 0, false
	}
	return id, true
}
