package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gym-tracker/internal/service"
)

// parseTargetUserID reads the optional targetUserId query parameter used by
// cross-user actions. Absent means "act as yourself".
func parseTargetUserID(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("targetUserId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requestIdentity bundles the authenticated caller with the optional
// targetUserId a cross-user request names.
type requestIdentity struct {
	caller uuid.UUID
	target *uuid.UUID
}

// callerAndTarget pulls the authenticated caller and the optional
// targetUserId off the request. On failure the response has already been
// written.
func callerAndTarget(c *gin.Context) (requestIdentity, bool) {
	id, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return requestIdentity{}, false
	}
	target, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId format")
		return requestIdentity{}, false
	}
	return requestIdentity{caller: id, target: target}, true
}

// parseIDParam parses a UUID path parameter.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service-layer sentinel errors onto the HTTP
// error taxonomy. Every handler funnels failures through here so the
// mapping stays uniform.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, "No access to this user's data")
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrDuplicatePlanExercise):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSelfPartner):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPartnerExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrPartnerNotFound),
		errors.Is(err, service.ErrPartnerUserNotFound),
		errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
