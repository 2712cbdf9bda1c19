package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/service"
)

// PartnerHandler holds the partner and access service dependencies.
type PartnerHandler struct {
	partnerService service.PartnerService
	accessService  service.AccessService
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(partnerService service.PartnerService, accessService service.AccessService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		accessService:  accessService,
	}
}

// --- DTOs ---

// InvitePartnerRequest names the user to grant viewer access by email.
type InvitePartnerRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PartnerUserResponse is the trimmed user DTO shown in partner lists and
// search results.
type PartnerUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PartnerListResponse splits the partner relation into its two directions.
type PartnerListResponse struct {
	MyPartners      []PartnerUserResponse `json:"myPartners"`
	ManagedAccounts []PartnerUserResponse `json:"managedAccounts"`
}

// AccessCheckResponse reports whether the caller may view a target user.
type AccessCheckResponse struct {
	HasAccess bool `json:"hasAccess"`
}

func mapPartnerUsers(users []domain.User) []PartnerUserResponse {
	responses := make([]PartnerUserResponse, len(users))
	for i, u := range users {
		responses[i] = PartnerUserResponse{
			ID:    u.ID.String(),
			Name:  u.Name,
			Email: u.Email,
		}
	}
	return responses
}

// --- Handler Methods ---

// SearchUsers finds candidate partners by email prefix. Queries shorter
// than three characters return an empty list.
func (h *PartnerHandler) SearchUsers(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	users, err := h.partnerService.SearchUsers(c.Request.Context(), callerID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPartnerUsers(users))
}

// InvitePartner grants the named user viewer access to the caller's data.
func (h *PartnerHandler) InvitePartner(c *gin.Context) {
	var req InvitePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	if _, err := h.partnerService.InvitePartner(c.Request.Context(), callerID, req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RemovePartner revokes the grant the caller gave the user in the path.
func (h *PartnerHandler) RemovePartner(c *gin.Context) {
	viewerUserID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	if err := h.partnerService.RemovePartner(c.Request.Context(), callerID, viewerUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPartners lists both directions of the caller's partner relation.
func (h *PartnerHandler) GetPartners(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	list, err := h.partnerService.GetPartners(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PartnerListResponse{
		MyPartners:      mapPartnerUsers(list.MyPartners),
		ManagedAccounts: mapPartnerUsers(list.ManagedAccounts),
	})
}

// CheckAccess lets the client probe whether it may act on a target user
// before rendering cross-user views.
func (h *PartnerHandler) CheckAccess(c *gin.Context) {
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	hasAccess, err := h.accessService.CheckAccess(c.Request.Context(), callerID, targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccessCheckResponse{HasAccess: hasAccess})
}
