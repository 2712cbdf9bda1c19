package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// PlanRequest defines the expected JSON for creating/updating a plan. A nil
// ExerciseIDs on update keeps the existing list; an empty one clears it.
type PlanRequest struct {
	Name        string   `json:"name" binding:"required"`
	Day         *string  `json:"day"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// AssignDayRequest moves a plan between day buckets; null means the rest
// pool.
type AssignDayRequest struct {
	Day *string `json:"day"`
}

// PlanSlotResponse is one ordered exercise slot.
type PlanSlotResponse struct {
	ExerciseID string `json:"exerciseId"`
	Position   int    `json:"position"`
}

// PlanResponse is the DTO for returning plan details.
type PlanResponse struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"ownerId"`
	Name      string             `json:"name"`
	Day       *string            `json:"day,omitempty"`
	Exercises []PlanSlotResponse `json:"exercises"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// MapPlanToResponse converts a domain.WorkoutPlan to PlanResponse.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	resp := PlanResponse{
		ID:        plan.ID.String(),
		OwnerID:   plan.OwnerID.String(),
		Name:      plan.Name,
		Exercises: make([]PlanSlotResponse, 0, len(plan.Exercises)),
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
	if plan.Day != nil {
		day := string(*plan.Day)
		resp.Day = &day
	}
	for _, slot := range plan.Exercises {
		resp.Exercises = append(resp.Exercises, PlanSlotResponse{
			ExerciseID: slot.ExerciseID.String(),
			Position:   slot.Position,
		})
	}
	return resp
}

// MapPlansToResponse converts a slice of plans.
func MapPlansToResponse(plans []domain.WorkoutPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

func parseDay(raw *string) *domain.Weekday {
	if raw == nil || *raw == "" {
		return nil
	}
	day := domain.Weekday(*raw)
	return &day
}

func parseExerciseIDs(raw []string) ([]uuid.UUID, bool) {
	if raw == nil {
		return nil, true
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// --- Handler Methods ---

// ListPlans returns the effective user's plans in schedule-view order.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), callerID, targetUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), callerID, targetUserID, planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}
	exerciseIDs, ok := parseExerciseIDs(req.ExerciseIDs)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}
	if exerciseIDs == nil {
		exerciseIDs = []uuid.UUID{}
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), callerID, targetUserID, req.Name, parseDay(req.Day), exerciseIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}
	exerciseIDs, ok := parseExerciseIDs(req.ExerciseIDs)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), callerID, targetUserID, planID, req.Name, parseDay(req.Day), exerciseIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) AssignDay(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AssignDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}

	plan, err := h.planService.AssignDay(c.Request.Context(), callerID, targetUserID, planID, parseDay(req.Day))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid targetUserId")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), callerID, targetUserID, planID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
