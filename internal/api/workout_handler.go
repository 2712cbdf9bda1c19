package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// CreateWorkoutRequest defines the expected JSON for logging a session.
type CreateWorkoutRequest struct {
	Name  string     `json:"name"`
	Notes string     `json:"notes"`
	Date  *time.Time `json:"date"`
}

// UpdateWorkoutRequest defines mutable session fields.
type UpdateWorkoutRequest struct {
	Name     string `json:"name"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
	Duration int    `json:"duration"`
}

// SetRequest defines the expected JSON for logging or editing a set.
type SetRequest struct {
	ExerciseID string  `json:"exerciseId"`
	Reps       int     `json:"reps" binding:"required"`
	Weight     float64 `json:"weight"`
	RPE        *int    `json:"rpe"`
	Notes      string  `json:"notes"`
	Warmup     bool    `json:"warmup"`
}

// SetResponse is the DTO for a logged set.
type SetResponse struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exerciseId"`
	SetNumber  int     `json:"setNumber"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	RPE        *int    `json:"rpe,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Warmup     bool    `json:"warmup"`
}

// WorkoutResponse is the DTO for returning session details.
type WorkoutResponse struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	Name      string        `json:"name,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Date      time.Time     `json:"date"`
	Status    string        `json:"status"`
	Duration  int           `json:"duration"`
	Sets      []SetResponse `json:"sets"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// StartedWorkoutResponse is the result of starting a session from a plan:
// the fresh session plus exercise IDs for the client to pre-populate empty
// slots.
type StartedWorkoutResponse struct {
	Workout     WorkoutResponse `json:"workout"`
	ExerciseIDs []string        `json:"exerciseIds"`
}

// MapSetToResponse converts a domain.Set to SetResponse.
func MapSetToResponse(set *domain.Set) SetResponse {
	return SetResponse{
		ID:         set.ID.String(),
		ExerciseID: set.ExerciseID.String(),
		SetNumber:  set.SetNumber,
		Reps:       set.Reps,
		Weight:     set.Weight,
		RPE:        set.RPE,
		Notes:      set.Notes,
		Warmup:     set.Warmup,
	}
}

// MapWorkoutToResponse converts a domain.WorkoutSession to WorkoutResponse.
func MapWorkoutToResponse(w *domain.WorkoutSession) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	resp := WorkoutResponse{
		ID:        w.ID.String(),
		OwnerID:   w.OwnerID.String(),
		Name:      w.Name,
		Notes:     w.Notes,
		Date:      w.Date,
		Status:    string(w.Status),
		Duration:  w.Duration,
		Sets:      make([]SetResponse, 0, len(w.Sets)),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	for i := range w.Sets {
		resp.Sets = append(resp.Sets, MapSetToResponse(&w.Sets[i]))
	}
	return resp
}

// MapWorkoutsToResponse converts a slice of sessions.
func MapWorkoutsToResponse(workouts []domain.WorkoutSession) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// --- Handler Methods ---

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), ids.caller, ids.target, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), ids.caller, ids.target, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), ids.caller, ids.target, req.Name, req.Notes, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), ids.caller, ids.target, workoutID,
		req.Name, req.Notes, domain.WorkoutStatus(req.Status), req.Duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), ids.caller, ids.target, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DuplicateWorkout copies a prior session's sets into a fresh one dated
// today.
func (h *WorkoutHandler) DuplicateWorkout(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.DuplicateWorkout(c.Request.Context(), ids.caller, ids.target, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// StartFromPlan opens a fresh session named after the plan.
func (h *WorkoutHandler) StartFromPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	started, err := h.workoutService.StartFromPlan(c.Request.Context(), ids.caller, ids.target, planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := StartedWorkoutResponse{
		Workout:     MapWorkoutToResponse(started.Workout),
		ExerciseIDs: make([]string, 0, len(started.ExerciseIDs)),
	}
	for _, id := range started.ExerciseIDs {
		resp.ExerciseIDs = append(resp.ExerciseIDs, id.String())
	}
	c.JSON(http.StatusCreated, resp)
}

// QuickAddSet logs a set with the next sequential number for its exercise.
func (h *WorkoutHandler) QuickAddSet(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}
	input, ok := h.setInput(c, req)
	if !ok {
		return
	}

	set, err := h.workoutService.QuickAddSet(c.Request.Context(), ids.caller, ids.target, workoutID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSetToResponse(set))
}

func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	setID, ok := parseIDParam(c, "setId")
	if !ok {
		return
	}
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}
	input, ok := h.setInput(c, req)
	if !ok {
		return
	}

	set, err := h.workoutService.UpdateSet(c.Request.Context(), ids.caller, ids.target, workoutID, setID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSetToResponse(set))
}

func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	setID, ok := parseIDParam(c, "setId")
	if !ok {
		return
	}
	ids, ok := callerAndTarget(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteSet(c.Request.Context(), ids.caller, ids.target, workoutID, setID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) setInput(c *gin.Context, req SetRequest) (service.SetInput, bool) {
	input := service.SetInput{
		Reps:   req.Reps,
		Weight: req.Weight,
		RPE:    req.RPE,
		Notes:  req.Notes,
		Warmup: req.Warmup,
	}
	if req.ExerciseID != "" {
		id, err := uuid.Parse(req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
			return input, false
		}
		input.ExerciseID = id
	}
	return input, true
}
