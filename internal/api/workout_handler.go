package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves plan and session-log endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// parseUintParam reads a positive integer path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return uint(value), true
}

// parsePaging reads limit/offset query parameters with defaults.
func parsePaging(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "30"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// --- Plans ---

func (h *WorkoutHandler) GetPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	plans, err := h.workoutService.GetPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *WorkoutHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.workoutService.GetPlanDetails(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var req service.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plan, err := h.workoutService.CreatePlan(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plan, err := h.workoutService.UpdatePlan(c.Request.Context(), userID, planID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

func (h *WorkoutHandler) CopyTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.workoutService.CopyTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *WorkoutHandler) TodaysWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	today, err := h.workoutService.TodaysWorkout(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

// --- Logs ---

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var req service.LogWorkoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	view, err := h.workoutService.LogWorkout(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *WorkoutHandler) GetLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	limit, offset := parsePaging(c)
	logs, err := h.workoutService.GetLogs(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *WorkoutHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	view, err := h.workoutService.GetLogDetails(c.Request.Context(), userID, logID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WorkoutHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout log deleted"})
}
