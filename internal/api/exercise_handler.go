package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the exercise library, categories and personal
// records.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	recordService   service.RecordService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, recordService service.RecordService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, recordService: recordService}
}

// --- Library ---

// ListExercises supports ?category_id= and ?q= filters.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || value == 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid category_id parameter")
			return
		}
		id := uint(value)
		categoryID = &id
	}
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), categoryID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req service.ExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.ExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

// --- Categories ---

func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	categories, err := h.exerciseService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *ExerciseHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	category, err := h.exerciseService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *ExerciseHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	category, err := h.exerciseService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *ExerciseHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// --- Personal records ---

// GetRecords returns the additive record history for one exercise.
func (h *ExerciseHandler) GetRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	exercise, records, err := h.recordService.GetRecordsForExercise(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": exercise, "records": records})
}

// AddRecord registers a record directly. A candidate that does not beat
// the standing record at the same rep count is rejected.
func (h *ExerciseHandler) AddRecord(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var req service.AddRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	record, err := h.recordService.AddRecord(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *ExerciseHandler) DeleteRecord(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	recordID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.recordService.DeleteRecord(c.Request.Context(), userID, recordID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}
