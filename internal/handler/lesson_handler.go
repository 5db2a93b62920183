package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/response"
	"github.com/craftedu/coursecraft-backend/internal/service"
	"github.com/craftedu/coursecraft-backend/internal/validator"
)

// LessonHandler handles lesson endpoints.
type LessonHandler struct {
	lessonService *service.LessonService
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// Create godoc
// POST /api/v1/lesson
// Appends a new lesson to the course named in the body.
func (h *LessonHandler) Create(c *gin.Context) {
	var req model.CreateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Format already validated by the uuid binding tag.
	courseID := uuid.MustParse(req.CourseID)

	lesson, err := h.lessonService.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"lesson": lesson}, "Lesson created successfully.")
}

// Update godoc
// PATCH /api/v1/lesson/:courseId/:lessonId
// Sparse-merges the supplied fields into the lesson.
func (h *LessonHandler) Update(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}

	var req model.UpdateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), courseID, lessonID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lesson": lesson}, "Lesson updated successfully.")
}

// Delete godoc
// DELETE /api/v1/lesson/:courseId/:lessonId
// Removes a lesson and everything nested beneath it.
func (h *LessonHandler) Delete(c *gin.Context) {
	courseID, lessonID, ok := lessonPath(c)
	if !ok {
		return
	}

	lesson, err := h.lessonService.Delete(c.Request.Context(), courseID, lessonID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lesson": lesson}, "Lesson deleted successfully.")
}

// lessonPath parses the :courseId/:lessonId pair; on failure it writes the
// error response and returns ok=false.
func lessonPath(c *gin.Context) (courseID, lessonID uuid.UUID, ok bool) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	lessonID, err = uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	return courseID, lessonID, true
}
