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

// QuizHandler handles quiz endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create godoc
// POST /api/v1/quiz
// Appends an empty quiz to the lesson named in the body.
func (h *QuizHandler) Create(c *gin.Context) {
	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Format already validated by the uuid binding tags.
	courseID := uuid.MustParse(req.CourseID)
	lessonID := uuid.MustParse(req.LessonID)

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), courseID, lessonID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz}, "Quiz added successfully.")
}

// Update godoc
// PATCH /api/v1/quiz/:courseId/:lessonId/:quizId
// Sparse-merges the supplied fields into the quiz.
func (h *QuizHandler) Update(c *gin.Context) {
	courseID, lessonID, quizID, ok := quizPath(c)
	if !ok {
		return
	}

	var req model.UpdateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), courseID, lessonID, quizID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz}, "Quiz updated successfully.")
}

// Delete godoc
// DELETE /api/v1/quiz/:courseId/:lessonId/:quizId
// Removes a quiz and its questions.
func (h *QuizHandler) Delete(c *gin.Context) {
	courseID, lessonID, quizID, ok := quizPath(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.DeleteQuiz(c.Request.Context(), courseID, lessonID, quizID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz}, "Quiz deleted successfully.")
}

// quizPath parses the :courseId/:lessonId/:quizId triple; on failure it
// writes the error response and returns ok=false.
func quizPath(c *gin.Context) (courseID, lessonID, quizID uuid.UUID, ok bool) {
	courseID, lessonID, ok = lessonPath(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return courseID, lessonID, quizID, true
}
