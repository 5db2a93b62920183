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

// QuizQuestionHandler handles quiz question endpoints.
type QuizQuestionHandler struct {
	quizService *service.QuizService
}

// NewQuizQuestionHandler creates a new QuizQuestionHandler.
func NewQuizQuestionHandler(quizService *service.QuizService) *QuizQuestionHandler {
	return &QuizQuestionHandler{quizService: quizService}
}

// Create godoc
// POST /api/v1/quizQuestion
// Appends a question to the quiz named in the body.
func (h *QuizQuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuizQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// Format already validated by the uuid binding tags.
	courseID := uuid.MustParse(req.CourseID)
	lessonID := uuid.MustParse(req.LessonID)
	quizID := uuid.MustParse(req.QuizID)

	question, err := h.quizService.AddQuestion(c.Request.Context(), courseID, lessonID, quizID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question}, "Quiz question added successfully.")
}

// Update godoc
// PATCH /api/v1/quizQuestion/:courseId/:lessonId/:quizId/:questionId
// Sparse-merges question fields; correctAnswerIndex 0 is a real value, not
// an absent one.
func (h *QuizQuestionHandler) Update(c *gin.Context) {
	courseID, lessonID, quizID, questionID, ok := questionPath(c)
	if !ok {
		return
	}

	var req model.UpdateQuizQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.quizService.UpdateQuestion(c.Request.Context(), courseID, lessonID, quizID, questionID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question}, "Quiz question updated successfully.")
}

// Delete godoc
// DELETE /api/v1/quizQuestion/:courseId/:lessonId/:quizId/:questionId
// Removes one question, leaving its siblings in order.
func (h *QuizQuestionHandler) Delete(c *gin.Context) {
	courseID, lessonID, quizID, questionID, ok := questionPath(c)
	if !ok {
		return
	}

	question, err := h.quizService.DeleteQuestion(c.Request.Context(), courseID, lessonID, quizID, questionID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question}, "Quiz question deleted successfully.")
}

// questionPath parses the four-segment id path; on failure it writes the
// error response and returns ok=false.
func questionPath(c *gin.Context) (courseID, lessonID, quizID, questionID uuid.UUID, ok bool) {
	courseID, lessonID, quizID, ok = quizPath(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return courseID, lessonID, quizID, questionID, true
}
