package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/response"
	"github.com/craftedu/coursecraft-backend/internal/service"
	"github.com/craftedu/coursecraft-backend/internal/validator"
)

// CourseHandler handles course aggregate endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create godoc
// POST /api/v1/courses
// Creates a new course with no lessons.
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course}, "Course created successfully.")
}

// ListAll godoc
// GET /api/v1/courses
// Lists every course, oldest first.
func (h *CourseHandler) ListAll(c *gin.Context) {
	courses, err := h.courseService.ListAll(c.Request.Context())
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses}, "Courses retrieved successfully.")
}

// ListByApproval godoc
// GET /api/v1/courses/approved/:isApproved
// Lists courses filtered by approval flag.
func (h *CourseHandler) ListByApproval(c *gin.Context) {
	approved, err := strconv.ParseBool(c.Param("isApproved"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	courses, err := h.courseService.ListByApproval(c.Request.Context(), approved)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	status := "approved"
	if !approved {
		status = "not approved"
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses},
		fmt.Sprintf("Courses with approval status %s retrieved successfully.", status))
}

// ListByRejection godoc
// GET /api/v1/courses/reject/:isRejected
// Lists courses filtered by rejection flag.
func (h *CourseHandler) ListByRejection(c *gin.Context) {
	rejected, err := strconv.ParseBool(c.Param("isRejected"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	courses, err := h.courseService.ListByRejection(c.Request.Context(), rejected)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	status := "rejected"
	if !rejected {
		status = "not rejected"
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses},
		fmt.Sprintf("Courses with reject status %s retrieved successfully.", status))
}

// ListByInstructor godoc
// GET /api/v1/courses/instructor/:instructor
// Lists courses by exact instructor name.
func (h *CourseHandler) ListByInstructor(c *gin.Context) {
	instructor := c.Param("instructor")

	courses, err := h.courseService.ListByInstructor(c.Request.Context(), instructor)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses},
		fmt.Sprintf("Courses by instructor %s retrieved successfully.", instructor))
}

// Get godoc
// GET /api/v1/courses/:courseId
// Returns one course aggregate by id.
func (h *CourseHandler) Get(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), courseID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course}, "Course retrieved successfully.")
}

// Update godoc
// PATCH /api/v1/courses/:courseId
// Sparse-merges the supplied fields into the course.
func (h *CourseHandler) Update(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), courseID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course}, "Course updated successfully.")
}

// SetApproval godoc
// PATCH /api/v1/courses/approveOrRejecte/:courseId
// Toggles approval/rejection flags. The path spelling is part of the
// published API and kept as-is.
func (h *CourseHandler) SetApproval(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ApprovalRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.SetApproval(c.Request.Context(), courseID, &req)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course}, "Course updated successfully.")
}

// Delete godoc
// DELETE /api/v1/courses/:courseId
// Removes the whole course aggregate.
func (h *CourseHandler) Delete(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.Delete(c.Request.Context(), courseID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course}, "Course deleted successfully.")
}
