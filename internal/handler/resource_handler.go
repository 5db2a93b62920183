package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/response"
	"github.com/craftedu/coursecraft-backend/internal/service"
	"github.com/craftedu/coursecraft-backend/internal/validator"
)

// Multipart field names for resource binaries, fixed by the published API.
const (
	fieldImageFile = "imagefile"
	fieldVideoFile = "videofile"
)

// ResourceHandler handles lesson resource endpoints. Resources arrive as
// multipart forms carrying optional image/video binaries.
type ResourceHandler struct {
	resourceService *service.ResourceService
	maxUploadBytes  int64
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *service.ResourceService, maxUploadBytes int64) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Create godoc
// POST /api/v1/resource (multipart)
// Uploads any attached binaries and appends a resource to the lesson.
func (h *ResourceHandler) Create(c *gin.Context) {
	var form model.CreateResourceForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, ok := h.readUpload(c, fieldImageFile)
	if !ok {
		return
	}
	video, ok := h.readUpload(c, fieldVideoFile)
	if !ok {
		return
	}

	// Format already validated by the uuid binding tag.
	courseID := uuid.MustParse(form.CourseID)
	lessonID := uuid.MustParse(form.LessonID)

	resource, err := h.resourceService.Create(c.Request.Context(), courseID, lessonID, &form, image, video)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"resource": resource}, "Resource created successfully.")
}

// Update godoc
// PATCH /api/v1/resource/:courseId/:lessonId/:resourceId (multipart)
// Sparse-merges text fields and replaces any re-uploaded binaries.
func (h *ResourceHandler) Update(c *gin.Context) {
	courseID, lessonID, resourceID, ok := resourcePath(c)
	if !ok {
		return
	}

	var form model.UpdateResourceForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, ok := h.readUpload(c, fieldImageFile)
	if !ok {
		return
	}
	video, ok := h.readUpload(c, fieldVideoFile)
	if !ok {
		return
	}

	resource, err := h.resourceService.Update(c.Request.Context(), courseID, lessonID, resourceID, &form, image, video)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": resource}, "Resource updated successfully.")
}

// Delete godoc
// DELETE /api/v1/resource/:courseId/:lessonId/:resourceId
// Removes a resource; its stored binaries are cleaned up asynchronously.
func (h *ResourceHandler) Delete(c *gin.Context) {
	courseID, lessonID, resourceID, ok := resourcePath(c)
	if !ok {
		return
	}

	resource, err := h.resourceService.Delete(c.Request.Context(), courseID, lessonID, resourceID)
	if err != nil {
		response.FailDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"resource": resource}, "Resource deleted successfully.")
}

// readUpload reads one optional multipart file into memory, enforcing the
// configured size limit. A missing file yields (nil, true). On failure it
// writes the error response and returns ok=false.
func (h *ResourceHandler) readUpload(c *gin.Context, field string) (*model.FileUpload, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return nil, false
	}

	if header.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return nil, false
	}

	data, err := readAll(header)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return nil, false
	}

	return &model.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// resourcePath parses the :courseId/:lessonId/:resourceId triple; on failure
// it writes the error response and returns ok=false.
func resourcePath(c *gin.Context) (courseID, lessonID, resourceID uuid.UUID, ok bool) {
	courseID, lessonID, ok = lessonPath(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return courseID, lessonID, resourceID, true
}
