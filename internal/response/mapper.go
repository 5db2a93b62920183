package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftedu/coursecraft-backend/internal/service"
)

// FailDomain maps a service-layer error onto the HTTP status and error code
// it corresponds to and sends the error response. Unknown errors become a
// generic 500.
func FailDomain(c *gin.Context, err error) {
	status, code := classify(err)
	Fail(c, status, code)
}

func classify(err error) (int, ErrCode) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return http.StatusNotFound, ErrCourseNotFound
	case errors.Is(err, service.ErrLessonNotFound):
		return http.StatusNotFound, ErrLessonNotFound
	case errors.Is(err, service.ErrResourceNotFound):
		return http.StatusNotFound, ErrResourceNotFound
	case errors.Is(err, service.ErrQuizNotFound):
		return http.StatusNotFound, ErrQuizNotFound
	case errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound, ErrQuizQuestionNotFound
	case errors.Is(err, service.ErrMissingResourceData):
		return http.StatusBadRequest, ErrMissingResourceData
	case errors.Is(err, service.ErrAnswerIndexOutOfRange):
		return http.StatusBadRequest, ErrAnswerIndexRange
	case errors.Is(err, service.ErrSaveConflict):
		return http.StatusConflict, ErrEditConflict
	case errors.Is(err, service.ErrUploadFailed):
		return http.StatusInternalServerError, ErrUploadFailed
	default:
		return http.StatusInternalServerError, ErrInternal
	}
}
