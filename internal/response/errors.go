package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrForbidden          ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation          ErrCode = "VALIDATION_ERROR"
	ErrInvalidID           ErrCode = "INVALID_ID"
	ErrMissingResourceData ErrCode = "MISSING_RESOURCE_DATA"
	ErrAnswerIndexRange    ErrCode = "ANSWER_INDEX_OUT_OF_RANGE"
	ErrFileTooLarge        ErrCode = "FILE_TOO_LARGE"

	// ─── Not found, one code per nesting level ─────────────────────────
	ErrCourseNotFound       ErrCode = "COURSE_NOT_FOUND"
	ErrLessonNotFound       ErrCode = "LESSON_NOT_FOUND"
	ErrResourceNotFound     ErrCode = "RESOURCE_NOT_FOUND"
	ErrQuizNotFound         ErrCode = "QUIZ_NOT_FOUND"
	ErrQuizQuestionNotFound ErrCode = "QUIZ_QUESTION_NOT_FOUND"

	// ─── Conflicts / Server ────────────────────────────────────────────
	ErrEditConflict      ErrCode = "EDIT_CONFLICT"
	ErrUploadFailed      ErrCode = "UPLOAD_FAILED"
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"
	ErrInternal          ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrForbidden:
		return "You are not permitted to perform this action."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrMissingResourceData:
		return "Missing resource data: supply a title, lecture notes or a file."
	case ErrAnswerIndexRange:
		return "correctAnswerIndex must point into the options list."
	case ErrFileTooLarge:
		return "Uploaded file exceeds the size limit."
	case ErrCourseNotFound:
		return "Course not found."
	case ErrLessonNotFound:
		return "Lesson not found."
	case ErrResourceNotFound:
		return "Resource not found."
	case ErrQuizNotFound:
		return "Quiz not found."
	case ErrQuizQuestionNotFound:
		return "Quiz question not found."
	case ErrEditConflict:
		return "The course was modified by another request. Please retry."
	case ErrUploadFailed:
		return "Failed to upload file to storage."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
