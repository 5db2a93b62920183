package service

import "errors"

// Domain errors. Each nesting level of the course tree has its own
// not-found sentinel so callers can report exactly which segment of an
// id path failed to resolve.
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("quiz question not found")

	// ErrSaveConflict means a concurrent writer saved the same course
	// between this operation's load and save.
	ErrSaveConflict = errors.New("course was modified concurrently")

	// ErrMissingResourceData is returned when a resource create/edit
	// carries neither text fields nor a file.
	ErrMissingResourceData = errors.New("resource requires a title, notes or file")

	// ErrAnswerIndexOutOfRange is returned when correctAnswerIndex does
	// not index into the question's options.
	ErrAnswerIndexOutOfRange = errors.New("correctAnswerIndex is out of range")

	// ErrUploadFailed wraps upload gateway failures; the enclosing
	// create/edit is aborted and nothing is persisted.
	ErrUploadFailed = errors.New("file upload failed")
)
