package model

import (
	"time"

	"github.com/google/uuid"
)

// Course is the root aggregate. The whole lesson tree is owned exclusively
// by its course and is persisted as one document: every mutation loads the
// course, edits the tree in memory and saves the course back.
//
// Field names follow the public wire contract (camelCase).
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	IsApproved  bool      `json:"isApproved"`
	IsRejected  bool      `json:"isRejected"`
	Lessons     []Lesson  `json:"lessons"`
	// Revision guards concurrent load-modify-save cycles. Save succeeds
	// only when the stored revision still matches the loaded one.
	Revision  int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lesson is owned by exactly one course. Insertion order is significant.
type Lesson struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
	Quizzes     []Quiz     `json:"quizzes"`
}

// Resource is a file/notes entry inside a lesson. All fields default to
// empty strings; URLs are filled by the upload gateway.
type Resource struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	LecNotes string    `json:"lecNotes"`
	VideoURL string    `json:"videoUrl"`
	ImageURL string    `json:"imageUrl"`
}

// Quiz holds an ordered set of questions inside a lesson.
type Quiz struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is a multiple-choice question; CorrectAnswerIndex indexes
// into Options.
type QuizQuestion struct {
	ID                 uuid.UUID `json:"id"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	CorrectAnswerIndex int       `json:"correctAnswerIndex"`
}

// ─── Request payloads ─────────────────────────────────────────────────────
//
// Update payloads use pointer fields throughout: nil means "leave the stored
// value unchanged", a non-nil pointer overwrites, including zero values
// such as price 0, isApproved false and correctAnswerIndex 0.

// CreateCourseRequest is the payload for creating a new course.
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"required"`
	Instructor  string   `json:"instructor" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Duration    string   `json:"duration" binding:"required"`
}

// UpdateCourseRequest sparse-merges course fields.
type UpdateCourseRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description" binding:"omitempty"`
	Instructor  *string  `json:"instructor" binding:"omitempty"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Duration    *string  `json:"duration" binding:"omitempty"`
	IsApproved  *bool    `json:"isApproved" binding:"omitempty"`
}

// ApprovalRequest toggles the approval/rejection flags.
type ApprovalRequest struct {
	IsApproved *bool `json:"isApproved" binding:"omitempty"`
	IsRejected *bool `json:"isRejected" binding:"omitempty"`
}

// CreateLessonRequest appends a lesson to a course.
type CreateLessonRequest struct {
	CourseID    string `json:"courseId" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required"`
}

// UpdateLessonRequest sparse-merges lesson fields.
type UpdateLessonRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty"`
}

// CreateResourceForm carries the multipart form fields for a resource;
// binary payloads travel as the "imagefile"/"videofile" form files.
type CreateResourceForm struct {
	CourseID string `form:"courseId" binding:"required,uuid"`
	LessonID string `form:"lessonId" binding:"required,uuid"`
	Title    string `form:"title"`
	LecNotes string `form:"lecNotes"`
}

// UpdateResourceForm carries the multipart form fields for a resource edit.
// Path params identify the resource, so ids are not part of the form.
type UpdateResourceForm struct {
	Title    *string `form:"title"`
	LecNotes *string `form:"lecNotes"`
}

// FileUpload is an in-memory binary read from a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateQuizRequest appends a quiz to a lesson.
type CreateQuizRequest struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
	LessonID string `json:"lessonId" binding:"required,uuid"`
	Title    string `json:"title" binding:"required,min=1,max=255"`
}

// UpdateQuizRequest sparse-merges quiz fields.
type UpdateQuizRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=255"`
}

// CreateQuizQuestionRequest appends a question to a quiz.
type CreateQuizQuestionRequest struct {
	CourseID           string   `json:"courseId" binding:"required,uuid"`
	LessonID           string   `json:"lessonId" binding:"required,uuid"`
	QuizID             string   `json:"quizId" binding:"required,uuid"`
	Question           string   `json:"question" binding:"required,min=1,max=2000"`
	Options            []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex" binding:"required,min=0"`
}

// UpdateQuizQuestionRequest sparse-merges question fields. A nil
// CorrectAnswerIndex leaves the stored index alone; 0 is a valid value.
type UpdateQuizQuestionRequest struct {
	Question           *string   `json:"question" binding:"omitempty,min=1,max=2000"`
	Options            *[]string `json:"options" binding:"omitempty,min=2,dive,required"`
	CorrectAnswerIndex *int      `json:"correctAnswerIndex" binding:"omitempty,min=0"`
}
