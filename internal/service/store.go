package service

import (
	"context"
	"errors"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/repository"
	"github.com/google/uuid"
)

// CourseStore is the aggregate store contract the mutation engine depends
// on. *repository.CourseRepository implements it; tests substitute an
// in-memory fake.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Save(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	ListByApproval(ctx context.Context, approved bool) ([]model.Course, error)
	ListByRejection(ctx context.Context, rejected bool) ([]model.Course, error)
	ListByInstructor(ctx context.Context, instructor string) ([]model.Course, error)
}

// Uploader is the upload gateway contract: push a buffer under a key and
// get back the public URL. KeyFromURL inverts the mapping for cleanup.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	KeyFromURL(url string) string
}

// OrphanQueue schedules best-effort deletion of uploaded objects that no
// saved aggregate references anymore.
type OrphanQueue interface {
	Enqueue(ctx context.Context, key string) error
}

// mapStoreErr translates storage-level sentinels into domain errors.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCourseNotFound
	case errors.Is(err, repository.ErrRevisionConflict):
		return ErrSaveConflict
	default:
		return err
	}
}
