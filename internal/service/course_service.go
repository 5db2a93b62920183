package service

import (
	"context"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CourseService handles course-level operations against the aggregate
// store. Deleting a course queues every resource binary beneath it for
// janitor cleanup.
type CourseService struct {
	store    CourseStore
	uploader Uploader
	orphans  OrphanQueue
	log      zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(store CourseStore, uploader Uploader, orphans OrphanQueue, log zerolog.Logger) *CourseService {
	return &CourseService{
		store:    store,
		uploader: uploader,
		orphans:  orphans,
		log:      log.With().Str("component", "course_service").Logger(),
	}
}

// Create inserts a new course. New courses start unapproved, unrejected and
// with no lessons.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Price:       *req.Price,
		Duration:    req.Duration,
		IsApproved:  false,
		IsRejected:  false,
		Lessons:     []model.Lesson{},
	}

	if err := s.store.Create(ctx, course); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", course.ID.String()).Msg("Course created")
	return course, nil
}

// GetByID loads a full aggregate.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return course, nil
}

// ListAll returns every course.
func (s *CourseService) ListAll(ctx context.Context) ([]model.Course, error) {
	return s.listResult(s.store.ListAll(ctx))
}

// ListByApproval returns courses filtered on the approval flag.
func (s *CourseService) ListByApproval(ctx context.Context, approved bool) ([]model.Course, error) {
	return s.listResult(s.store.ListByApproval(ctx, approved))
}

// ListByRejection returns courses filtered on the rejection flag.
func (s *CourseService) ListByRejection(ctx context.Context, rejected bool) ([]model.Course, error) {
	return s.listResult(s.store.ListByRejection(ctx, rejected))
}

// ListByInstructor returns courses by exact instructor name.
func (s *CourseService) ListByInstructor(ctx context.Context, instructor string) ([]model.Course, error) {
	return s.listResult(s.store.ListByInstructor(ctx, instructor))
}

func (s *CourseService) listResult(courses []model.Course, err error) ([]model.Course, error) {
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Update sparse-merges the supplied fields into the stored course. Nil
// fields are left untouched; non-nil fields overwrite, zero values
// included.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.IsApproved != nil {
		course.IsApproved = *req.IsApproved
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return course, nil
}

// SetApproval toggles the approval/rejection flags with the same
// sparse-merge rule as Update.
func (s *CourseService) SetApproval(ctx context.Context, id uuid.UUID, req *model.ApprovalRequest) (*model.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if req.IsApproved != nil {
		course.IsApproved = *req.IsApproved
	}
	if req.IsRejected != nil {
		course.IsRejected = *req.IsRejected
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}

	s.log.Info().
		Str("course_id", id.String()).
		Bool("approved", course.IsApproved).
		Bool("rejected", course.IsRejected).
		Msg("Course approval flags set")
	return course, nil
}

// Delete removes the whole aggregate and returns the removed state. Every
// resource binary in the removed tree is scheduled for cleanup.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	enqueueOrphans(ctx, s.orphans, s.log,
		collectResourceKeys(s.uploader, course.Lessons))

	s.log.Info().Str("course_id", id.String()).Msg("Course deleted")
	return course, nil
}
