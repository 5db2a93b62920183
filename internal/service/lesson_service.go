package service

import (
	"context"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LessonService mutates the lessons collection inside a course aggregate.
// Each operation is one load → edit → save cycle. Deleting a lesson queues
// the resource binaries beneath it for janitor cleanup.
type LessonService struct {
	store    CourseStore
	uploader Uploader
	orphans  OrphanQueue
	log      zerolog.Logger
}

// NewLessonService creates a new LessonService.
func NewLessonService(store CourseStore, uploader Uploader, orphans OrphanQueue, log zerolog.Logger) *LessonService {
	return &LessonService{
		store:    store,
		uploader: uploader,
		orphans:  orphans,
		log:      log.With().Str("component", "lesson_service").Logger(),
	}
}

// Create appends a lesson to the course and returns it with its assigned id.
func (s *LessonService) Create(ctx context.Context, courseID uuid.UUID, req *model.CreateLessonRequest) (*model.Lesson, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	lesson := model.Lesson{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Resources:   []model.Resource{},
		Quizzes:     []model.Quiz{},
	}
	course.Lessons = append(course.Lessons, lesson)

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}

	s.log.Info().
		Str("course_id", courseID.String()).
		Str("lesson_id", lesson.ID.String()).
		Msg("Lesson created")
	return &lesson, nil
}

// Update sparse-merges lesson fields.
func (s *LessonService) Update(ctx context.Context, courseID, lessonID uuid.UUID, req *model.UpdateLessonRequest) (*model.Lesson, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return lesson, nil
}

// Delete removes a lesson and its whole subtree. Remaining lessons keep
// their relative order.
func (s *LessonService) Delete(ctx context.Context, courseID, lessonID uuid.UUID) (*model.Lesson, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	removed, err := removeLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}

	// The removed subtree's binaries are unreferenced once the save landed.
	enqueueOrphans(ctx, s.orphans, s.log,
		collectResourceKeys(s.uploader, []model.Lesson{removed}))

	s.log.Info().
		Str("course_id", courseID.String()).
		Str("lesson_id", lessonID.String()).
		Msg("Lesson deleted")
	return &removed, nil
}
