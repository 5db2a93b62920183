package service

import (
	"context"
	"fmt"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ResourceService mutates lesson resources and pushes their binaries to the
// upload gateway. Uploads happen after path resolution but before the
// aggregate save; a failed upload aborts the operation with nothing
// persisted. A failed save after a successful upload leaves the object
// orphaned in the store; those keys go onto the cleanup queue instead of
// being rolled back inline.
type ResourceService struct {
	store    CourseStore
	uploader Uploader
	orphans  OrphanQueue
	log      zerolog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(store CourseStore, uploader Uploader, orphans OrphanQueue, log zerolog.Logger) *ResourceService {
	return &ResourceService{
		store:    store,
		uploader: uploader,
		orphans:  orphans,
		log:      log.With().Str("component", "resource_service").Logger(),
	}
}

// Create adds a resource to a lesson. At least one of title, lecNotes,
// image or video must be supplied. Absent binaries leave the matching URL
// empty.
func (s *ResourceService) Create(ctx context.Context, courseID, lessonID uuid.UUID, form *model.CreateResourceForm, image, video *model.FileUpload) (*model.Resource, error) {
	if form.Title == "" && form.LecNotes == "" && image == nil && video == nil {
		return nil, ErrMissingResourceData
	}

	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	imageURL, videoURL, uploadedKeys, err := s.uploadBinaries(ctx, courseID, lessonID, image, video)
	if err != nil {
		return nil, err
	}

	resource := model.Resource{
		ID:       uuid.New(),
		Title:    form.Title,
		LecNotes: form.LecNotes,
		ImageURL: imageURL,
		VideoURL: videoURL,
	}
	lesson.Resources = append(lesson.Resources, resource)

	if err := s.store.Save(ctx, course); err != nil {
		s.scheduleCleanup(ctx, uploadedKeys)
		return nil, mapStoreErr(err)
	}

	s.log.Info().
		Str("course_id", courseID.String()).
		Str("lesson_id", lessonID.String()).
		Str("resource_id", resource.ID.String()).
		Msg("Resource created")
	return &resource, nil
}

// Update sparse-merges resource fields. A resupplied binary replaces the
// stored URL and the replaced object is scheduled for cleanup; an absent
// binary leaves the URL unchanged.
func (s *ResourceService) Update(ctx context.Context, courseID, lessonID, resourceID uuid.UUID, form *model.UpdateResourceForm, image, video *model.FileUpload) (*model.Resource, error) {
	if form.Title == nil && form.LecNotes == nil && image == nil && video == nil {
		return nil, ErrMissingResourceData
	}

	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}
	resource, err := findResource(lesson, resourceID)
	if err != nil {
		return nil, err
	}

	imageURL, videoURL, uploadedKeys, err := s.uploadBinaries(ctx, courseID, lessonID, image, video)
	if err != nil {
		return nil, err
	}

	var replacedKeys []string
	if form.Title != nil {
		resource.Title = *form.Title
	}
	if form.LecNotes != nil {
		resource.LecNotes = *form.LecNotes
	}
	if image != nil {
		if key := s.uploader.KeyFromURL(resource.ImageURL); key != "" {
			replacedKeys = append(replacedKeys, key)
		}
		resource.ImageURL = imageURL
	}
	if video != nil {
		if key := s.uploader.KeyFromURL(resource.VideoURL); key != "" {
			replacedKeys = append(replacedKeys, key)
		}
		resource.VideoURL = videoURL
	}

	if err := s.store.Save(ctx, course); err != nil {
		s.scheduleCleanup(ctx, uploadedKeys)
		return nil, mapStoreErr(err)
	}

	// The old binaries are unreferenced once the save landed.
	s.scheduleCleanup(ctx, replacedKeys)
	return resource, nil
}

// Delete removes a resource and schedules its stored binaries for cleanup.
func (s *ResourceService) Delete(ctx context.Context, courseID, lessonID, resourceID uuid.UUID) (*model.Resource, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	removed, err := removeResource(lesson, resourceID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}

	var keys []string
	if key := s.uploader.KeyFromURL(removed.ImageURL); key != "" {
		keys = append(keys, key)
	}
	if key := s.uploader.KeyFromURL(removed.VideoURL); key != "" {
		keys = append(keys, key)
	}
	s.scheduleCleanup(ctx, keys)

	s.log.Info().
		Str("course_id", courseID.String()).
		Str("resource_id", resourceID.String()).
		Msg("Resource deleted")
	return &removed, nil
}

// uploadBinaries pushes the supplied files to the gateway and returns the
// resulting URLs plus the keys written, so callers can schedule cleanup if
// the aggregate save fails afterwards.
func (s *ResourceService) uploadBinaries(ctx context.Context, courseID, lessonID uuid.UUID, image, video *model.FileUpload) (imageURL, videoURL string, keys []string, err error) {
	if image != nil {
		key := storage.ObjectKey(courseID, lessonID, image.ContentType, image.Filename)
		imageURL, err = s.uploader.Upload(ctx, key, image.ContentType, image.Data)
		if err != nil {
			return "", "", nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		keys = append(keys, key)
	}
	if video != nil {
		key := storage.ObjectKey(courseID, lessonID, video.ContentType, video.Filename)
		videoURL, err = s.uploader.Upload(ctx, key, video.ContentType, video.Data)
		if err != nil {
			// The image (if any) is already in the store; queue it.
			s.scheduleCleanup(ctx, keys)
			return "", "", nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		keys = append(keys, key)
	}
	return imageURL, videoURL, keys, nil
}

// scheduleCleanup enqueues keys for the janitor.
func (s *ResourceService) scheduleCleanup(ctx context.Context, keys []string) {
	enqueueOrphans(ctx, s.orphans, s.log, keys)
}
