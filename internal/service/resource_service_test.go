package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/repository"
	"github.com/google/uuid"
)

func newResourceFixture(t *testing.T, lessons int) (*fakeCourseStore, *fakeUploader, *fakeOrphanQueue, *ResourceService, *model.Course) {
	t.Helper()
	store := newFakeStore()
	uploader := &fakeUploader{}
	orphans := &fakeOrphanQueue{}
	svc := NewResourceService(store, uploader, orphans, testLogger())
	course := seedCourse(store, lessons)
	return store, uploader, orphans, svc, course
}

func imageUpload() *model.FileUpload {
	return &model.FileUpload{
		Filename:    "diagram.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	}
}

func videoUpload() *model.FileUpload {
	return &model.FileUpload{
		Filename:    "intro.mp4",
		ContentType: "video/mp4",
		Data:        []byte("mp4-bytes"),
	}
}

func TestResourceCreateRequiresSomeData(t *testing.T) {
	_, _, _, svc, course := newResourceFixture(t, 1)

	_, err := svc.Create(context.Background(), course.ID, course.Lessons[0].ID,
		&model.CreateResourceForm{}, nil, nil)
	if !errors.Is(err, ErrMissingResourceData) {
		t.Fatalf("err = %v, want ErrMissingResourceData", err)
	}
}

func TestResourceCreateTextOnly(t *testing.T) {
	store, uploader, _, svc, course := newResourceFixture(t, 1)

	resource, err := svc.Create(context.Background(), course.ID, course.Lessons[0].ID,
		&model.CreateResourceForm{Title: "Reading list", LecNotes: "ch. 1-3"}, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resource.ImageURL != "" || resource.VideoURL != "" {
		t.Error("no binaries supplied, URLs must stay empty")
	}
	if len(uploader.uploaded) != 0 {
		t.Errorf("uploads = %v, want none", uploader.uploaded)
	}

	stored := store.courses[course.ID]
	if len(stored.Lessons[0].Resources) != 1 {
		t.Fatalf("stored resources = %d, want 1", len(stored.Lessons[0].Resources))
	}
}

func TestResourceCreateUploadsBinaries(t *testing.T) {
	_, uploader, _, svc, course := newResourceFixture(t, 1)

	resource, err := svc.Create(context.Background(), course.ID, course.Lessons[0].ID,
		&model.CreateResourceForm{Title: "Lecture 1"}, imageUpload(), videoUpload())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(uploader.uploaded) != 2 {
		t.Fatalf("uploads = %d, want 2", len(uploader.uploaded))
	}
	if !strings.HasPrefix(resource.ImageURL, fakeURLPrefix) {
		t.Errorf("imageURL = %q, want gateway URL", resource.ImageURL)
	}
	if !strings.HasPrefix(resource.VideoURL, fakeURLPrefix) {
		t.Errorf("videoURL = %q, want gateway URL", resource.VideoURL)
	}
	// Keys embed the resolution path.
	for _, key := range uploader.uploaded {
		if !strings.HasPrefix(key, course.ID.String()+"/"+course.Lessons[0].ID.String()+"/") {
			t.Errorf("key %q does not embed course/lesson ids", key)
		}
	}
}

func TestResourceCreateUploadFailureAbortsSave(t *testing.T) {
	store, uploader, _, svc, course := newResourceFixture(t, 1)
	uploader.failWith = errors.New("store unreachable")

	_, err := svc.Create(context.Background(), course.ID, course.Lessons[0].ID,
		&model.CreateResourceForm{Title: "Lecture 1"}, imageUpload(), nil)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("err = %v, want ErrUploadFailed", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0 after failed upload", store.saves)
	}
	if len(store.courses[course.ID].Lessons[0].Resources) != 0 {
		t.Error("no resource may be persisted when the upload failed")
	}
}

func TestResourceCreateFailedSaveEnqueuesOrphans(t *testing.T) {
	store, uploader, orphans, svc, course := newResourceFixture(t, 1)
	store.failSave = repository.ErrRevisionConflict

	_, err := svc.Create(context.Background(), course.ID, course.Lessons[0].ID,
		&model.CreateResourceForm{Title: "Lecture 1"}, imageUpload(), videoUpload())
	if !errors.Is(err, ErrSaveConflict) {
		t.Fatalf("err = %v, want ErrSaveConflict", err)
	}
	if len(orphans.keys) != 2 {
		t.Fatalf("orphan keys = %v, want both uploaded keys", orphans.keys)
	}
	for i, key := range uploader.uploaded {
		if orphans.keys[i] != key {
			t.Errorf("orphan key %d = %q, want %q", i, orphans.keys[i], key)
		}
	}
}

func TestResourceUpdateReplacedBinaryIsQueued(t *testing.T) {
	store, _, orphans, svc, course := newResourceFixture(t, 1)
	oldKey := course.ID.String() + "/" + course.Lessons[0].ID.String() + "/png/old-diagram.png"
	existing := model.Resource{
		ID:       uuid.New(),
		Title:    "Lecture 1",
		ImageURL: fakeURLPrefix + oldKey,
	}
	store.courses[course.ID].Lessons[0].Resources = []model.Resource{existing}

	resource, err := svc.Update(context.Background(), course.ID, course.Lessons[0].ID, existing.ID,
		&model.UpdateResourceForm{}, imageUpload(), nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resource.ImageURL == existing.ImageURL {
		t.Error("image URL must point at the new object")
	}
	if len(orphans.keys) != 1 || orphans.keys[0] != oldKey {
		t.Errorf("orphan keys = %v, want [%q]", orphans.keys, oldKey)
	}
}

func TestResourceUpdateSparseMergeKeepsURLs(t *testing.T) {
	store, _, _, svc, course := newResourceFixture(t, 1)
	existing := model.Resource{
		ID:       uuid.New(),
		Title:    "Lecture 1",
		LecNotes: "old notes",
		ImageURL: fakeURLPrefix + "some/key/img.png",
	}
	store.courses[course.ID].Lessons[0].Resources = []model.Resource{existing}

	resource, err := svc.Update(context.Background(), course.ID, course.Lessons[0].ID, existing.ID,
		&model.UpdateResourceForm{LecNotes: strptr("new notes")}, nil, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resource.LecNotes != "new notes" {
		t.Errorf("lecNotes = %q", resource.LecNotes)
	}
	if resource.Title != existing.Title || resource.ImageURL != existing.ImageURL {
		t.Error("omitted fields must keep their stored values")
	}
}

func TestResourceUpdateNotFoundPrecision(t *testing.T) {
	store, _, _, svc, course := newResourceFixture(t, 1)
	store.courses[course.ID].Lessons[0].Resources = []model.Resource{{ID: uuid.New(), Title: "r"}}

	_, err := svc.Update(context.Background(), course.ID, course.Lessons[0].ID, uuid.New(),
		&model.UpdateResourceForm{Title: strptr("x")}, nil, nil)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
}

func TestResourceDeleteQueuesStoredBinaries(t *testing.T) {
	store, _, orphans, svc, course := newResourceFixture(t, 1)
	imgKey := "a/b/png/img.png"
	vidKey := "a/b/mp4/vid.mp4"
	existing := model.Resource{
		ID:       uuid.New(),
		Title:    "Lecture 1",
		ImageURL: fakeURLPrefix + imgKey,
		VideoURL: fakeURLPrefix + vidKey,
	}
	store.courses[course.ID].Lessons[0].Resources = []model.Resource{existing}

	removed, err := svc.Delete(context.Background(), course.ID, course.Lessons[0].ID, existing.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.ID != existing.ID {
		t.Error("returned resource is not the removed one")
	}
	if len(store.courses[course.ID].Lessons[0].Resources) != 0 {
		t.Error("resource still present after delete")
	}
	if len(orphans.keys) != 2 || orphans.keys[0] != imgKey || orphans.keys[1] != vidKey {
		t.Errorf("orphan keys = %v, want [%q %q]", orphans.keys, imgKey, vidKey)
	}
}

func TestResourceUpdateIsScopedToItsCourse(t *testing.T) {
	store, _, _, svc, courseA := newResourceFixture(t, 1)
	courseB := seedCourse(store, 1)

	// Both courses carry a same-titled lesson with a same-titled
	// resource; only ids tell them apart.
	resA := model.Resource{ID: uuid.New(), Title: "Notes", LecNotes: "original"}
	resB := model.Resource{ID: uuid.New(), Title: "Notes", LecNotes: "original"}
	store.courses[courseA.ID].Lessons[0].Resources = []model.Resource{resA}
	store.courses[courseB.ID].Lessons[0].Resources = []model.Resource{resB}

	updated, err := svc.Update(context.Background(), courseA.ID, courseA.Lessons[0].ID, resA.ID,
		&model.UpdateResourceForm{LecNotes: strptr("edited")}, nil, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.LecNotes != "edited" {
		t.Errorf("lecNotes = %q, want edited", updated.LecNotes)
	}

	twin := store.courses[courseB.ID].Lessons[0].Resources[0]
	if twin.LecNotes != "original" || twin.Title != "Notes" {
		t.Errorf("twin resource in the other course changed: %+v", twin)
	}

	// Addressing the twin through the wrong course resolves nothing.
	_, err = svc.Update(context.Background(), courseA.ID, courseA.Lessons[0].ID, resB.ID,
		&model.UpdateResourceForm{LecNotes: strptr("edited")}, nil, nil)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
}
