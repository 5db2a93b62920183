package service

import (
	"context"
	"errors"
	"testing"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/repository"
	"github.com/google/uuid"
)

func TestCourseCreateStartsEmpty(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())

	course, err := svc.Create(context.Background(), &model.CreateCourseRequest{
		Title:       "Go Concurrency",
		Description: "Channels and friends",
		Instructor:  "Rob",
		Price:       floatptr(0),
		Duration:    "4 weeks",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
	if course.Price != 0 {
		t.Errorf("price = %v, want 0", course.Price)
	}
	if course.IsApproved || course.IsRejected {
		t.Error("new course must start unapproved and unrejected")
	}
	if course.Lessons == nil || len(course.Lessons) != 0 {
		t.Errorf("lessons = %v, want empty non-nil slice", course.Lessons)
	}
}

func TestCourseUpdateSparseMerge(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 2)

	// Only price and title supplied; price is an explicit zero.
	updated, err := svc.Update(context.Background(), seeded.ID, &model.UpdateCourseRequest{
		Title: strptr("Renamed"),
		Price: floatptr(0),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", updated.Title)
	}
	if updated.Price != 0 {
		t.Errorf("price = %v, want explicit 0", updated.Price)
	}
	// Omitted fields keep their stored values.
	if updated.Description != seeded.Description {
		t.Errorf("description changed: %q", updated.Description)
	}
	if updated.Instructor != seeded.Instructor {
		t.Errorf("instructor changed: %q", updated.Instructor)
	}
	if len(updated.Lessons) != 2 {
		t.Errorf("lessons = %d, want the stored 2", len(updated.Lessons))
	}
}

func TestCourseUpdateAllowsExplicitFalse(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 0)
	store.courses[seeded.ID].IsApproved = true

	updated, err := svc.Update(context.Background(), seeded.ID, &model.UpdateCourseRequest{
		IsApproved: boolptr(false),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsApproved {
		t.Error("explicit false must overwrite the stored true")
	}
}

func TestCourseUpdateNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())

	_, err := svc.Update(context.Background(), uuid.New(), &model.UpdateCourseRequest{
		Title: strptr("nope"),
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseUpdateSaveConflict(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 0)
	store.failSave = repository.ErrRevisionConflict

	_, err := svc.Update(context.Background(), seeded.ID, &model.UpdateCourseRequest{
		Title: strptr("racing"),
	})
	if !errors.Is(err, ErrSaveConflict) {
		t.Fatalf("err = %v, want ErrSaveConflict", err)
	}
}

func TestCourseSetApproval(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 0)

	updated, err := svc.SetApproval(context.Background(), seeded.ID, &model.ApprovalRequest{
		IsApproved: boolptr(true),
	})
	if err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	if !updated.IsApproved {
		t.Error("expected approved")
	}
	if updated.IsRejected {
		t.Error("rejection flag must be untouched")
	}
}

func TestCourseListNeverNil(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())

	courses, err := svc.ListByInstructor(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByInstructor: %v", err)
	}
	if courses == nil {
		t.Fatal("empty result must be a non-nil slice")
	}
	if len(courses) != 0 {
		t.Fatalf("len = %d, want 0", len(courses))
	}
}

func TestCourseListByApproval(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	a := seedCourse(store, 0)
	b := seedCourse(store, 0)
	store.courses[b.ID].IsApproved = true

	approved, err := svc.ListByApproval(context.Background(), true)
	if err != nil {
		t.Fatalf("ListByApproval: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != b.ID {
		t.Fatalf("approved = %v, want just %s", approved, b.ID)
	}

	pending, err := svc.ListByApproval(context.Background(), false)
	if err != nil {
		t.Fatalf("ListByApproval: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != a.ID {
		t.Fatalf("pending = %v, want just %s", pending, a.ID)
	}
}

func TestCourseDeleteReturnsRemovedState(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 3)

	removed, err := svc.Delete(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(removed.Lessons) != 3 {
		t.Errorf("removed lessons = %d, want 3", len(removed.Lessons))
	}

	if _, err := svc.GetByID(context.Background(), seeded.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("post-delete read err = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseDeleteQueuesSubtreeBinaries(t *testing.T) {
	store := newFakeStore()
	orphans := &fakeOrphanQueue{}
	svc := NewCourseService(store, &fakeUploader{}, orphans, testLogger())
	seeded := seedCourse(store, 2)

	imgKey := "c/1/png/x.png"
	vidKey := "c/2/mp4/y.mp4"
	store.courses[seeded.ID].Lessons[0].Resources = []model.Resource{
		{ID: uuid.New(), Title: "Diagram", ImageURL: fakeURLPrefix + imgKey},
		{ID: uuid.New(), Title: "Notes only", LecNotes: "text"},
	}
	store.courses[seeded.ID].Lessons[1].Resources = []model.Resource{
		{ID: uuid.New(), Title: "Lecture", VideoURL: fakeURLPrefix + vidKey},
	}

	if _, err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(orphans.keys) != 2 || orphans.keys[0] != imgKey || orphans.keys[1] != vidKey {
		t.Errorf("orphan keys = %v, want [%q %q]", orphans.keys, imgKey, vidKey)
	}
}

func TestCourseUpdateEmptyRequestIsNoOp(t *testing.T) {
	store := newFakeStore()
	svc := NewCourseService(store, &fakeUploader{}, &fakeOrphanQueue{}, testLogger())
	seeded := seedCourse(store, 2)
	store.courses[seeded.ID].IsApproved = true

	updated, err := svc.Update(context.Background(), seeded.ID, &model.UpdateCourseRequest{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != seeded.Title || updated.Description != seeded.Description ||
		updated.Instructor != seeded.Instructor || updated.Duration != seeded.Duration {
		t.Error("text fields changed on an empty update")
	}
	if updated.Price != seeded.Price {
		t.Errorf("price = %v, want %v", updated.Price, seeded.Price)
	}
	if !updated.IsApproved || updated.IsRejected {
		t.Error("flags changed on an empty update")
	}
	if len(updated.Lessons) != len(seeded.Lessons) {
		t.Errorf("lessons = %d, want %d", len(updated.Lessons), len(seeded.Lessons))
	}
}
