package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/craftedu/coursecraft-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// fakeCourseStore is an in-memory CourseStore. GetByID hands out deep
// copies so tests exercise the real load-modify-save cycle instead of
// mutating shared state. Setting failSave forces the next Save to fail.
type fakeCourseStore struct {
	courses  map[uuid.UUID]*model.Course
	failSave error
	saves    int
}

func newFakeStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uuid.UUID]*model.Course)}
}

func (f *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Revision = 1
	f.courses[c.ID] = clone(c)
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (f *fakeCourseStore) Save(_ context.Context, c *model.Course) error {
	f.saves++
	if f.failSave != nil {
		return f.failSave
	}
	if _, ok := f.courses[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.Revision++
	f.courses[c.ID] = clone(c)
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id uuid.UUID) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.courses, id)
	return c, nil
}

func (f *fakeCourseStore) ListAll(_ context.Context) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		out = append(out, *clone(c))
	}
	return out, nil
}

func (f *fakeCourseStore) ListByApproval(_ context.Context, approved bool) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if c.IsApproved == approved {
			out = append(out, *clone(c))
		}
	}
	return out, nil
}

func (f *fakeCourseStore) ListByRejection(_ context.Context, rejected bool) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if c.IsRejected == rejected {
			out = append(out, *clone(c))
		}
	}
	return out, nil
}

func (f *fakeCourseStore) ListByInstructor(_ context.Context, instructor string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if c.Instructor == instructor {
			out = append(out, *clone(c))
		}
	}
	return out, nil
}

func clone(c *model.Course) *model.Course {
	data, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	out := &model.Course{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	// Revision is excluded from JSON; carry it over explicitly.
	out.Revision = c.Revision
	return out
}

// fakeUploader records uploads and serves URL↔key mapping with a fixed
// prefix. Setting failWith makes every Upload fail.
type fakeUploader struct {
	uploaded []string
	failWith error
}

const fakeURLPrefix = "https://files.test/bucket/"

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.uploaded = append(f.uploaded, key)
	return fakeURLPrefix + key, nil
}

func (f *fakeUploader) KeyFromURL(url string) string {
	if len(url) <= len(fakeURLPrefix) || url[:len(fakeURLPrefix)] != fakeURLPrefix {
		return ""
	}
	return url[len(fakeURLPrefix):]
}

// fakeOrphanQueue records enqueued keys.
type fakeOrphanQueue struct {
	keys []string
}

func (f *fakeOrphanQueue) Enqueue(_ context.Context, key string) error {
	f.keys = append(f.keys, key)
	return nil
}

// testLogger discards output.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// seedCourse inserts a course with the given number of lessons.
func seedCourse(store *fakeCourseStore, lessons int) *model.Course {
	course := &model.Course{
		ID:          uuid.New(),
		Title:       "Distributed Systems",
		Description: "From logical clocks to consensus",
		Instructor:  "Pat Helland",
		Price:       49.99,
		Duration:    "8 weeks",
		Lessons:     []model.Lesson{},
	}
	for i := 0; i < lessons; i++ {
		course.Lessons = append(course.Lessons, model.Lesson{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Lesson %d", i+1),
			Description: "desc",
			Resources:   []model.Resource{},
			Quizzes:     []model.Quiz{},
		})
	}
	store.courses[course.ID] = clone(course)
	course.Revision = 1
	store.courses[course.ID].Revision = 1
	return course
}

func strptr(s string) *string    { return &s }
func boolptr(b bool) *bool       { return &b }
func intptr(i int) *int          { return &i }
func floatptr(f float64) *float64 { return &f }
