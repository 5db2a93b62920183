package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage-level sentinel errors.
var (
	// ErrNotFound is returned when no course row matches the given id.
	ErrNotFound = errors.New("course not found")
	// ErrRevisionConflict is returned when a save loses the race against a
	// concurrent writer (the stored revision no longer matches).
	ErrRevisionConflict = errors.New("course revision conflict")
)

const courseColumns = `id, title, description, instructor, price, duration,
	       is_approved, is_rejected, lessons, revision, created_at, updated_at`

// CourseRepository is the aggregate store for courses. A course row carries
// the entire lesson tree in a single JSONB column, so every load and save
// moves the whole aggregate at once.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course aggregate and fills the store-assigned fields.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	lessons, err := marshalLessons(c.Lessons)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, instructor, price, duration,
		                      is_approved, is_rejected, lessons)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, revision, created_at, updated_at`,
		c.Title, c.Description, c.Instructor, c.Price, c.Duration,
		c.IsApproved, c.IsRejected, lessons,
	).Scan(&c.ID, &c.Revision, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID loads the full aggregate by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)

	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Save replaces the whole aggregate state. The update is guarded by the
// revision loaded with the course: a concurrent writer that saved first
// makes this call fail with ErrRevisionConflict instead of silently
// clobbering its changes. On success the in-memory revision is advanced.
func (r *CourseRepository) Save(ctx context.Context, c *model.Course) error {
	lessons, err := marshalLessons(c.Lessons)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, description = $2, instructor = $3, price = $4,
		     duration = $5, is_approved = $6, is_rejected = $7, lessons = $8,
		     revision = revision + 1, updated_at = NOW()
		 WHERE id = $9 AND revision = $10`,
		c.Title, c.Description, c.Instructor, c.Price, c.Duration,
		c.IsApproved, c.IsRejected, lessons, c.ID, c.Revision)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		// Either the row vanished or someone else saved in between.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, c.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrRevisionConflict
	}

	c.Revision++
	return nil
}

// Delete removes the aggregate and returns the removed state so callers can
// echo it back.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM courses WHERE id = $1 RETURNING `+courseColumns, id)

	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every course, oldest first.
func (r *CourseRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	return r.list(ctx, ``)
}

// ListByApproval returns courses filtered on the approval flag.
func (r *CourseRepository) ListByApproval(ctx context.Context, approved bool) ([]model.Course, error) {
	return r.list(ctx, `WHERE is_approved = $1`, approved)
}

// ListByRejection returns courses filtered on the rejection flag.
func (r *CourseRepository) ListByRejection(ctx context.Context, rejected bool) ([]model.Course, error) {
	return r.list(ctx, `WHERE is_rejected = $1`, rejected)
}

// ListByInstructor returns courses by exact instructor name.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructor string) ([]model.Course, error) {
	return r.list(ctx, `WHERE instructor = $1`, instructor)
}

func (r *CourseRepository) list(ctx context.Context, where string, args ...interface{}) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses `
	if where != "" {
		query += where + " "
	}
	query += `ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// scanCourse reads one course row, decoding the JSONB lesson tree.
func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	var lessons []byte

	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Instructor, &c.Price,
		&c.Duration, &c.IsApproved, &c.IsRejected, &lessons, &c.Revision,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(lessons) > 0 {
		if err := json.Unmarshal(lessons, &c.Lessons); err != nil {
			return nil, fmt.Errorf("decode lessons: %w", err)
		}
	}
	if c.Lessons == nil {
		c.Lessons = []model.Lesson{}
	}
	return c, nil
}

func marshalLessons(lessons []model.Lesson) ([]byte, error) {
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	data, err := json.Marshal(lessons)
	if err != nil {
		return nil, fmt.Errorf("encode lessons: %w", err)
	}
	return data, nil
}
