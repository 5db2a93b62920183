package authz

import "github.com/craftedu/coursecraft-backend/internal/model"

// Operation identifies a kind of mutating operation for capability checks.
type Operation string

const (
	OpCourseWrite   Operation = "courses:write"
	OpCourseApprove Operation = "courses:approve"
	OpLessonWrite   Operation = "lessons:write"
	OpResourceWrite Operation = "resources:write"
	OpQuizWrite     Operation = "quizzes:write"
)

// Policy is a pure allow/deny decision from caller role and operation
// kind. It is injected at the transport boundary so the mutation engine
// stays framework-free.
type Policy func(role model.Role, op Operation) bool

// DefaultPolicy grants instructors every authoring operation, admins
// everything including approval, and students nothing.
func DefaultPolicy() Policy {
	instructorOps := map[Operation]bool{
		OpCourseWrite:   true,
		OpLessonWrite:   true,
		OpResourceWrite: true,
		OpQuizWrite:     true,
	}

	return func(role model.Role, op Operation) bool {
		switch role {
		case model.RoleAdmin:
			return true
		case model.RoleInstructor:
			return instructorOps[op]
		default:
			return false
		}
	}
}
