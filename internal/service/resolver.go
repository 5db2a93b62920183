package service

import (
	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/google/uuid"
)

// Path resolution over the in-memory aggregate. Each find* walks one
// ownership hop by exact id match and returns a pointer into the parent's
// slice, so callers can mutate the located entity in place before the
// aggregate is saved. Resolution never mutates anything itself.
//
// Sub-entity ids are unique within their parent collection only, so scan
// order is irrelevant.

func findLesson(course *model.Course, id uuid.UUID) (*model.Lesson, error) {
	for i := range course.Lessons {
		if course.Lessons[i].ID == id {
			return &course.Lessons[i], nil
		}
	}
	return nil, ErrLessonNotFound
}

func findResource(lesson *model.Lesson, id uuid.UUID) (*model.Resource, error) {
	for i := range lesson.Resources {
		if lesson.Resources[i].ID == id {
			return &lesson.Resources[i], nil
		}
	}
	return nil, ErrResourceNotFound
}

func findQuiz(lesson *model.Lesson, id uuid.UUID) (*model.Quiz, error) {
	for i := range lesson.Quizzes {
		if lesson.Quizzes[i].ID == id {
			return &lesson.Quizzes[i], nil
		}
	}
	return nil, ErrQuizNotFound
}

func findQuestion(quiz *model.Quiz, id uuid.UUID) (*model.QuizQuestion, error) {
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == id {
			return &quiz.Questions[i], nil
		}
	}
	return nil, ErrQuestionNotFound
}

// The remove* helpers detach an entity by id, preserving the relative
// order of its siblings. They return the removed value for echoing back.

func removeLesson(course *model.Course, id uuid.UUID) (model.Lesson, error) {
	for i := range course.Lessons {
		if course.Lessons[i].ID == id {
			removed := course.Lessons[i]
			course.Lessons = append(course.Lessons[:i], course.Lessons[i+1:]...)
			return removed, nil
		}
	}
	return model.Lesson{}, ErrLessonNotFound
}

func removeResource(lesson *model.Lesson, id uuid.UUID) (model.Resource, error) {
	for i := range lesson.Resources {
		if lesson.Resources[i].ID == id {
			removed := lesson.Resources[i]
			lesson.Resources = append(lesson.Resources[:i], lesson.Resources[i+1:]...)
			return removed, nil
		}
	}
	return model.Resource{}, ErrResourceNotFound
}

func removeQuiz(lesson *model.Lesson, id uuid.UUID) (model.Quiz, error) {
	for i := range lesson.Quizzes {
		if lesson.Quizzes[i].ID == id {
			removed := lesson.Quizzes[i]
			lesson.Quizzes = append(lesson.Quizzes[:i], lesson.Quizzes[i+1:]...)
			return removed, nil
		}
	}
	return model.Quiz{}, ErrQuizNotFound
}

func removeQuestion(quiz *model.Quiz, id uuid.UUID) (model.QuizQuestion, error) {
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == id {
			removed := quiz.Questions[i]
			quiz.Questions = append(quiz.Questions[:i], quiz.Questions[i+1:]...)
			return removed, nil
		}
	}
	return model.QuizQuestion{}, ErrQuestionNotFound
}
