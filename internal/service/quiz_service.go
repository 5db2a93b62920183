package service

import (
	"context"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// QuizService mutates quizzes and their questions inside lessons.
type QuizService struct {
	store CourseStore
	log   zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(store CourseStore, log zerolog.Logger) *QuizService {
	return &QuizService{
		store: store,
		log:   log.With().Str("component", "quiz_service").Logger(),
	}
}

// CreateQuiz appends a quiz with no questions to a lesson.
func (s *QuizService) CreateQuiz(ctx context.Context, courseID, lessonID uuid.UUID, req *model.CreateQuizRequest) (*model.Quiz, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	quiz := model.Quiz{
		ID:        uuid.New(),
		Title:     req.Title,
		Questions: []model.QuizQuestion{},
	}
	lesson.Quizzes = append(lesson.Quizzes, quiz)

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}

	s.log.Info().
		Str("course_id", courseID.String()).
		Str("quiz_id", quiz.ID.String()).
		Msg("Quiz created")
	return &quiz, nil
}

// UpdateQuiz sparse-merges quiz fields.
func (s *QuizService) UpdateQuiz(ctx context.Context, courseID, lessonID, quizID uuid.UUID, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := findQuiz(lesson, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return quiz, nil
}

// DeleteQuiz removes a quiz and all its questions.
func (s *QuizService) DeleteQuiz(ctx context.Context, courseID, lessonID, quizID uuid.UUID) (*model.Quiz, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}

	removed, err := removeQuiz(lesson, quizID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return &removed, nil
}

// AddQuestion appends a question to a quiz. The correct-answer index must
// point into the supplied options.
func (s *QuizService) AddQuestion(ctx context.Context, courseID, lessonID, quizID uuid.UUID, req *model.CreateQuizQuestionRequest) (*model.QuizQuestion, error) {
	if *req.CorrectAnswerIndex >= len(req.Options) {
		return nil, ErrAnswerIndexOutOfRange
	}

	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := findQuiz(lesson, quizID)
	if err != nil {
		return nil, err
	}

	question := model.QuizQuestion{
		ID:                 uuid.New(),
		Question:           req.Question,
		Options:            req.Options,
		CorrectAnswerIndex: *req.CorrectAnswerIndex,
	}
	quiz.Questions = append(quiz.Questions, question)

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return &question, nil
}

// UpdateQuestion sparse-merges question fields. The merged correct-answer
// index is validated against the merged options, so shrinking the options
// below the stored index is rejected.
func (s *QuizService) UpdateQuestion(ctx context.Context, courseID, lessonID, quizID, questionID uuid.UUID, req *model.UpdateQuizQuestionRequest) (*model.QuizQuestion, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := findQuiz(lesson, quizID)
	if err != nil {
		return nil, err
	}
	question, err := findQuestion(quiz, questionID)
	if err != nil {
		return nil, err
	}

	options := question.Options
	if req.Options != nil {
		options = *req.Options
	}
	index := question.CorrectAnswerIndex
	if req.CorrectAnswerIndex != nil {
		index = *req.CorrectAnswerIndex
	}
	if index >= len(options) {
		return nil, ErrAnswerIndexOutOfRange
	}

	if req.Question != nil {
		question.Question = *req.Question
	}
	question.Options = options
	question.CorrectAnswerIndex = index

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return question, nil
}

// DeleteQuestion removes a question; sibling questions keep their order.
func (s *QuizService) DeleteQuestion(ctx context.Context, courseID, lessonID, quizID, questionID uuid.UUID) (*model.QuizQuestion, error) {
	course, err := s.store.GetByID(ctx, courseID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	lesson, err := findLesson(course, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := findQuiz(lesson, quizID)
	if err != nil {
		return nil, err
	}

	removed, err := removeQuestion(quiz, questionID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, mapStoreErr(err)
	}
	return &removed, nil
}
