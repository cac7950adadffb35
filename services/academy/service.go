package academy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachhub/database"
	academyRepo "coachhub/database/repository/academy"
	"coachhub/models"

	"go.uber.org/zap"
)

var (
	ErrLocked       = errors.New("phase is locked")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("authentication required")
)

type AcademyService interface {
	GetCurriculum(ctx context.Context, caller models.Caller, courseID string) (*models.CurriculumView, error)
	CompleteLesson(ctx context.Context, caller models.Caller, lessonID string) (*models.LessonCompletion, error)
}

type DefaultAcademyService struct {
	Repo   academyRepo.AcademyRepository
	Logger *zap.Logger
	Clock  func() time.Time
}

func (s *DefaultAcademyService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultAcademyService) GetCurriculum(ctx context.Context, caller models.Caller, courseID string) (*models.CurriculumView, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	view, err := s.load(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *DefaultAcademyService) CompleteLesson(ctx context.Context, caller models.Caller, lessonID string) (*models.LessonCompletion, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	lesson, err := s.Repo.GetLesson(ctx, lessonID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("lesson %s: %w", lessonID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	before, err := s.load(ctx, caller, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	idx := phaseIndex(before, lesson.PhaseID)
	if idx < 0 {
		return nil, fmt.Errorf("phase %s: %w", lesson.PhaseID, ErrNotFound)
	}
	if before.Phases[idx].Locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, before.Phases[idx].LockReason)
	}

	err = s.Repo.MarkLessonComplete(ctx, models.LessonProgress{
		UserID:      caller.UserID,
		CourseID:    lesson.CourseID,
		PhaseID:     lesson.PhaseID,
		LessonID:    lesson.ID,
		CompletedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	after, err := s.load(ctx, caller, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	result := &models.LessonCompletion{
		LessonID:       lesson.ID,
		PhaseCompleted: after.Phases[idx].Complete,
	}
	if next := idx + 1; next < len(after.Phases) {
		result.NextPhaseUnlocked = before.Phases[next].Locked && !after.Phases[next].Locked
	}
	if s.Logger != nil {
		s.Logger.Info("Lesson completed",
			zap.String("userID", caller.UserID), zap.String("lessonID", lesson.ID),
			zap.Bool("phaseCompleted", result.PhaseCompleted), zap.Bool("nextPhaseUnlocked", result.NextPhaseUnlocked))
	}
	return result, nil
}

func (s *DefaultAcademyService) load(ctx context.Context, caller models.Caller, courseID string) (models.CurriculumView, error) {
	phases, err := s.Repo.ListPhases(ctx, courseID)
	if err != nil {
		return models.CurriculumView{}, err
	}
	if len(phases) == 0 {
		return models.CurriculumView{}, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}
	lessons, err := s.Repo.ListLessons(ctx, courseID)
	if err != nil {
		return models.CurriculumView{}, err
	}
	progress, err := s.Repo.ListProgress(ctx, caller.UserID, courseID)
	if err != nil {
		return models.CurriculumView{}, err
	}
	return BuildCurriculum(courseID, phases, lessons, progress, caller), nil
}
