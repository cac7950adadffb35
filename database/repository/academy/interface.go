package academyRepo

import (
	"context"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AcademyRepository interface {
	ListPhases(ctx context.Context, courseID string) ([]models.Phase, error)
	ListLessons(ctx context.Context, courseID string) ([]models.Lesson, error)
	GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error)
	ListProgress(ctx context.Context, userID, courseID string) ([]models.LessonProgress, error)
	// MarkLessonComplete records p once; repeated calls keep the first completion time.
	MarkLessonComplete(ctx context.Context, p models.LessonProgress) error
	EnsureIndexes(ctx context.Context) error
}

type mongoAcademyRepo struct {
	phaseColl    *mongo.Collection
	lessonColl   *mongo.Collection
	progressColl *mongo.Collection
}

func NewMongoAcademyRepo(db *mongo.Database) AcademyRepository {
	return &mongoAcademyRepo{
		phaseColl:    db.Collection("academy_phases"),
		lessonColl:   db.Collection("academy_lessons"),
		progressColl: db.Collection("academy_progress"),
	}
}
