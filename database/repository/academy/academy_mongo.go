package academyRepo

import (
	"context"
	"fmt"
	"time"

	"coachhub/database"
	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAcademyRepo) ListPhases(ctx context.Context, courseID string) ([]models.Phase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.phaseColl.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching phases: %w", err)
	}
	defer cursor.Close(ctx)

	phases := []models.Phase{}
	if err := cursor.All(ctx, &phases); err != nil {
		return nil, fmt.Errorf("error decoding phases: %w", err)
	}
	return phases, nil
}

func (r *mongoAcademyRepo) ListLessons(ctx context.Context, courseID string) ([]models.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "phase_id", Value: 1}, {Key: "order", Value: 1}})
	cursor, err := r.lessonColl.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}
	defer cursor.Close(ctx)

	lessons := []models.Lesson{}
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("error decoding lessons: %w", err)
	}
	return lessons, nil
}

func (r *mongoAcademyRepo) GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var l models.Lesson
	if err := r.lessonColl.FindOne(ctx, bson.M{"id": lessonID}).Decode(&l); err != nil {
		return nil, database.Translate(err)
	}
	return &l, nil
}

func (r *mongoAcademyRepo) ListProgress(ctx context.Context, userID, courseID string) ([]models.LessonProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.progressColl.Find(ctx, bson.M{"user_id": userID, "course_id": courseID})
	if err != nil {
		return nil, fmt.Errorf("error fetching progress: %w", err)
	}
	defer cursor.Close(ctx)

	progress := []models.LessonProgress{}
	if err := cursor.All(ctx, &progress); err != nil {
		return nil, fmt.Errorf("error decoding progress: %w", err)
	}
	return progress, nil
}

func (r *mongoAcademyRepo) MarkLessonComplete(ctx context.Context, p models.LessonProgress) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": p.UserID, "lesson_id": p.LessonID}
	update := bson.M{"$setOnInsert": p}
	if _, err := r.progressColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("error recording lesson progress: %w", err)
	}
	return nil
}

func (r *mongoAcademyRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.phaseColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetName("course_order_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create phase index: %w", err)
	}
	if _, err := r.lessonColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "phase_id", Value: 1}}, Options: options.Index().SetName("course_phase_idx")},
	}); err != nil {
		return fmt.Errorf("failed to create lesson indexes: %w", err)
	}
	if _, err := r.progressColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "lesson_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user_lesson"),
	}); err != nil {
		return fmt.Errorf("failed to create progress index: %w", err)
	}
	return nil
}
