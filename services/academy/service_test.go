package academy

import (
	"context"
	"testing"

	"coachhub/database"
	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	phases   []models.Phase
	lessons  []models.Lesson
	progress []models.LessonProgress
}

func (f *fakeRepo) ListPhases(_ context.Context, courseID string) ([]models.Phase, error) {
	var out []models.Phase
	for _, p := range f.phases {
		if p.CourseID == courseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLessons(_ context.Context, courseID string) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetLesson(_ context.Context, lessonID string) (*models.Lesson, error) {
	for _, l := range f.lessons {
		if l.ID == lessonID {
			l := l
			return &l, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeRepo) ListProgress(_ context.Context, userID, courseID string) ([]models.LessonProgress, error) {
	var out []models.LessonProgress
	for _, p := range f.progress {
		if p.UserID == userID && p.CourseID == courseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkLessonComplete(_ context.Context, p models.LessonProgress) error {
	for _, existing := range f.progress {
		if existing.UserID == p.UserID && existing.LessonID == p.LessonID {
			return nil
		}
	}
	f.progress = append(f.progress, p)
	return nil
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }

func course() *fakeRepo {
	return &fakeRepo{
		phases: []models.Phase{
			{ID: "p2", CourseID: "c1", Title: "Footwork", Order: 2, RequiredTier: models.TierFree},
			{ID: "p1", CourseID: "c1", Title: "Grip", Order: 1, RequiredTier: models.TierFree},
			{ID: "p3", CourseID: "c1", Title: "Match play", Order: 3, RequiredTier: models.TierElite},
		},
		lessons: []models.Lesson{
			{ID: "l1", CourseID: "c1", PhaseID: "p1", Order: 1},
			{ID: "l2", CourseID: "c1", PhaseID: "p1", Order: 2},
			{ID: "l3", CourseID: "c1", PhaseID: "p2", Order: 1},
			{ID: "l4", CourseID: "c1", PhaseID: "p3", Order: 1},
		},
	}
}

var member = models.Caller{UserID: "user-1", Tier: models.TierMember}

func TestBuildCurriculum_Gating(t *testing.T) {
	repo := course()

	view := BuildCurriculum("c1", repo.phases, repo.lessons, nil, member)
	require.Len(t, view.Phases, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{view.Phases[0].ID, view.Phases[1].ID, view.Phases[2].ID})

	assert.False(t, view.Phases[0].Locked)
	assert.True(t, view.Phases[1].Locked)
	assert.Equal(t, models.LockReasonPreviousPhase, view.Phases[1].LockReason)
	assert.True(t, view.Phases[2].Locked)
	assert.Equal(t, models.LockReasonTier, view.Phases[2].LockReason)

	progress := []models.LessonProgress{{LessonID: "l1"}, {LessonID: "l2"}}
	view = BuildCurriculum("c1", repo.phases, repo.lessons, progress, member)
	assert.True(t, view.Phases[0].Complete)
	assert.False(t, view.Phases[1].Locked)
}

func TestBuildCurriculum_EmptyPhaseCountsAsComplete(t *testing.T) {
	phases := []models.Phase{
		{ID: "intro", Order: 1},
		{ID: "drills", Order: 2},
	}
	lessons := []models.Lesson{{ID: "d1", PhaseID: "drills"}}

	view := BuildCurriculum("c1", phases, lessons, nil, models.Caller{UserID: "u"})
	assert.True(t, view.Phases[0].Complete)
	assert.NotNil(t, view.Phases[0].Lessons)
	assert.False(t, view.Phases[1].Locked)
}

func TestCompleteLesson(t *testing.T) {
	repo := course()
	svc := &DefaultAcademyService{Repo: repo}
	ctx := context.Background()

	_, err := svc.CompleteLesson(ctx, member, "l3")
	assert.ErrorIs(t, err, ErrLocked)

	res, err := svc.CompleteLesson(ctx, member, "l1")
	require.NoError(t, err)
	assert.False(t, res.PhaseCompleted)
	assert.False(t, res.NextPhaseUnlocked)

	res, err = svc.CompleteLesson(ctx, member, "l2")
	require.NoError(t, err)
	assert.True(t, res.PhaseCompleted)
	assert.True(t, res.NextPhaseUnlocked)

	// Idempotent.
	res, err = svc.CompleteLesson(ctx, member, "l2")
	require.NoError(t, err)
	assert.True(t, res.PhaseCompleted)
	assert.False(t, res.NextPhaseUnlocked)
	assert.Len(t, repo.progress, 2)

	res, err = svc.CompleteLesson(ctx, member, "l3")
	require.NoError(t, err)
	assert.True(t, res.PhaseCompleted)
	assert.False(t, res.NextPhaseUnlocked, "match play still needs elite tier")

	_, err = svc.CompleteLesson(ctx, member, "l4")
	assert.ErrorIs(t, err, ErrLocked)
}

func TestGetCurriculum_Errors(t *testing.T) {
	svc := &DefaultAcademyService{Repo: course()}

	_, err := svc.GetCurriculum(context.Background(), models.Caller{}, "c1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetCurriculum(context.Background(), member, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CompleteLesson(context.Background(), member, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
