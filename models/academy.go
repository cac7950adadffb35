package models

import "time"

type Course struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}

// Phase is an ordered stage of a course, gated by tier and by the previous phase.
type Phase struct {
	ID           string `bson:"id" json:"id"`
	CourseID     string `bson:"course_id" json:"courseId"`
	Title        string `bson:"title" json:"title"`
	Order        int    `bson:"order" json:"order"`
	RequiredTier string `bson:"required_tier" json:"requiredTier"`
}

type Lesson struct {
	ID       string `bson:"id" json:"id"`
	CourseID string `bson:"course_id" json:"courseId"`
	PhaseID  string `bson:"phase_id" json:"phaseId"`
	Title    string `bson:"title" json:"title"`
	Order    int    `bson:"order" json:"order"`
}

type LessonProgress struct {
	UserID      string    `bson:"user_id" json:"userId"`
	CourseID    string    `bson:"course_id" json:"courseId"`
	PhaseID     string    `bson:"phase_id" json:"phaseId"`
	LessonID    string    `bson:"lesson_id" json:"lessonId"`
	CompletedAt time.Time `bson:"completed_at" json:"completedAt"`
}

const (
	LockReasonTier          = "tier"
	LockReasonPreviousPhase = "previous_phase"
)

type LessonView struct {
	Lesson
	Completed bool `json:"completed"`
}

type PhaseView struct {
	Phase
	Locked     bool         `json:"locked"`
	LockReason string       `json:"lockReason,omitempty"`
	Complete   bool         `json:"complete"`
	Lessons    []LessonView `json:"lessons"`
}

type CurriculumView struct {
	CourseID string      `json:"courseId"`
	Phases   []PhaseView `json:"phases"`
}

type LessonCompletion struct {
	LessonID          string `json:"lessonId"`
	PhaseCompleted    bool   `json:"phaseCompleted"`
	NextPhaseUnlocked bool   `json:"nextPhaseUnlocked"`
}
