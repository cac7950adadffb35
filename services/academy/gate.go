package academy

import (
	"sort"

	"coachhub/models"
)

// BuildCurriculum orders a course's phases and lessons and marks what caller may open.
// A phase is open when the caller's tier ranks at least its required tier and every
// lesson of the previous phase is complete. A phase without lessons counts as complete.
func BuildCurriculum(courseID string, phases []models.Phase, lessons []models.Lesson, progress []models.LessonProgress, caller models.Caller) models.CurriculumView {
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Order < phases[j].Order })
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })

	done := make(map[string]bool, len(progress))
	for _, p := range progress {
		done[p.LessonID] = true
	}
	byPhase := make(map[string][]models.Lesson)
	for _, l := range lessons {
		byPhase[l.PhaseID] = append(byPhase[l.PhaseID], l)
	}

	view := models.CurriculumView{CourseID: courseID, Phases: make([]models.PhaseView, 0, len(phases))}
	previousComplete := true
	rank := models.TierRank(caller.Tier)

	for _, ph := range phases {
		pv := models.PhaseView{Phase: ph, Complete: true, Lessons: []models.LessonView{}}
		for _, l := range byPhase[ph.ID] {
			pv.Lessons = append(pv.Lessons, models.LessonView{Lesson: l, Completed: done[l.ID]})
			if !done[l.ID] {
				pv.Complete = false
			}
		}
		switch {
		case rank < models.TierRank(ph.RequiredTier):
			pv.Locked, pv.LockReason = true, models.LockReasonTier
		case !previousComplete:
			pv.Locked, pv.LockReason = true, models.LockReasonPreviousPhase
		}
		previousComplete = pv.Complete
		view.Phases = append(view.Phases, pv)
	}
	return view
}

func phaseIndex(view models.CurriculumView, phaseID string) int {
	for i, p := range view.Phases {
		if p.ID == phaseID {
			return i
		}
	}
	return -1
}
