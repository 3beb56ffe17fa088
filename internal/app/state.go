// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"github.com/pdiddy/edustream/pkg/types"
)

// TutorState is a read-only view of the active conversation.
type TutorState struct {
	ID            string              `json:"id"`
	CourseTitle   string              `json:"courseTitle"`
	LessonContext string              `json:"lessonContext,omitempty"`
	Messages      []types.ChatMessage `json:"messages"`
	Busy          bool                `json:"busy"`
}

// State is a read-only view of the whole app.
type State struct {
	View          types.View    `json:"view"`
	Activity      Activity      `json:"activity"`
	Generating    bool          `json:"generating"`
	Selected      *types.Course `json:"selectedCourse,omitempty"`
	CurrentLesson string        `json:"currentLesson,omitempty"`
	Notice        string        `json:"notice,omitempty"`
	Enrolled      []string      `json:"enrolled"`
	Tutor         *TutorState   `json:"tutor,omitempty"`
}

// LearningEntry is one enrolled course on the learning dashboard.
type LearningEntry struct {
	Course     types.Course `json:"course"`
	NextLesson string       `json:"nextLesson"`
}

// DefaultNextLesson labels courses without a second lesson.
const DefaultNextLesson = "Next Lesson"

// State returns a consistent snapshot.
func (a *App) State() State {
	a.mu.Lock()
	s := State{
		View:          a.view,
		Activity:      a.activity,
		Generating:    a.activity == ActivityGenerating,
		CurrentLesson: a.currentLesson,
		Notice:        a.notice,
	}
	if a.selected != nil {
		c := *a.selected
		s.Selected = &c
	}
	conv := a.conversation
	a.mu.Unlock()

	s.Enrolled = a.enrollments.IDs()
	if conv != nil {
		s.Tutor = &TutorState{
			ID:            conv.ID(),
			CourseTitle:   conv.CourseTitle(),
			LessonContext: conv.LessonContext(),
			Messages:      conv.Transcript(),
			Busy:          conv.Busy(),
		}
	}
	return s
}

// View returns the active view.
func (a *App) View() types.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Generating reports whether a synthesis is in flight.
func (a *App) Generating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activity == ActivityGenerating
}

// Selected returns the selected course, if any.
func (a *App) Selected() (types.Course, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selected == nil {
		return types.Course{}, false
	}
	return *a.selected, true
}

// Courses returns the catalog in order, newest generated first.
func (a *App) Courses() []types.Course {
	return a.store.All()
}

// Course returns one catalog course.
func (a *App) Course(id string) (types.Course, error) {
	return a.store.Get(id)
}

// IsEnrolled reports enrollment membership.
func (a *App) IsEnrolled(id string) bool {
	return a.enrollments.Has(id)
}

// Tutor returns the active conversation, or nil when no course is open.
func (a *App) Tutor() *TutorState {
	return a.State().Tutor
}

// MyLearning lists enrolled courses in catalog order.
func (a *App) MyLearning() []LearningEntry {
	out := []LearningEntry{}
	for _, c := range a.store.All() {
		if !a.enrollments.Has(c.ID) {
			continue
		}
		next := DefaultNextLesson
		if l, ok := c.NextLesson(); ok {
			next = l.Title
		}
		out = append(out, LearningEntry{Course: c, NextLesson: next})
	}
	return out
}
