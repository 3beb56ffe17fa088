// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app is the navigation state machine behind the course browser.
// It decides which screen is active and which course is selected, drives
// the generation workflow on search, owns the enrollment set, and keeps the
// tutor conversation for the course being viewed.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/internal/generate"
	"github.com/pdiddy/edustream/internal/logger"
	"github.com/pdiddy/edustream/internal/tutor"
	"github.com/pdiddy/edustream/pkg/types"
)

// GenerationFailedNotice is the user-facing message after a failed synthesis.
const GenerationFailedNotice = "Something went wrong generating that course. Please try a simpler topic!"

// ErrInvalidView is returned when navigation targets a view that cannot be
// entered directly.
var ErrInvalidView = errors.New("view cannot be entered directly")

// Activity is the busy part of the state. Only one search may be in flight.
type Activity string

const (
	ActivityIdle       Activity = "idle"
	ActivityGenerating Activity = "generating"
)

// App holds the state of one running instance.
type App struct {
	store       *catalog.Store
	enrollments *catalog.Enrollments
	gen         *generate.Workflow
	advisor     tutor.Advisor
	log         *logger.Logger

	mu            sync.Mutex
	view          types.View
	activity      Activity
	selected      *types.Course
	currentLesson string
	notice        string
	conversation  *tutor.Conversation
}

// New returns an app on the HOME view.
func New(store *catalog.Store, gen *generate.Workflow, advisor tutor.Advisor, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		store:       store,
		enrollments: catalog.NewEnrollments(),
		gen:         gen,
		advisor:     advisor,
		log:         log,
		view:        types.ViewHome,
		activity:    ActivityIdle,
	}
}

// SearchOutcome describes what Search did.
type SearchOutcome struct {
	// Accepted is false when the query was blank or a search was already
	// in flight. Nothing changed in that case.
	Accepted bool

	// Source is set when a course was selected.
	Source generate.Source
}

// Search resolves query to a course and opens it. A catalog hit opens at
// once. A miss synthesizes a course while the activity is
// ActivityGenerating and the view stays HOME; the activity returns to idle
// whatever the outcome. Failures wrap generate.ErrGenerationFailed and set
// the notice.
func (a *App) Search(ctx context.Context, query string) (SearchOutcome, error) {
	topic := strings.TrimSpace(query)
	if topic == "" {
		return SearchOutcome{}, nil
	}

	a.mu.Lock()
	if a.activity == ActivityGenerating {
		a.mu.Unlock()
		a.log.Debug("search rejected while generating", "query", topic)
		return SearchOutcome{}, nil
	}
	a.notice = ""
	if c, ok := a.gen.Lookup(topic); ok {
		a.openCourse(c)
		a.mu.Unlock()
		return SearchOutcome{Accepted: true, Source: generate.SourceCatalog}, nil
	}
	a.activity = ActivityGenerating
	a.setView(types.ViewHome)
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.activity = ActivityIdle
		a.mu.Unlock()
	}()

	// Once issued the remote call runs to completion; the API client
	// enforces the timeout.
	c, err := a.gen.Synthesize(context.WithoutCancel(ctx), topic)
	if err != nil {
		a.mu.Lock()
		a.notice = GenerationFailedNotice
		a.mu.Unlock()
		return SearchOutcome{Accepted: true}, err
	}

	a.mu.Lock()
	a.openCourse(c)
	a.mu.Unlock()
	return SearchOutcome{Accepted: true, Source: generate.SourceGenerated}, nil
}

// SelectCourse opens c.
func (a *App) SelectCourse(c types.Course) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.openCourse(c)
}

// SelectCourseByID opens the catalog course with the given id.
func (a *App) SelectCourseByID(id string) error {
	c, err := a.store.Get(id)
	if err != nil {
		return err
	}
	a.SelectCourse(c)
	return nil
}

// Enroll adds id to the enrollment set, if not already there, and moves
// to MY_LEARNING.
func (a *App) Enroll(id string) error {
	if !a.store.Contains(id) {
		return fmt.Errorf("%s: %w", id, catalog.ErrCourseNotFound)
	}
	if a.enrollments.Add(id) {
		a.log.Info("enrolled", "course_id", id)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setView(types.ViewMyLearning)
	return nil
}

// Navigate moves to HOME or MY_LEARNING. Other views are entered through
// Search and SelectCourse.
func (a *App) Navigate(v types.View) error {
	switch v {
	case types.ViewHome, types.ViewMyLearning:
	default:
		return fmt.Errorf("%s: %w", v, ErrInvalidView)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice = ""
	a.setView(v)
	return nil
}

// SubmitTutorMessage sends text to the tutor of the open course. It
// returns false when no course is open, text is blank, or a tutor reply
// is pending.
func (a *App) SubmitTutorMessage(ctx context.Context, text string) bool {
	a.mu.Lock()
	conv := a.conversation
	a.mu.Unlock()
	if conv == nil {
		return false
	}
	return conv.Submit(context.WithoutCancel(ctx), text)
}

// openCourse selects c, moves to COURSE_DETAILS, records the opening
// lesson as tutor context, and starts a fresh conversation. Callers hold mu.
func (a *App) openCourse(c types.Course) {
	a.selected = &c
	a.currentLesson = ""
	if l, ok := c.FirstLesson(); ok {
		a.currentLesson = l.Title
	}
	a.conversation = tutor.New(a.advisor, c.Title, a.currentLesson, a.log)
	a.view = types.ViewCourseDetails
}

// setView changes the view and drops the conversation when leaving
// COURSE_DETAILS. Callers hold mu.
func (a *App) setView(v types.View) {
	if v != types.ViewCourseDetails {
		a.conversation = nil
	}
	a.view = v
}
