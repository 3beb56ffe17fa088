// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/internal/genai"
	"github.com/pdiddy/edustream/internal/generate"
	"github.com/pdiddy/edustream/pkg/types"
)

// --- fakes ---

type fakeSynth struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int

	// entered and release gate the call when non-nil.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSynth) SynthesizeCourse(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeSynth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeAdvisor struct {
	mu       sync.Mutex
	requests []genai.TutorRequest
	err      error
}

func (f *fakeAdvisor) TutorAdvice(_ context.Context, req genai.TutorRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return "sure: " + req.Question, nil
}

const potteryJSON = `{"title":"Ancient Roman Pottery","instructor":"X","description":"Y","category":"History","level":"Beginner","modules":[{"title":"Clay","lessons":[{"title":"Terra sigillata","duration":"12m"}]}]}`

func newApp(t *testing.T, synth *fakeSynth, adv *fakeAdvisor) (*App, *catalog.Store) {
	t.Helper()
	seed, err := catalog.LoadSeed("")
	require.NoError(t, err)
	store, err := catalog.NewStore(seed)
	require.NoError(t, err)
	gen := generate.New(store, synth, generate.WithClock(func() time.Time { return time.UnixMilli(1767225600000) }))
	return New(store, gen, adv, nil), store
}

// --- initial state ---

func TestNew_StartsAtHome(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	s := a.State()
	assert.Equal(t, types.ViewHome, s.View)
	assert.Equal(t, ActivityIdle, s.Activity)
	assert.Nil(t, s.Selected)
	assert.Nil(t, s.Tutor)
	assert.Empty(t, s.Enrolled)
	assert.Empty(t, a.MyLearning())
}

// --- search ---

func TestSearch_LocalHitOpensCourse(t *testing.T) {
	synth := &fakeSynth{}
	a, store := newApp(t, synth, &fakeAdvisor{})
	before := store.Len()

	out, err := a.Search(context.Background(), "machine learning")
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, generate.SourceCatalog, out.Source)

	s := a.State()
	assert.Equal(t, types.ViewCourseDetails, s.View)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "2", s.Selected.ID)
	assert.Equal(t, "Introduction to Machine Learning", s.CurrentLesson)
	require.NotNil(t, s.Tutor)
	assert.Equal(t, "Machine Learning Specialization", s.Tutor.CourseTitle)
	assert.Len(t, s.Tutor.Messages, 1)

	assert.Zero(t, synth.Calls())
	assert.Equal(t, before, store.Len())
}

func TestSearch_BlankIsNoOp(t *testing.T) {
	synth := &fakeSynth{}
	a, store := newApp(t, synth, &fakeAdvisor{})
	before := a.State()

	out, err := a.Search(context.Background(), "  \t ")
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, before, a.State())
	assert.Zero(t, synth.Calls())
	assert.Equal(t, 4, store.Len())
}

func TestSearch_GeneratesOnMiss(t *testing.T) {
	synth := &fakeSynth{reply: potteryJSON}
	a, store := newApp(t, synth, &fakeAdvisor{})

	out, err := a.Search(context.Background(), "Ancient Roman Pottery")
	require.NoError(t, err)
	assert.Equal(t, generate.SourceGenerated, out.Source)
	assert.Equal(t, 1, synth.Calls())

	s := a.State()
	assert.Equal(t, types.ViewCourseDetails, s.View)
	assert.Equal(t, ActivityIdle, s.Activity)
	require.NotNil(t, s.Selected)
	assert.True(t, s.Selected.IsAIGenerated)
	assert.Equal(t, "Terra sigillata", s.CurrentLesson)

	// The selected course is already in the catalog, at the front.
	require.Equal(t, 5, store.Len())
	assert.Equal(t, s.Selected.ID, a.Courses()[0].ID)
}

func TestSearch_FailureStaysHomeWithNotice(t *testing.T) {
	synth := &fakeSynth{err: errors.New("quota exceeded")}
	a, store := newApp(t, synth, &fakeAdvisor{})

	out, err := a.Search(context.Background(), "Ancient Roman Pottery")
	require.Error(t, err)
	assert.ErrorIs(t, err, generate.ErrGenerationFailed)
	assert.True(t, out.Accepted)

	s := a.State()
	assert.Equal(t, types.ViewHome, s.View)
	assert.Equal(t, ActivityIdle, s.Activity)
	assert.Equal(t, GenerationFailedNotice, s.Notice)
	assert.Nil(t, s.Selected)
	assert.Equal(t, 4, store.Len())

	require.NoError(t, a.Navigate(types.ViewMyLearning))
	assert.Empty(t, a.State().Notice)
}

func TestSearch_MissFromDetailsReturnsHome(t *testing.T) {
	synth := &fakeSynth{err: errors.New("boom")}
	a, _ := newApp(t, synth, &fakeAdvisor{})
	require.NoError(t, a.SelectCourseByID("1"))

	_, err := a.Search(context.Background(), "underwater basket weaving")
	require.Error(t, err)

	s := a.State()
	assert.Equal(t, types.ViewHome, s.View)
	assert.Nil(t, s.Tutor)
}

func TestSearch_RejectedWhileGenerating(t *testing.T) {
	synth := &fakeSynth{reply: potteryJSON, entered: make(chan struct{}), release: make(chan struct{})}
	a, _ := newApp(t, synth, &fakeAdvisor{})

	type result struct {
		out SearchOutcome
		err error
	}
	done := make(chan result)
	go func() {
		out, err := a.Search(context.Background(), "Ancient Roman Pottery")
		done <- result{out, err}
	}()

	select {
	case <-synth.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("synthesizer was never called")
	}

	assert.True(t, a.Generating())
	assert.Equal(t, types.ViewHome, a.View())

	out, err := a.Search(context.Background(), "machine learning")
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, types.ViewHome, a.View())

	close(synth.release)
	r := <-done
	require.NoError(t, r.err)
	assert.True(t, r.out.Accepted)
	assert.False(t, a.Generating())
	assert.Equal(t, 1, synth.Calls())
}

func TestSearch_ContextCancellationDoesNotAbort(t *testing.T) {
	synth := &fakeSynth{reply: potteryJSON}
	a, _ := newApp(t, synth, &fakeAdvisor{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Search(ctx, "Ancient Roman Pottery")
	require.NoError(t, err)
	assert.Equal(t, types.ViewCourseDetails, a.View())
}

// --- selection and navigation ---

func TestSelectCourse_WithoutLessonsClearsLesson(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})

	require.NoError(t, a.SelectCourseByID("2"))
	assert.Equal(t, "Introduction to Machine Learning", a.State().CurrentLesson)

	require.NoError(t, a.SelectCourseByID("3"))
	s := a.State()
	assert.Equal(t, types.ViewCourseDetails, s.View)
	assert.Empty(t, s.CurrentLesson)
	require.NotNil(t, s.Tutor)
	assert.Equal(t, "Social Psychology", s.Tutor.CourseTitle)
}

func TestSelectCourseByID_Unknown(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	err := a.SelectCourseByID("nope")
	assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
	assert.Equal(t, types.ViewHome, a.View())
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name    string
		view    types.View
		wantErr bool
	}{
		{"home", types.ViewHome, false},
		{"my learning", types.ViewMyLearning, false},
		{"course details", types.ViewCourseDetails, true},
		{"search results", types.ViewSearchResults, true},
		{"unknown", types.View("SETTINGS"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
			require.NoError(t, a.SelectCourseByID("1"))

			err := a.Navigate(tt.view)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidView)
				assert.Equal(t, types.ViewCourseDetails, a.View())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.view, a.View())
			assert.Nil(t, a.Tutor(), "leaving details drops the conversation")
		})
	}
}

// --- enrollment ---

func TestEnroll_IdempotentAndMovesToMyLearning(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	require.NoError(t, a.SelectCourseByID("1"))

	require.NoError(t, a.Enroll("1"))
	require.NoError(t, a.Enroll("1"))

	s := a.State()
	assert.Equal(t, types.ViewMyLearning, s.View)
	assert.Equal(t, []string{"1"}, s.Enrolled)
	assert.True(t, a.IsEnrolled("1"))
	assert.False(t, a.IsEnrolled("2"))
	assert.Nil(t, s.Tutor)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	err := a.Enroll("missing")
	assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
	assert.Equal(t, types.ViewHome, a.View())
	assert.Empty(t, a.State().Enrolled)
}

func TestMyLearning_NextLesson(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	require.NoError(t, a.Enroll("3"))
	require.NoError(t, a.Enroll("2"))

	entries := a.MyLearning()
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].Course.ID, "catalog order")
	assert.Equal(t, "Linear Regression with One Variable", entries[0].NextLesson)
	assert.Equal(t, "3", entries[1].Course.ID)
	assert.Equal(t, DefaultNextLesson, entries[1].NextLesson)
}

// --- tutor ---

func TestSubmitTutorMessage(t *testing.T) {
	adv := &fakeAdvisor{}
	a, _ := newApp(t, &fakeSynth{}, adv)

	assert.False(t, a.SubmitTutorMessage(context.Background(), "hello"), "no course open")

	require.NoError(t, a.SelectCourseByID("2"))
	assert.True(t, a.SubmitTutorMessage(context.Background(), "what is regression?"))
	assert.False(t, a.SubmitTutorMessage(context.Background(), "   "))

	tu := a.Tutor()
	require.NotNil(t, tu)
	require.Len(t, tu.Messages, 3)
	assert.Equal(t, types.RoleUser, tu.Messages[1].Role)
	assert.Equal(t, "sure: what is regression?", tu.Messages[2].Content)
	require.Len(t, adv.requests, 1)
	assert.Equal(t, "Introduction to Machine Learning", adv.requests[0].LessonContext)
}

func TestSelectCourse_StartsFreshConversation(t *testing.T) {
	a, _ := newApp(t, &fakeSynth{}, &fakeAdvisor{})
	require.NoError(t, a.SelectCourseByID("2"))
	first := a.Tutor()
	require.True(t, a.SubmitTutorMessage(context.Background(), "hi"))

	require.NoError(t, a.SelectCourseByID("1"))
	second := a.Tutor()
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, second.Messages, 1)
	assert.Equal(t, "Google Data Analytics Professional Certificate", second.CourseTitle)
}

func TestSubmitTutorMessage_FailureUsesFallback(t *testing.T) {
	adv := &fakeAdvisor{err: errors.New("503")}
	a, _ := newApp(t, &fakeSynth{}, adv)
	require.NoError(t, a.SelectCourseByID("3"))

	assert.True(t, a.SubmitTutorMessage(context.Background(), "why do people conform?"))
	tu := a.Tutor()
	require.Len(t, tu.Messages, 3)
	assert.Equal(t, "Sorry, I'm having trouble connecting right now.", tu.Messages[2].Content)
	assert.False(t, tu.Busy)
	assert.Equal(t, "General course discussion", adv.requests[0].LessonContext)
}
