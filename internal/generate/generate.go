// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns a free-text topic into a catalog course. A topic
// that matches an existing title resolves locally; anything else is
// synthesized by the generative API, checked against the course contract,
// and prepended to the catalog.
package generate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/edustream/internal/catalog"
	"github.com/pdiddy/edustream/internal/logger"
	"github.com/pdiddy/edustream/pkg/types"
)

// DefaultImageBase is the placeholder-art service for generated courses.
const DefaultImageBase = "https://picsum.photos/seed"

const idPrefix = "ai-"

var (
	// ErrGenerationFailed wraps every remote or contract failure during
	// synthesis. Nothing is added to the catalog when it is returned.
	ErrGenerationFailed = errors.New("course generation failed")

	// ErrEmptyTopic is returned for a blank topic. Callers are expected to
	// filter these out before calling.
	ErrEmptyTopic = errors.New("empty topic")
)

// Synthesizer asks the generative API for a course on topic and returns
// the raw JSON text of its answer.
type Synthesizer interface {
	SynthesizeCourse(ctx context.Context, topic string) (string, error)
}

// Source says how a Result was obtained.
type Source string

const (
	SourceCatalog   Source = "catalog"
	SourceGenerated Source = "generated"
)

// Result is the course chosen for a topic.
type Result struct {
	Course types.Course
	Source Source
}

// Workflow resolves topics to courses.
type Workflow struct {
	store     *catalog.Store
	synth     Synthesizer
	log       *logger.Logger
	imageBase string
	now       func() time.Time

	// insertMu serializes id assignment and insertion.
	insertMu sync.Mutex
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

// WithImageBase sets the placeholder-art service URL.
func WithImageBase(base string) Option {
	return func(w *Workflow) {
		if base != "" {
			w.imageBase = base
		}
	}
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// New returns a workflow that reads and prepends to store and synthesizes
// through synth.
func New(store *catalog.Store, synth Synthesizer, opts ...Option) *Workflow {
	w := &Workflow{
		store:     store,
		synth:     synth,
		log:       logger.Nop(),
		imageBase: DefaultImageBase,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Resolve returns the first catalog course whose title contains topic, or
// synthesizes a new one when none does.
func (w *Workflow) Resolve(ctx context.Context, topic string) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, ErrEmptyTopic
	}
	if c, ok := w.Lookup(topic); ok {
		return Result{Course: c, Source: SourceCatalog}, nil
	}
	c, err := w.Synthesize(ctx, topic)
	if err != nil {
		return Result{}, err
	}
	return Result{Course: c, Source: SourceGenerated}, nil
}

// Lookup scans the catalog in order for a title containing topic, ignoring
// case. It never calls the generative API.
func (w *Workflow) Lookup(topic string) (types.Course, bool) {
	c, ok := w.store.FindByTitle(topic)
	if ok {
		w.log.Debug("topic resolved from catalog", "topic", topic, "course_id", c.ID)
	}
	return c, ok
}

// Synthesize requests a new course for topic and prepends it to the
// catalog. Every failure wraps ErrGenerationFailed and leaves the catalog
// unchanged. There is no retry.
func (w *Workflow) Synthesize(ctx context.Context, topic string) (types.Course, error) {
	w.log.Info("synthesizing course", "topic", topic)

	text, err := w.synth.SynthesizeCourse(ctx, topic)
	if err != nil {
		w.log.Error("course synthesis failed", "topic", topic, "error", err)
		return types.Course{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	parsed := ParsePayload(text)
	if parsed.Malformed() {
		w.log.Error("course synthesis returned malformed output", "topic", topic, "reason", parsed.Reason)
		return types.Course{}, fmt.Errorf("%w: %s", ErrGenerationFailed, parsed.Reason)
	}

	w.insertMu.Lock()
	defer w.insertMu.Unlock()

	course := Materialize(parsed.Payload, w.nextID(), ImageFor(w.imageBase, topic))
	if err := w.store.Prepend(course); err != nil {
		return types.Course{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	w.log.Info("course generated", "topic", topic, "course_id", course.ID, "modules", len(course.Modules))
	return course, nil
}

// nextID returns a time-derived id not yet in the catalog. Callers hold
// insertMu.
func (w *Workflow) nextID() string {
	id := fmt.Sprintf("%s%d", idPrefix, w.now().UnixMilli())
	if !w.store.Contains(id) {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !w.store.Contains(candidate) {
			return candidate
		}
	}
}

// IsGenerated reports whether id carries the generated-course prefix.
func IsGenerated(id string) bool {
	return strings.HasPrefix(id, idPrefix)
}

// ImageFor derives the placeholder image for topic. The same topic always
// yields the same URL.
func ImageFor(base, topic string) string {
	if base == "" {
		base = DefaultImageBase
	}
	return fmt.Sprintf("%s/%s/800/450", strings.TrimRight(base, "/"), url.PathEscape(topic))
}

// Materialize wraps a validated payload into a catalog course. Generated
// courses always carry the maximum rating and a single student.
func Materialize(p *Payload, id, image string) types.Course {
	modules := make([]types.Module, 0, len(p.Modules))
	lessonN := 0
	for i, pm := range p.Modules {
		lessons := make([]types.Lesson, 0, len(pm.Lessons))
		for _, pl := range pm.Lessons {
			lessonN++
			lessons = append(lessons, types.Lesson{
				ID:       fmt.Sprintf("l%d", lessonN),
				Title:    pl.Title,
				Duration: pl.Duration,
				Content:  pl.Content,
			})
		}
		modules = append(modules, types.Module{
			ID:      fmt.Sprintf("m%d", i+1),
			Title:   pm.Title,
			Lessons: lessons,
		})
	}

	return types.Course{
		ID:            id,
		Title:         p.Title,
		Instructor:    p.Instructor,
		Description:   p.Description,
		Image:         image,
		Category:      p.Category,
		Rating:        types.MaxRating,
		Students:      1,
		Level:         p.Level,
		Modules:       modules,
		IsAIGenerated: true,
	}
}
