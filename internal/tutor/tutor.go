// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tutor runs a course-scoped chat with the generative API. A
// conversation keeps an append-only transcript and allows one submission
// in flight at a time. Remote failures never escape: they become a fixed
// apology in the transcript.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/edustream/internal/genai"
	"github.com/pdiddy/edustream/internal/logger"
	"github.com/pdiddy/edustream/pkg/types"
)

const (
	// GeneralContext stands in when no lesson is in focus.
	GeneralContext = "General course discussion"

	// FallbackReply is appended when the remote call fails.
	FallbackReply = "Sorry, I'm having trouble connecting right now."
)

// ErrTutorReplyFailed classifies a failed remote exchange. It is logged and
// replaced by FallbackReply; Submit never returns it.
var ErrTutorReplyFailed = errors.New("tutor reply failed")

// Advisor answers one tutor question with free text.
type Advisor interface {
	TutorAdvice(ctx context.Context, req genai.TutorRequest) (string, error)
}

// Greeting is the opening assistant message for a course.
func Greeting(courseTitle string) string {
	return fmt.Sprintf("Hi! I'm your AI Tutor for \"%s\". How can I help you with today's lesson?", courseTitle)
}

// Conversation is one tutor session scoped to a course and, optionally, a
// lesson.
type Conversation struct {
	id            string
	courseTitle   string
	lessonContext string
	advisor       Advisor
	log           *logger.Logger

	mu       sync.Mutex
	messages []types.ChatMessage
	busy     bool
}

// New starts a conversation seeded with the greeting. An empty
// lessonContext means the whole course is in scope.
func New(advisor Advisor, courseTitle, lessonContext string, log *logger.Logger) *Conversation {
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.NewString()
	return &Conversation{
		id:            id,
		courseTitle:   courseTitle,
		lessonContext: lessonContext,
		advisor:       advisor,
		log:           log.With("conversation_id", id),
		messages: []types.ChatMessage{
			{Role: types.RoleAssistant, Content: Greeting(courseTitle)},
		},
	}
}

// ID identifies the conversation.
func (c *Conversation) ID() string { return c.id }

// CourseTitle returns the course the conversation is about.
func (c *Conversation) CourseTitle() string { return c.courseTitle }

// LessonContext returns the lesson in focus, or "" for the whole course.
func (c *Conversation) LessonContext() string { return c.lessonContext }

// Busy reports whether a submission is waiting for its reply.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Transcript returns a copy of the messages in order.
func (c *Conversation) Transcript() []types.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Submit appends text as a user message, asks the advisor, and appends
// its reply, or FallbackReply on failure. It returns false without side
// effects when text is blank or another submission is in flight. Submit
// blocks until the reply is appended.
func (c *Conversation) Submit(ctx context.Context, text string) bool {
	question := strings.TrimSpace(text)
	if question == "" {
		return false
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	c.messages = append(c.messages, types.ChatMessage{Role: types.RoleUser, Content: question})
	c.mu.Unlock()

	reply := FallbackReply
	defer func() {
		c.mu.Lock()
		c.messages = append(c.messages, types.ChatMessage{Role: types.RoleAssistant, Content: reply})
		c.busy = false
		c.mu.Unlock()
	}()

	answer, err := c.ask(ctx, question)
	if err != nil {
		c.log.Warn("tutor reply replaced by fallback", "course", c.courseTitle, "error", err)
		return true
	}
	reply = answer
	return true
}

func (c *Conversation) ask(ctx context.Context, question string) (string, error) {
	lesson := c.lessonContext
	if lesson == "" {
		lesson = GeneralContext
	}
	reply, err := c.advisor.TutorAdvice(ctx, genai.TutorRequest{
		CourseTitle:   c.courseTitle,
		LessonContext: lesson,
		Question:      question,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTutorReplyFailed, err)
	}
	return reply, nil
}
