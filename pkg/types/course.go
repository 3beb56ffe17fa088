// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Level is the difficulty band of a course.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists every accepted Level in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Valid reports whether l is one of the accepted levels.
func (l Level) Valid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// MaxRating is the upper bound of the course rating scale.
const MaxRating = 5.0

// Lesson is a single unit of teaching inside a Module.
type Lesson struct {
	// ID is unique within the parent module.
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Duration is a free-form label such as "15m".
	Duration string `json:"duration" yaml:"duration"`

	// Content is an optional summary of what the lesson teaches.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Module groups lessons in pedagogical order.
type Module struct {
	// ID is unique within the parent course.
	ID string `json:"id" yaml:"id"`

	Title   string   `json:"title" yaml:"title"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// Course is a catalog entry. Records are never mutated after they enter the
// catalog.
type Course struct {
	// ID is unique across the catalog. Seed entries use small sequential ids;
	// generated entries carry the "ai-" prefix.
	ID string `json:"id" yaml:"id"`

	Title       string `json:"title" yaml:"title"`
	Instructor  string `json:"instructor" yaml:"instructor"`
	Description string `json:"description" yaml:"description"`

	// Image is a URL to the course artwork.
	Image string `json:"image" yaml:"image"`

	// Category is free text and need not appear in the browse category list.
	Category string `json:"category" yaml:"category"`

	// Rating is on a 0 to MaxRating scale.
	Rating   float64  `json:"rating" yaml:"rating"`
	Students int      `json:"students" yaml:"students"`
	Level    Level    `json:"level" yaml:"level"`
	Modules  []Module `json:"modules" yaml:"modules"`

	// IsAIGenerated marks records synthesized by the generation workflow.
	IsAIGenerated bool `json:"isAIGenerated" yaml:"is_ai_generated"`
}

// FirstLesson returns the opening lesson of the first module, if any.
func (c *Course) FirstLesson() (Lesson, bool) {
	if len(c.Modules) == 0 || len(c.Modules[0].Lessons) == 0 {
		return Lesson{}, false
	}
	return c.Modules[0].Lessons[0], true
}

// NextLesson returns the lesson following the opening one in the first
// module, used as the "up next" hint on the learning dashboard.
func (c *Course) NextLesson() (Lesson, bool) {
	if len(c.Modules) == 0 || len(c.Modules[0].Lessons) < 2 {
		return Lesson{}, false
	}
	return c.Modules[0].Lessons[1], true
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a tutor transcript.
type ChatMessage struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// View names the screen the application is showing.
type View string

const (
	ViewHome          View = "HOME"
	ViewCourseDetails View = "COURSE_DETAILS"
	ViewMyLearning    View = "MY_LEARNING"
	ViewSearchResults View = "SEARCH_RESULTS" // reserved, never entered
)
