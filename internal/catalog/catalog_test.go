// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/edustream/pkg/types"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	seed, err := LoadSeed("")
	require.NoError(t, err)
	s, err := NewStore(seed)
	require.NoError(t, err)
	return s
}

// --- seed ---

func TestLoadSeed_Builtin(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, seed, 4)

	assert.Equal(t, "1", seed[0].ID)
	assert.Equal(t, "Machine Learning Specialization", seed[1].Title)
	assert.Equal(t, types.LevelIntermediate, seed[1].Level)
	require.Len(t, seed[0].Modules, 2)
	assert.Equal(t, "The data ecosystem", seed[0].Modules[0].Lessons[0].Title)
	assert.Equal(t, "15m", seed[0].Modules[0].Lessons[0].Duration)
	assert.NotNil(t, seed[2].Modules)
	assert.Empty(t, seed[2].Modules)
	for _, c := range seed {
		assert.False(t, c.IsAIGenerated, c.ID)
	}
}

func TestLoadSeed_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: "10"
  title: Intro to Go
  instructor: Gopher
  description: Learn Go.
  category: Computer Science
  rating: 4.5
  students: 10
  level: Beginner
`), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 1)
	assert.Equal(t, "Intro to Go", seed[0].Title)
	assert.NotNil(t, seed[0].Modules)
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", "- title: X\n  level: Beginner\n"},
		{"bad level", "- id: a\n  title: X\n  level: Expert\n"},
		{"rating out of range", "- id: a\n  title: X\n  level: Beginner\n  rating: 7\n"},
		{"not yaml list", "id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeed([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// --- store ---

func TestNewStore_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewStore([]types.Course{{ID: "1"}, {ID: "1"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestFindByTitle(t *testing.T) {
	s := seedStore(t)

	tests := []struct {
		query  string
		wantID string
		found  bool
	}{
		{"machine learning", "2", true},
		{"MACHINE", "2", true},
		{"well-being", "4", true},
		{"e", "1", true}, // first match in store order wins
		{"Ancient Roman Pottery", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, ok := s.FindByTitle(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, c.ID)
		})
	}
}

func TestPrepend(t *testing.T) {
	s := seedStore(t)
	before := s.Len()

	require.NoError(t, s.Prepend(types.Course{ID: "ai-1", Title: "Ancient Roman Pottery"}))

	all := s.All()
	require.Len(t, all, before+1)
	assert.Equal(t, "ai-1", all[0].ID)
	assert.Equal(t, "1", all[1].ID)
	assert.True(t, s.Contains("ai-1"))

	c, ok := s.FindByTitle("pottery")
	require.True(t, ok)
	assert.Equal(t, "ai-1", c.ID)

	assert.ErrorIs(t, s.Prepend(types.Course{ID: "ai-1"}), ErrDuplicateID)
	assert.Equal(t, before+1, s.Len())
}

func TestGet(t *testing.T) {
	s := seedStore(t)

	c, err := s.Get("3")
	require.NoError(t, err)
	assert.Equal(t, "Social Psychology", c.Title)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestStoredCoursesAreNotAliased(t *testing.T) {
	s := seedStore(t)

	c, err := s.Get("1")
	require.NoError(t, err)
	c.Title = "changed"
	c.Modules[0].Lessons[0].Title = "changed"

	again, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Google Data Analytics Professional Certificate", again.Title)
	assert.Equal(t, "The data ecosystem", again.Modules[0].Lessons[0].Title)
}

// --- enrollments ---

func TestEnrollments_Idempotent(t *testing.T) {
	e := NewEnrollments()

	assert.True(t, e.Add("2"))
	assert.Equal(t, 1, e.Len())
	assert.False(t, e.Add("2"))
	assert.Equal(t, 1, e.Len())

	assert.True(t, e.Add("1"))
	assert.Equal(t, []string{"2", "1"}, e.IDs())
	assert.True(t, e.Has("1"))
	assert.False(t, e.Has("3"))
}
