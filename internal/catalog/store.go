// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the in-memory course catalog and the enrollment set.
// Neither survives the process.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/edustream/pkg/types"
)

var (
	// ErrCourseNotFound is returned when no course has the requested id.
	ErrCourseNotFound = errors.New("course not found")

	// ErrDuplicateID is returned when a course id is already in the catalog.
	ErrDuplicateID = errors.New("course id already exists")
)

// Store is an ordered sequence of courses. New courses are prepended, so the
// most recently generated course comes first. Stored records are copied on
// the way in and out and are never edited in place.
type Store struct {
	mu      sync.RWMutex
	courses []types.Course
	ids     map[string]struct{}
}

// NewStore builds a store holding seed in order. Duplicate ids are rejected.
func NewStore(seed []types.Course) (*Store, error) {
	s := &Store{
		courses: make([]types.Course, 0, len(seed)),
		ids:     make(map[string]struct{}, len(seed)),
	}
	for _, c := range seed {
		if _, dup := s.ids[c.ID]; dup {
			return nil, fmt.Errorf("seed course %s: %w", c.ID, ErrDuplicateID)
		}
		s.ids[c.ID] = struct{}{}
		s.courses = append(s.courses, cloneCourse(c))
	}
	return s, nil
}

// Len returns the number of courses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses)
}

// All returns a copy of every course in store order.
func (s *Store) All() []types.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = cloneCourse(c)
	}
	return out
}

// Get returns the course with the given id.
func (s *Store) Get(id string) (types.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.ID == id {
			return cloneCourse(c), nil
		}
	}
	return types.Course{}, fmt.Errorf("%s: %w", id, ErrCourseNotFound)
}

// Contains reports whether a course with the given id exists.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// FindByTitle returns the first course, in store order, whose title contains
// query ignoring case.
func (s *Store) FindByTitle(query string) (types.Course, bool) {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if strings.Contains(strings.ToLower(c.Title), q) {
			return cloneCourse(c), true
		}
	}
	return types.Course{}, false
}

// Prepend inserts c at the front of the store.
func (s *Store) Prepend(c types.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.ids[c.ID]; dup {
		return fmt.Errorf("%s: %w", c.ID, ErrDuplicateID)
	}
	s.ids[c.ID] = struct{}{}
	s.courses = append([]types.Course{cloneCourse(c)}, s.courses...)
	return nil
}

func cloneCourse(c types.Course) types.Course {
	modules := make([]types.Module, len(c.Modules))
	for i, m := range c.Modules {
		lessons := make([]types.Lesson, len(m.Lessons))
		copy(lessons, m.Lessons)
		m.Lessons = lessons
		modules[i] = m
	}
	c.Modules = modules
	return c
}
