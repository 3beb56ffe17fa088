// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/edustream/pkg/types"
)

// Payload is the structured object the model must return for a course.
// A JSON null or absent array decodes to a nil slice and fails "required";
// an empty array decodes to a non-nil slice and passes.
type Payload struct {
	Title       string          `json:"title" validate:"required"`
	Instructor  string          `json:"instructor" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Level       types.Level     `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Modules     []PayloadModule `json:"modules" validate:"required,dive"`
}

// PayloadModule is one module of a Payload.
type PayloadModule struct {
	Title   string          `json:"title" validate:"required"`
	Lessons []PayloadLesson `json:"lessons" validate:"required,dive"`
}

// PayloadLesson is one lesson of a PayloadModule.
type PayloadLesson struct {
	Title    string `json:"title" validate:"required"`
	Duration string `json:"duration" validate:"required"`
	Content  string `json:"content,omitempty"`
}

// Parsed is the outcome of checking model output against the contract.
// Exactly one of Payload and Reason is set.
type Parsed struct {
	Payload *Payload
	Reason  string
}

// Malformed reports whether the output violated the contract.
func (p Parsed) Malformed() bool {
	return p.Payload == nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParsePayload decodes text and checks it against the course contract. It
// never returns a partially filled Payload.
func ParsePayload(text string) Parsed {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Parsed{Reason: "empty response"}
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Parsed{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := validate.Struct(&p); err != nil {
		return Parsed{Reason: describe(err)}
	}
	return Parsed{Payload: &p}
}

// describe flattens validator errors into one line naming each field.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "Payload.")
		if fe.Tag() == "oneof" {
			parts = append(parts, fmt.Sprintf("%s: %q is not one of [%s]", ns, fe.Value(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", ns, fe.Tag()))
	}
	return "schema violation: " + strings.Join(parts, "; ")
}
