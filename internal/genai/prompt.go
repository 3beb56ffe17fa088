// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"bytes"
	"text/template"
)

// courseSyllabusTmpl asks the model for a course syllabus on one topic. The
// response shape is enforced separately through courseSchema.
var courseSyllabusTmpl = template.Must(template.New("syllabus").Parse(`Generate a detailed professional course syllabus for the topic: "{{.Topic}}".
Make it feel like a high-quality online course from a leading learning platform.

Return a title, the instructor or institution teaching it, a short description, a
subject category, a difficulty level (Beginner, Intermediate, or Advanced), and an
ordered list of modules. Each module has a title and an ordered list of lessons.
Each lesson has a title, a short duration label such as "15m", and a brief summary
of what will be taught.`))

// tutorTmpl frames a single learner question for the tutor.
var tutorTmpl = template.Must(template.New("tutor").Parse(`You are an expert AI tutor for the course "{{.CourseTitle}}".
Current lesson context: {{.LessonContext}}.

User asks: {{.Question}}

Provide a helpful, encouraging, and clear explanation.`))

// Schema is the subset of the OpenAPI schema object accepted by the
// generateContent responseSchema field.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// courseSchema mirrors generate.Payload.
var courseSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"title":       {Type: "STRING"},
		"instructor":  {Type: "STRING"},
		"description": {Type: "STRING"},
		"category":    {Type: "STRING"},
		"level":       {Type: "STRING", Enum: []string{"Beginner", "Intermediate", "Advanced"}},
		"modules": {
			Type: "ARRAY",
			Items: &Schema{
				Type: "OBJECT",
				Properties: map[string]*Schema{
					"title": {Type: "STRING"},
					"lessons": {
						Type: "ARRAY",
						Items: &Schema{
							Type: "OBJECT",
							Properties: map[string]*Schema{
								"title":    {Type: "STRING"},
								"duration": {Type: "STRING"},
								"content": {
									Type:        "STRING",
									Description: "A brief summary of what will be taught in this lesson",
								},
							},
							Required: []string{"title", "duration"},
						},
					},
				},
				Required: []string{"title", "lessons"},
			},
		},
	},
	Required: []string{"title", "instructor", "description", "category", "level", "modules"},
}

// CourseSchema returns the structured-output schema sent with course
// synthesis requests.
func CourseSchema() *Schema {
	return courseSchema
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
