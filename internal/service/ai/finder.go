package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/dilzzzz/bagdag/internal/model/course"
)

// ErrCourseLookup is the fixed user-facing error when the provider call
// itself fails during a course search.
var ErrCourseLookup = errors.New("Sorry, I couldn't find courses for that location. Please try another search.")

const findCoursesSystem = `You are a golf travel assistant. Respond with JSON only, matching this shape exactly and nothing else:
{"courses":[{"name":"...","description":"...","features":["...","..."]}]}
Each course needs a full name, a brief engaging description, and 3-4 key features such as "links-style", "fast greens", or "designed by Jack Nicklaus".`

// courseResultSchema is validated before any decoding, so a malformed model
// response surfaces as a descriptive error instead of a silent zero value.
const courseResultSchema = `{
	"type": "object",
	"properties": {
		"courses": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"description": {"type": "string"},
					"features": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["name", "description", "features"]
			}
		}
	},
	"required": ["courses"]
}`

// FindCourses asks the model for highly-rated courses near the location and
// decodes the schema-validated structured response.
func (s *Service) FindCourses(ctx context.Context, location string) ([]course.Course, error) {
	prompt := fmt.Sprintf("List 5 popular and highly-rated golf courses near %s.", location)

	response, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(findCoursesSystem),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return nil, ErrCourseLookup
	}

	raw := extractJSON(response.Content)
	if raw == "" {
		return nil, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(courseResultSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("course search returned unparseable JSON: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("course search returned malformed result: %s", joinSchemaErrors(result))
	}

	var decoded struct {
		Courses []course.Course `json:"courses"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode course search result: %w", err)
	}

	return decoded.Courses, nil
}

// extractJSON strips markdown code fences models habitually wrap JSON in.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

func joinSchemaErrors(result *gojsonschema.Result) string {
	descs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		descs = append(descs, e.String())
	}
	return strings.Join(descs, "; ")
}
