package recommend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrNoJSON is wrapped when the model text contains no JSON object at all.
var errNoJSON = fmt.Errorf("no JSON object found in response")

// extractJSON slices the model text from the first '{' to the last '}'.
// Models often wrap the object in prose or markdown fences; everything
// outside the braces is discarded.
func extractJSON(text string) ([]byte, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, errNoJSON
	}
	return []byte(text[start : end+1]), nil
}

// parseCourses extracts and validates the course list from raw model text.
// A course is kept only when it carries a title, platform, and URL; kept
// courses are stamped as AI generated.
func parseCourses(text string) ([]Course, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Courses []Course `json:"courses"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse courses JSON: %w", err)
	}

	validated := make([]Course, 0, len(payload.Courses))
	for _, c := range payload.Courses {
		if c.Title == "" || c.Platform == "" || c.URL == "" {
			continue
		}
		c.Source = SourceAI
		validated = append(validated, c)
	}
	return validated, nil
}

// parseRoadmap extracts the roadmap object from raw model text.
func parseRoadmap(text string) (Roadmap, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return Roadmap{}, err
	}

	var rm Roadmap
	if err := json.Unmarshal(raw, &rm); err != nil {
		return Roadmap{}, fmt.Errorf("parse roadmap JSON: %w", err)
	}
	if len(rm.LearningPath) == 0 {
		return Roadmap{}, fmt.Errorf("roadmap has no learning path")
	}
	return rm, nil
}
