package recommend

import (
	"errors"
	"strings"
)

// SourceAI marks records produced by the generative model.
const SourceAI = "AI Generated"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course is one recommended course as returned by the model.
type Course struct {
	Title         string   `json:"title"`
	Platform      string   `json:"platform"`
	Instructor    string   `json:"instructor,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Rating        string   `json:"rating,omitempty"`
	Price         string   `json:"price,omitempty"`
	Description   string   `json:"description,omitempty"`
	SkillsGained  []string `json:"skills_gained,omitempty"`
	URL           string   `json:"url"`
	Level         string   `json:"level,omitempty"`
	Certification string   `json:"certification,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// Query is one user's learning profile. Skills and Goals are optional.
type Query struct {
	Interests string
	Skills    string
	Goals     string
}

func (q *Query) Validate() error {
	if strings.TrimSpace(q.Interests) == "" {
		return errors.New("interests are required")
	}
	return nil
}

// Step is one stage of a learning roadmap.
type Step struct {
	Step        int      `json:"step"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Milestone   string   `json:"milestone,omitempty"`
}

// Roadmap is a progressive learning path for one subject.
type Roadmap struct {
	Subject        string   `json:"subject"`
	Overview       string   `json:"overview,omitempty"`
	TotalDuration  string   `json:"total_duration,omitempty"`
	Prerequisites  []string `json:"prerequisites,omitempty"`
	LearningPath   []Step   `json:"learning_path"`
	CareerOutcomes []string `json:"career_outcomes,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	SalaryRange    string   `json:"salary_range,omitempty"`
	IndustryDemand string   `json:"industry_demand,omitempty"`
}

// Levels groups courses by difficulty level for display.
type Levels struct {
	Beginner     []Course
	Intermediate []Course
	Advanced     []Course
}

// PartitionByLevel splits courses into the three difficulty buckets.
// Courses with an unknown level are dropped from the partition.
func PartitionByLevel(courses []Course) Levels {
	var out Levels
	for _, c := range courses {
		switch strings.ToLower(c.Level) {
		case LevelBeginner:
			out.Beginner = append(out.Beginner, c)
		case LevelIntermediate:
			out.Intermediate = append(out.Intermediate, c)
		case LevelAdvanced:
			out.Advanced = append(out.Advanced, c)
		}
	}
	return out
}
