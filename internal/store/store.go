// Package store persists generated plans so past recommendations can be
// reviewed without re-querying the model. Two backends: JSON files for
// zero-setup local use, SQLite for anything longer-lived.
package store

import (
	"context"
	"time"

	"github.com/shahiilr/roadmap/internal/recommend"
)

// Profile is one saved user query.
type Profile struct {
	ID        int64     `json:"id"`
	Interests string    `json:"interests"`
	Skills    string    `json:"current_skills,omitempty"`
	Goals     string    `json:"career_goals,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredCourse is a course with its storage identity. Score is only
// populated when reading back a profile's recommendations.
type StoredCourse struct {
	recommend.Course
	ID        int64     `json:"id"`
	Score     float64   `json:"recommendation_score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists profiles, courses, and the links between them.
type Store interface {
	SaveProfile(ctx context.Context, p Profile) (int64, error)
	SaveCourse(ctx context.Context, c recommend.Course) (int64, error)
	SaveRecommendation(ctx context.Context, profileID, courseID int64, score float64) error
	Courses(ctx context.Context, level string, limit int) ([]StoredCourse, error)
	ProfileRecommendations(ctx context.Context, profileID int64) ([]StoredCourse, error)
	Close() error
}

// SavePlan links a profile to every course in one generated plan.
// Recommendation scores are uniform; ranking is the model's job.
func SavePlan(ctx context.Context, s Store, p Profile, courses []recommend.Course) (int64, error) {
	profileID, err := s.SaveProfile(ctx, p)
	if err != nil {
		return 0, err
	}
	for _, c := range courses {
		courseID, err := s.SaveCourse(ctx, c)
		if err != nil {
			return profileID, err
		}
		if err := s.SaveRecommendation(ctx, profileID, courseID, 1.0); err != nil {
			return profileID, err
		}
	}
	return profileID, nil
}
