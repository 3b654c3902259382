package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shahiilr/roadmap/internal/recommend"
)

func testCourses() []recommend.Course {
	return []recommend.Course{
		{
			Title:        "Go Basics",
			Platform:     "Coursera",
			Instructor:   "Jane Doe",
			Duration:     "8 weeks",
			Rating:       "4.5",
			Price:        "Free",
			SkillsGained: []string{"syntax", "tooling"},
			URL:          "https://example.com/go",
			Level:        "beginner",
			Source:       recommend.SourceAI,
		},
		{
			Title:    "Distributed Systems in Go",
			Platform: "Udemy",
			URL:      "https://example.com/dist",
			Level:    "advanced",
			Source:   recommend.SourceAI,
		},
	}
}

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	jsonStore, err := OpenJSON(t.TempDir())
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	return map[string]Store{
		"json":   jsonStore,
		"sqlite": sqliteStore,
	}
}

func TestSaveAndListCourses(t *testing.T) {
	t.Parallel()

	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			for _, c := range testCourses() {
				if _, err := s.SaveCourse(ctx, c); err != nil {
					t.Fatalf("SaveCourse: %v", err)
				}
			}

			all, err := s.Courses(ctx, "", 0)
			if err != nil {
				t.Fatalf("Courses: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("expected 2 courses, got %d", len(all))
			}
			if all[0].Title != "Go Basics" {
				t.Fatalf("unexpected first course: %+v", all[0])
			}
			if len(all[0].SkillsGained) != 2 || all[0].SkillsGained[0] != "syntax" {
				t.Fatalf("skills not round-tripped: %+v", all[0].SkillsGained)
			}
			if all[0].CreatedAt.IsZero() {
				t.Fatalf("created_at not set")
			}

			beginners, err := s.Courses(ctx, "BEGINNER", 0)
			if err != nil {
				t.Fatalf("Courses(level): %v", err)
			}
			if len(beginners) != 1 || beginners[0].Title != "Go Basics" {
				t.Fatalf("level filter broken: %+v", beginners)
			}

			limited, err := s.Courses(ctx, "", 1)
			if err != nil {
				t.Fatalf("Courses(limit): %v", err)
			}
			if len(limited) != 1 {
				t.Fatalf("limit ignored, got %d courses", len(limited))
			}
		})
	}
}

func TestSavePlanAndReadBack(t *testing.T) {
	t.Parallel()

	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			profile := Profile{Interests: "Go", Skills: "Python", Goals: "Backend"}
			profileID, err := SavePlan(ctx, s, profile, testCourses())
			if err != nil {
				t.Fatalf("SavePlan: %v", err)
			}
			if profileID == 0 {
				t.Fatalf("expected non-zero profile ID")
			}

			recs, err := s.ProfileRecommendations(ctx, profileID)
			if err != nil {
				t.Fatalf("ProfileRecommendations: %v", err)
			}
			if len(recs) != 2 {
				t.Fatalf("expected 2 recommendations, got %d", len(recs))
			}
			for _, r := range recs {
				if r.Score != 1.0 {
					t.Fatalf("expected score 1.0, got %v", r.Score)
				}
			}

			// Unknown profile returns nothing.
			none, err := s.ProfileRecommendations(ctx, profileID+100)
			if err != nil {
				t.Fatalf("ProfileRecommendations(missing): %v", err)
			}
			if len(none) != 0 {
				t.Fatalf("expected no recommendations for unknown profile")
			}
		})
	}
}

func TestJSONStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenJSON(dir)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	if _, err := s.SaveCourse(ctx, testCourses()[0]); err != nil {
		t.Fatalf("SaveCourse: %v", err)
	}
	_ = s.Close()

	reopened, err := OpenJSON(dir)
	if err != nil {
		t.Fatalf("OpenJSON (reopen): %v", err)
	}
	defer reopened.Close()

	courses, err := reopened.Courses(ctx, "", 0)
	if err != nil {
		t.Fatalf("Courses: %v", err)
	}
	if len(courses) != 1 || courses[0].Title != "Go Basics" {
		t.Fatalf("data lost across reopen: %+v", courses)
	}
}

func TestNewFactoryRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Backend: "cassandra", DataDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
