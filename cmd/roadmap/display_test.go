package main

import (
	"strings"
	"testing"
	"time"

	"github.com/shahiilr/roadmap/internal/genai"
	"github.com/shahiilr/roadmap/internal/recommend"
)

func TestPrintPlanGroupsCoursesByLevel(t *testing.T) {
	t.Parallel()

	q := recommend.Query{Interests: "machine learning"}
	courses := []recommend.Course{
		{Title: "Adv Course", Platform: "Coursera", URL: "https://a", Level: "advanced"},
		{Title: "Beg Course", Platform: "Udemy", URL: "https://b", Level: "beginner"},
		{Title: "Int Course", Platform: "edX", URL: "https://c", Level: "intermediate"},
	}
	roadmap := recommend.Roadmap{
		Subject:       "machine learning",
		TotalDuration: "12 months",
		LearningPath: []recommend.Step{
			{Step: 1, Title: "Foundations", Difficulty: "Beginner", Duration: "4 weeks"},
		},
	}

	var sb strings.Builder
	printPlan(&sb, q, courses, roadmap, "out.png", 1500*time.Millisecond)
	out := sb.String()

	for _, want := range []string{
		"LEARNING PLAN: MACHINE LEARNING",
		"Beginner (1 courses)",
		"Intermediate (1 courses)",
		"Advanced (1 courses)",
		"Step 1: Foundations [Beginner, 4 weeks]",
		"Roadmap image saved to out.png",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	// Difficulty groups appear in progression order.
	beg := strings.Index(out, "Beg Course")
	mid := strings.Index(out, "Int Course")
	adv := strings.Index(out, "Adv Course")
	if beg == -1 || mid == -1 || adv == -1 || !(beg < mid && mid < adv) {
		t.Fatalf("courses out of level order: beginner=%d intermediate=%d advanced=%d", beg, mid, adv)
	}
}

func TestPrintStats(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	printStats(&sb, genai.Stats{TotalRequests: 3, TotalErrors: 1, SuccessRate: 66.67}, 2)
	out := sb.String()

	for _, want := range []string{"Requests:     3", "Errors:       1", "Success rate: 66.67%", "API keys:     2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
