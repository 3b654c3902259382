package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shahiilr/roadmap/internal/genai"
	"github.com/shahiilr/roadmap/internal/recommend"
)

const rule = "============================================================"

func printPlan(w io.Writer, q recommend.Query, courses []recommend.Course, roadmap recommend.Roadmap, imagePath string, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "LEARNING PLAN: %s\n", strings.ToUpper(q.Interests))
	fmt.Fprintln(w, rule)

	byLevel := recommend.PartitionByLevel(courses)
	groups := []struct {
		name    string
		courses []recommend.Course
	}{
		{"Beginner", byLevel.Beginner},
		{"Intermediate", byLevel.Intermediate},
		{"Advanced", byLevel.Advanced},
	}
	for _, g := range groups {
		if len(g.courses) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d courses)\n", g.name, len(g.courses))
		fmt.Fprintln(w, strings.Repeat("-", len(g.name)+12))
		for i, c := range g.courses {
			fmt.Fprintf(w, "%d. %s\n", i+1, c.Title)
			fmt.Fprintf(w, "   Platform: %s", c.Platform)
			if c.Duration != "" {
				fmt.Fprintf(w, " | Duration: %s", c.Duration)
			}
			if c.Price != "" {
				fmt.Fprintf(w, " | Price: %s", c.Price)
			}
			fmt.Fprintln(w)
			if c.Description != "" {
				fmt.Fprintf(w, "   %s\n", c.Description)
			}
			fmt.Fprintf(w, "   %s\n", c.URL)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "LEARNING PATH (%s)\n", roadmap.TotalDuration)
	fmt.Fprintln(w, rule)
	if roadmap.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", roadmap.Overview)
	}
	for _, step := range roadmap.LearningPath {
		fmt.Fprintf(w, "\nStep %d: %s [%s, %s]\n", step.Step, step.Title, step.Difficulty, step.Duration)
		if step.Description != "" {
			fmt.Fprintf(w, "   %s\n", step.Description)
		}
		if len(step.Topics) > 0 {
			fmt.Fprintf(w, "   Topics: %s\n", strings.Join(step.Topics, ", "))
		}
		if step.Milestone != "" {
			fmt.Fprintf(w, "   Milestone: %s\n", step.Milestone)
		}
	}
	if len(roadmap.CareerOutcomes) > 0 {
		fmt.Fprintf(w, "\nCareer outcomes: %s\n", strings.Join(roadmap.CareerOutcomes, ", "))
	}
	if roadmap.SalaryRange != "" {
		fmt.Fprintf(w, "Salary range: %s\n", roadmap.SalaryRange)
	}

	if imagePath != "" {
		fmt.Fprintf(w, "\nRoadmap image saved to %s\n", imagePath)
	}
	fmt.Fprintf(w, "\nGenerated in %s\n", elapsed.Round(time.Millisecond))
}

func printStats(w io.Writer, stats genai.Stats, keyCount int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "API usage")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "Requests:     %d\n", stats.TotalRequests)
	fmt.Fprintf(w, "Errors:       %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "Success rate: %.2f%%\n", stats.SuccessRate)
	fmt.Fprintf(w, "API keys:     %d\n", keyCount)
}
