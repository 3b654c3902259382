// Package recommend turns a user's learning profile into course
// recommendations and a learning roadmap via a generative model.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shahiilr/roadmap/internal/cache"
	"github.com/shahiilr/roadmap/internal/metrics"
)

// Generator issues one prompt upstream and returns the raw model text.
// Satisfied by *genai.Executor.
type Generator interface {
	Execute(ctx context.Context, prompt string) (string, error)
}

// Service composes the response cache and the resilient executor.
type Service struct {
	generator Generator
	cache     cache.ResponseCache
	logger    *zap.Logger
}

func NewService(generator Generator, responseCache cache.ResponseCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		cache:     responseCache,
		logger:    logger.Named("recommend"),
	}
}

// Recommend returns course recommendations for the query, serving from the
// cache when the normalized query has been answered before.
func (s *Service) Recommend(ctx context.Context, q Query) ([]Course, error) {
	start := time.Now()

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: invalid query: %w", err)
	}

	cachedBytes, hit, cacheErr := s.cache.Get(ctx, q.Interests, q.Skills, q.Goals)
	if cacheErr != nil {
		// Cache is best-effort; log and treat as miss.
		s.logger.Warn("cache get failed", zap.Error(cacheErr))
	}
	if hit {
		var courses []Course
		if err := json.Unmarshal(cachedBytes, &courses); err != nil {
			s.logger.Warn("cached entry unreadable, regenerating", zap.Error(err))
		} else {
			s.logger.Info("serving cached recommendations",
				zap.Int("courses", len(courses)),
				zap.Duration("duration", time.Since(start)),
			)
			return courses, nil
		}
	}

	text, err := s.generator.Execute(ctx, coursePrompt(q))
	if err != nil {
		return nil, err
	}

	courses, err := parseCourses(text)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	// Only useful results are worth caching.
	if len(courses) > 0 {
		payload, err := json.Marshal(courses)
		if err == nil {
			if err := s.cache.Put(ctx, q.Interests, q.Skills, q.Goals, payload); err != nil {
				s.logger.Warn("cache put failed", zap.Error(err))
			}
		}
	}

	metrics.GenerationSeconds.WithLabelValues("courses").Observe(time.Since(start).Seconds())

	s.logger.Info("generated recommendations",
		zap.String("interests", q.Interests),
		zap.Int("courses", len(courses)),
		zap.Duration("duration", time.Since(start)),
	)
	return courses, nil
}

// Roadmap generates an 8-step learning roadmap for the subject. When the
// upstream call or the parse fails, a deterministic fallback roadmap is
// returned instead of an error so the rest of the plan still renders.
func (s *Service) Roadmap(ctx context.Context, subject string) (Roadmap, error) {
	start := time.Now()

	if subject == "" {
		return Roadmap{}, fmt.Errorf("recommend: subject is required")
	}

	text, err := s.generator.Execute(ctx, roadmapPrompt(subject))
	if err != nil {
		s.logger.Warn("roadmap generation failed, using fallback",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fallbackRoadmap(subject), nil
	}

	rm, err := parseRoadmap(text)
	if err != nil {
		s.logger.Warn("roadmap parse failed, using fallback",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fallbackRoadmap(subject), nil
	}

	metrics.GenerationSeconds.WithLabelValues("roadmap").Observe(time.Since(start).Seconds())

	s.logger.Info("generated roadmap",
		zap.String("subject", subject),
		zap.Int("steps", len(rm.LearningPath)),
		zap.Duration("duration", time.Since(start)),
	)
	return rm, nil
}

// ClearCache drops every cached recommendation.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

var fallbackStepTitles = [8]string{
	"Foundations",
	"Core Concepts",
	"Practical Skills",
	"Intermediate Topics",
	"Advanced Techniques",
	"Specialization",
	"Expert Level",
	"Mastery",
}

var fallbackStepDifficulty = [8]string{
	"Beginner", "Beginner",
	"Intermediate", "Intermediate", "Intermediate",
	"Advanced", "Advanced", "Advanced",
}

// fallbackRoadmap builds a generic 8-step path when the model gives nothing
// usable.
func fallbackRoadmap(subject string) Roadmap {
	steps := make([]Step, 0, len(fallbackStepTitles))
	for i, title := range fallbackStepTitles {
		steps = append(steps, Step{
			Step:        i + 1,
			Title:       fmt.Sprintf("Step %d: %s", i+1, title),
			Description: fmt.Sprintf("Learn %s concepts at step %d", subject, i+1),
			Duration:    "2-4 weeks",
			Difficulty:  fallbackStepDifficulty[i],
			Milestone:   fmt.Sprintf("Complete step %d objectives", i+1),
		})
	}
	return Roadmap{
		Subject:        subject,
		Overview:       fmt.Sprintf("A comprehensive learning path for %s covering fundamental to advanced concepts.", subject),
		TotalDuration:  "6-12 months",
		Prerequisites:  []string{"Basic computer literacy"},
		LearningPath:   steps,
		CareerOutcomes: []string{subject + " Specialist", subject + " Expert", subject + " Consultant"},
		Certifications: []string{"Professional certification programs available"},
		SalaryRange:    "Varies by location and experience",
		IndustryDemand: "Growing demand in various industries",
	}
}
