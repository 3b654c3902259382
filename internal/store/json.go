package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shahiilr/roadmap/internal/recommend"
)

const (
	coursesFile         = "courses.json"
	profilesFile        = "profiles.json"
	recommendationsFile = "recommendations.json"
)

type jsonRecommendation struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	CourseID  int64     `json:"course_id"`
	Score     float64   `json:"recommendation_score"`
	CreatedAt time.Time `json:"created_at"`
}

// JSONStore keeps each record type in one JSON array file under dataDir.
// IDs are sequential per file, matching the array length.
type JSONStore struct {
	mu      sync.Mutex
	dataDir string
}

// OpenJSON creates the data directory if needed and returns a file-backed store.
func OpenJSON(dataDir string) (*JSONStore, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{dataDir: dataDir}, nil
}

func (s *JSONStore) SaveProfile(ctx context.Context, p Profile) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var profiles []Profile
	if err := s.loadFile(profilesFile, &profiles); err != nil {
		return 0, err
	}
	p.ID = int64(len(profiles)) + 1
	p.CreatedAt = time.Now().UTC()
	profiles = append(profiles, p)
	if err := s.saveFile(profilesFile, profiles); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *JSONStore) SaveCourse(ctx context.Context, c recommend.Course) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []StoredCourse
	if err := s.loadFile(coursesFile, &courses); err != nil {
		return 0, err
	}
	sc := StoredCourse{
		Course:    c,
		ID:        int64(len(courses)) + 1,
		CreatedAt: time.Now().UTC(),
	}
	courses = append(courses, sc)
	if err := s.saveFile(coursesFile, courses); err != nil {
		return 0, err
	}
	return sc.ID, nil
}

func (s *JSONStore) SaveRecommendation(ctx context.Context, profileID, courseID int64, score float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []jsonRecommendation
	if err := s.loadFile(recommendationsFile, &recs); err != nil {
		return err
	}
	recs = append(recs, jsonRecommendation{
		ID:        int64(len(recs)) + 1,
		ProfileID: profileID,
		CourseID:  courseID,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	})
	return s.saveFile(recommendationsFile, recs)
}

func (s *JSONStore) Courses(ctx context.Context, level string, limit int) ([]StoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []StoredCourse
	if err := s.loadFile(coursesFile, &courses); err != nil {
		return nil, err
	}

	if level != "" {
		filtered := courses[:0:0]
		for _, c := range courses {
			if strings.EqualFold(c.Level, level) {
				filtered = append(filtered, c)
			}
		}
		courses = filtered
	}
	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

func (s *JSONStore) ProfileRecommendations(ctx context.Context, profileID int64) ([]StoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []jsonRecommendation
	if err := s.loadFile(recommendationsFile, &recs); err != nil {
		return nil, err
	}
	var courses []StoredCourse
	if err := s.loadFile(coursesFile, &courses); err != nil {
		return nil, err
	}

	byID := make(map[int64]StoredCourse, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	var out []StoredCourse
	for _, r := range recs {
		if r.ProfileID != profileID {
			continue
		}
		c, ok := byID[r.CourseID]
		if !ok {
			continue
		}
		c.Score = r.Score
		out = append(out, c)
	}
	return out, nil
}

func (s *JSONStore) Close() error {
	return nil
}

// loadFile reads a JSON array file into dst; a missing file is an empty list.
func (s *JSONStore) loadFile(name string, dst any) error {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *JSONStore) saveFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
