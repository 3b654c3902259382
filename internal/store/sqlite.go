package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shahiilr/roadmap/internal/recommend"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    interests     TEXT NOT NULL,
    current_skills TEXT,
    career_goals  TEXT,
    created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    title         TEXT NOT NULL,
    platform      TEXT,
    instructor    TEXT,
    duration      TEXT,
    difficulty    TEXT,
    rating        TEXT,
    price         TEXT,
    description   TEXT,
    skills_gained TEXT,
    url           TEXT,
    level         TEXT,
    certification TEXT,
    source        TEXT,
    created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recommendations (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    profile_id INTEGER NOT NULL,
    course_id  INTEGER NOT NULL,
    recommendation_score REAL NOT NULL DEFAULT 1.0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (profile_id) REFERENCES profiles (id),
    FOREIGN KEY (course_id) REFERENCES courses (id)
);
`

// SQLiteStore persists plans in an embedded SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, p Profile) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	interests := strings.TrimSpace(p.Interests)
	if interests == "" {
		return 0, fmt.Errorf("interests are required")
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO profiles (interests, current_skills, career_goals, created_at)
		 VALUES (?, ?, ?, ?)`,
		interests,
		strings.TrimSpace(p.Skills),
		strings.TrimSpace(p.Goals),
		toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) SaveCourse(ctx context.Context, c recommend.Course) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(c.Title) == "" {
		return 0, fmt.Errorf("course title is required")
	}

	// Skills stored as a JSON string, one column per scalar field.
	skills, err := json.Marshal(c.SkillsGained)
	if err != nil {
		return 0, fmt.Errorf("encode skills: %w", err)
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO courses (
		   title, platform, instructor, duration, difficulty, rating, price,
		   description, skills_gained, url, level, certification, source, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title,
		c.Platform,
		c.Instructor,
		c.Duration,
		c.Difficulty,
		c.Rating,
		c.Price,
		c.Description,
		string(skills),
		c.URL,
		strings.ToLower(c.Level),
		c.Certification,
		c.Source,
		toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert course: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) SaveRecommendation(ctx context.Context, profileID, courseID int64, score float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO recommendations (profile_id, course_id, recommendation_score, created_at)
		 VALUES (?, ?, ?, ?)`,
		profileID,
		courseID,
		score,
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Courses(ctx context.Context, level string, limit int) ([]StoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT id, title, platform, instructor, duration, difficulty, rating, price,
	                 description, skills_gained, url, level, certification, source, created_at
	          FROM courses`
	var args []any
	if level != "" {
		query += " WHERE level = ?"
		args = append(args, strings.ToLower(level))
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var out []StoredCourse
	for rows.Next() {
		c, err := scanCourse(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ProfileRecommendations(ctx context.Context, profileID int64) ([]StoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT c.id, c.title, c.platform, c.instructor, c.duration, c.difficulty, c.rating,
		        c.price, c.description, c.skills_gained, c.url, c.level, c.certification,
		        c.source, c.created_at, r.recommendation_score
		 FROM courses c
		 JOIN recommendations r ON c.id = r.course_id
		 WHERE r.profile_id = ?
		 ORDER BY r.recommendation_score DESC, r.created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var out []StoredCourse
	for rows.Next() {
		c, err := scanCourse(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCourse(rows *sql.Rows, withScore bool) (StoredCourse, error) {
	var c StoredCourse
	var skills sql.NullString
	var createdAt int64

	dest := []any{
		&c.ID, &c.Title, &c.Platform, &c.Instructor, &c.Duration, &c.Difficulty,
		&c.Rating, &c.Price, &c.Description, &skills, &c.URL, &c.Level,
		&c.Certification, &c.Source, &createdAt,
	}
	if withScore {
		dest = append(dest, &c.Score)
	}
	if err := rows.Scan(dest...); err != nil {
		return StoredCourse{}, fmt.Errorf("scan course: %w", err)
	}

	if skills.Valid && skills.String != "" {
		if err := json.Unmarshal([]byte(skills.String), &c.SkillsGained); err != nil {
			return StoredCourse{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}
