// Package storage provides SQLite-based persistence for sessions and rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/numhunt/internal/games/numhunt"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// SessionEntry is one played session.
type SessionEntry struct {
	SessionID string
	Scene     string
	Language  string
	Seed      int64
	Score     int
	Mistakes  int
	Rounds    int
	Finished  bool
	Duration  time.Duration
	CreatedAt time.Time
}

// RoundEntry is one completed round of a session.
type RoundEntry struct {
	ID        int64
	SessionID string
	Round     int
	Goal      string
	Mistakes  int
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			scene TEXT NOT NULL,
			language TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			mistakes INTEGER NOT NULL DEFAULT 0,
			rounds INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scene ON sessions(scene);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(scene, finished DESC, score DESC, mistakes ASC);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			goal TEXT NOT NULL,
			mistakes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_goal ON rounds(goal);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a completed round. Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO rounds (session_id, round, goal, mistakes, duration_ms) VALUES (?, ?, ?, ?, ?)",
		r.SessionID, r.Round, r.Goal, r.Mistakes, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveSession inserts a session or updates it if the ID already exists.
func (s *Store) SaveSession(e SessionEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, scene, language, seed, score, mistakes, rounds, finished, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			scene = excluded.scene,
			language = excluded.language,
			score = excluded.score,
			mistakes = excluded.mistakes,
			rounds = excluded.rounds,
			finished = excluded.finished,
			duration_ms = excluded.duration_ms`,
		e.SessionID, e.Scene, e.Language, e.Seed, e.Score, e.Mistakes, e.Rounds, e.Finished, e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

const sessionColumns = `session_id, scene, language, seed, score, mistakes, rounds, finished, duration_ms, created_at`

// TopSessions retrieves the best sessions of a scene, or of all scenes when
// scene is empty. Finished sessions rank first, then higher scores, fewer
// mistakes and shorter durations.
func (s *Store) TopSessions(scene string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR scene = ?
		 ORDER BY finished DESC, score DESC, mistakes ASC, duration_ms ASC
		 LIMIT ?`,
		scene, scene, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// RecentSessions retrieves the most recently saved sessions.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent sessions: %w", err)
	}
	return scanSessions(rows)
}

// SessionByID retrieves one session. Returns nil if it does not exist.
func (s *Store) SessionByID(sessionID string) (*SessionEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	entries, err := scanSessions(rows)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

func scanSessions(rows *sql.Rows) ([]SessionEntry, error) {
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.SessionID, &e.Scene, &e.Language, &e.Seed, &e.Score, &e.Mistakes,
			&e.Rounds, &e.Finished, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SessionRounds retrieves the rounds of a session in play order.
func (s *Store) SessionRounds(sessionID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, round, goal, mistakes, duration_ms, created_at
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY round ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Round, &e.Goal, &e.Mistakes, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearScene deletes the sessions of a scene and their rounds.
func (s *Store) ClearScene(scene string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rounds WHERE session_id IN (SELECT session_id FROM sessions WHERE scene = ?)`, scene); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE scene = ?`, scene); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// RecordRound implements numhunt.Recorder.
func (s *Store) RecordRound(r numhunt.RoundResult) error {
	_, err := s.SaveRound(RoundEntry{
		SessionID: r.SessionID,
		Round:     r.Round,
		Goal:      r.Goal,
		Mistakes:  r.Mistakes,
		Duration:  r.Duration,
	})
	return err
}

// RecordSession implements numhunt.Recorder.
func (s *Store) RecordSession(r numhunt.SessionResult) error {
	return s.SaveSession(SessionEntry{
		SessionID: r.SessionID,
		Scene:     r.Scene,
		Language:  r.Language,
		Seed:      r.Seed,
		Score:     r.Score,
		Mistakes:  r.Mistakes,
		Rounds:    r.Rounds,
		Finished:  r.Finished,
		Duration:  r.Duration,
	})
}

// Ensure Store implements Recorder
var _ numhunt.Recorder = (*Store)(nil)

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	Scene        string
	Sessions     int
	Finished     int
	BestScore    int
	FewestMisses int // among finished sessions; 0 if none finished
	AvgDuration  time.Duration
	LastPlayed   time.Time
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(scene string) (*SceneStats, error) {
	stats := &SceneStats{Scene: scene}

	var avgMS float64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(finished), 0), COALESCE(MAX(score), 0),
		        COALESCE(MIN(CASE WHEN finished THEN mistakes END), 0),
		        COALESCE(AVG(duration_ms), 0), MAX(created_at)
		 FROM sessions WHERE scene = ?`,
		scene,
	).Scan(&stats.Sessions, &stats.Finished, &stats.BestScore, &stats.FewestMisses, &avgMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	stats.AvgDuration = time.Duration(avgMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllSceneStats retrieves statistics for every scene that has been played.
func (s *Store) GetAllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT scene FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list scenes: %w", err)
	}
	var scenes []string
	for rows.Next() {
		var scene string
		if err := rows.Scan(&scene); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan scene: %w", err)
		}
		scenes = append(scenes, scene)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make(map[string]*SceneStats, len(scenes))
	for _, scene := range scenes {
		st, err := s.GetSceneStats(scene)
		if err != nil {
			return nil, err
		}
		stats[scene] = st
	}
	return stats, nil
}

// GoalStat summarizes how hard a goal number has been to find.
type GoalStat struct {
	Goal        string
	Rounds      int
	AvgMistakes float64
	AvgDuration time.Duration
}

// GoalStats returns per-goal statistics, hardest (most mistakes) first.
func (s *Store) GoalStats() ([]GoalStat, error) {
	rows, err := s.db.Query(
		`SELECT goal, COUNT(*), AVG(mistakes), AVG(duration_ms)
		 FROM rounds
		 GROUP BY goal
		 ORDER BY AVG(mistakes) DESC, goal ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get goal stats: %w", err)
	}
	defer rows.Close()

	var stats []GoalStat
	for rows.Next() {
		var g GoalStat
		var avgMS float64
		if err := rows.Scan(&g.Goal, &g.Rounds, &g.AvgMistakes, &avgMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan goal row: %w", err)
		}
		g.AvgDuration = time.Duration(avgMS) * time.Millisecond
		stats = append(stats, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
