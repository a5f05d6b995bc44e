// ABOUTME: Routing decision audit log backed by SQLite
// ABOUTME: Persists one compact row per processed query for later review
package sqlite

import (
	"database/sql"
	"time"

	"github.com/careroute/careroute/internal/models"
)

// DecisionStore persists routing decisions
type DecisionStore struct {
	db *DB
}

// NewDecisionStore creates a new DecisionStore
func NewDecisionStore(db *DB) *DecisionStore {
	return &DecisionStore{db: db}
}

// LogDecision records one routing decision
func (s *DecisionStore) LogDecision(decision models.RoutingDecision) error {
	var classifier string
	isHealthcare := 0
	if decision.Classification != nil {
		classifier = decision.Classification.SourceName
		if decision.Classification.IsHealthcare {
			isHealthcare = 1
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO routing_decisions
			(id, query, status, confidence, target_source, classifier, is_healthcare, message, processing_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, decision.DecisionID, decision.Query, string(decision.Status), decision.Confidence,
		nullString(decision.TargetSource), nullString(classifier), isHealthcare,
		nullString(decision.Message), decision.ProcessingTimeMS, time.Now())

	return err
}

// DecisionRecord is one persisted audit row
type DecisionRecord struct {
	DecisionID       string
	Query            string
	Status           models.RoutingStatus
	Confidence       float64
	TargetSource     string
	Classifier       string
	IsHealthcare     bool
	Message          string
	ProcessingTimeMS float64
	CreatedAt        time.Time
}

// Recent returns the most recent decisions, newest first
func (s *DecisionStore) Recent(limit int) ([]DecisionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, query, status, confidence, target_source, classifier, is_healthcare, message, processing_time_ms, created_at
		FROM routing_decisions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []DecisionRecord
	for rows.Next() {
		rec, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountByStatus returns how many persisted decisions carry each status
func (s *DecisionStore) CountByStatus() (map[models.RoutingStatus]int, error) {
	rows, err := s.db.Query(`
		SELECT status, COUNT(*)
		FROM routing_decisions
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[models.RoutingStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[models.RoutingStatus(status)] = count
	}

	return counts, rows.Err()
}

func scanDecision(rows *sql.Rows) (DecisionRecord, error) {
	var (
		rec          DecisionRecord
		target       sql.NullString
		classifier   sql.NullString
		message      sql.NullString
		isHealthcare int
		status       string
	)

	err := rows.Scan(&rec.DecisionID, &rec.Query, &status, &rec.Confidence,
		&target, &classifier, &isHealthcare, &message, &rec.ProcessingTimeMS, &rec.CreatedAt)
	if err != nil {
		return DecisionRecord{}, err
	}

	rec.Status = models.RoutingStatus(status)
	rec.TargetSource = target.String
	rec.Classifier = classifier.String
	rec.Message = message.String
	rec.IsHealthcare = isHealthcare == 1

	return rec, nil
}

// nullString converts empty strings to NULL for optional columns
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
