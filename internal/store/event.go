package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event represents one access status transition stored in the database.
type Event struct {
	ID        string
	Status    string
	Labels    []string
	CreatedAt time.Time
}

// EventRepository provides persistence operations for access events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts a new transition event and returns it with its generated ID.
func (r *EventRepository) Record(status string, labels []string) (*Event, error) {
	if labels == nil {
		labels = []string{}
	}

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("marshal labels: %w", err)
	}

	e := &Event{
		ID:        uuid.NewString(),
		Status:    status,
		Labels:    labels,
		CreatedAt: time.Now(),
	}

	_, err = r.db.Exec(
		`INSERT INTO events (id, status, labels, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Status, string(labelsJSON), e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}
	var labels string

	err := r.db.QueryRow(
		`SELECT id, status, labels, created_at FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Status, &labels, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(labels), &e.Labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels: %w", err)
	}
	return e, nil
}

// Recent retrieves the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, status, labels, created_at FROM events
		 ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var labels string

		if err := rows.Scan(&e.ID, &e.Status, &labels, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(labels), &e.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByStatus returns how many events were recorded per status.
func (r *EventRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM events GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
