// Package repository implements all database queries for the scheduler.
// It uses pgx directly (no ORM) for transparency and performance.
//
// Events are stored as one row each with the candidate slots embedded as a
// JSONB document, mirroring the one-document-per-event shape the service
// treats as its unit of persistence. Responses live in a child table owned
// by the event row (ON DELETE CASCADE), so deleting an event removes its
// responses with it.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MCMartinLee/FindTime/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and returns it with a generated id and the
// server-assigned creation timestamp.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.ID = uuid.NewString()

	slotsDoc, err := json.Marshal(event.Slots)
	if err != nil {
		return nil, fmt.Errorf("encode slots: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO events (id, title, timezone, slots)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		event.ID, event.Title, event.Timezone, slotsDoc,
	).Scan(&event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// GetByID returns a single event or ErrNotFound. The slots document is
// decoded strictly: a row whose slots column cannot be decoded is reported
// as a store failure rather than silently producing a slotless event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var (
		e        model.Event
		slotsDoc []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, title, timezone, slots, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.Timezone, &slotsDoc, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := json.Unmarshal(slotsDoc, &e.Slots); err != nil {
		return nil, fmt.Errorf("decode slots for event %s: %w", id, err)
	}
	if e.Timezone == "" {
		e.Timezone = "UTC"
	}
	return &e, nil
}

// ResponseRepository handles persistence for availability responses.
type ResponseRepository struct {
	db *pgxpool.Pool
}

// NewResponseRepository constructs a ResponseRepository.
func NewResponseRepository(db *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create inserts a response for an event. Responses are append-only: there
// is no update or delete, and repeated submissions by the same name are
// independent rows. Each write is a single atomic insert, so a failure
// leaves no partial state behind.
func (r *ResponseRepository) Create(ctx context.Context, resp *model.Response) (*model.Response, error) {
	resp.ID = uuid.NewString()

	err := r.db.QueryRow(ctx,
		`INSERT INTO responses (id, event_id, name, selected_slot_ids)
		 VALUES ($1, $2, $3, $4)
		 RETURNING submitted_at`,
		resp.ID, resp.EventID, resp.Name, resp.SelectedSlotIDs,
	).Scan(&resp.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("insert response: %w", err)
	}
	return resp, nil
}

// ListByEvent returns all responses for an event in submission order.
func (r *ResponseRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Response, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, name, selected_slot_ids, submitted_at
		 FROM responses
		 WHERE event_id = $1
		 ORDER BY submitted_at ASC, id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var resp model.Response
		if err := rows.Scan(&resp.ID, &resp.EventID, &resp.Name, &resp.SelectedSlotIDs, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
