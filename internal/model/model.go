// Package model defines the core domain types for the meeting scheduler:
// events with candidate time slots, participant responses, and the ranked
// tallies computed from them.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/MCMartinLee/FindTime/internal/timeutil"
	"github.com/google/uuid"
)

// Validation errors surfaced inline to the user. They are expected outcomes
// of bad form input, never system faults.
var (
	ErrEmptyTitle   = errors.New("event title is required")
	ErrNoValidSlots = errors.New("at least one valid time slot is required")
	ErrEmptyName    = errors.New("name is required")
	ErrNoSelection  = errors.New("select at least one slot")
)

// AnonymousVoter labels a vote whose response carries an empty name.
const AnonymousVoter = "Anonymous"

// Slot is one candidate meeting time proposed by the organizer. StartUTC is
// a fully resolved ISO-8601 UTC instant; the id is unique within its event
// and never reused once created.
type Slot struct {
	ID       string `json:"id"`
	StartUTC string `json:"startUtc"`
}

// Event is a named, immutable collection of candidate slots. Slots are fixed
// at creation in input order; amending an event means creating a new one.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timezone  string    `json:"timezone"`
	Slots     []Slot    `json:"slots"`
	CreatedAt time.Time `json:"created_at"`
}

// Response is one participant's submission: a display name and the slot ids
// they can attend. A participant may submit any number of responses; each is
// an independent vote record, never an upsert. SelectedSlotIDs may reference
// slots unknown to the current event snapshot; such ids are ignored at
// aggregation time.
type Response struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	Name            string    `json:"name"`
	SelectedSlotIDs []string  `json:"selectedSlotIds"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// SlotTally is the computed standing of one slot: vote count, voter names in
// submission order, and whether every participant picked it.
type SlotTally struct {
	Slot              Slot     `json:"slot"`
	Count             int      `json:"count"`
	Voters            []string `json:"voters"`
	EveryoneAvailable bool     `json:"everyone_available"`
	Display           string   `json:"display,omitempty"`
}

// CreateEventRequest is the payload for creating a new event. Slots holds
// raw wall-clock inputs in the organizer's local zone.
type CreateEventRequest struct {
	Title    string   `json:"title"`
	Timezone string   `json:"timezone"`
	Slots    []string `json:"slots"`
}

// SubmitResponseRequest is the payload for submitting availability.
type SubmitResponseRequest struct {
	Name            string   `json:"name"`
	SelectedSlotIDs []string `json:"selectedSlotIds"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildEvent validates organizer input and assembles an Event. The title is
// trimmed and must be non-empty. Each raw slot input is normalized to UTC;
// inputs that fail to parse are silently dropped so a partially filled form
// is still usable, but at least one slot must survive. Every surviving slot
// gets a fresh collision-resistant id. An empty timezone defaults to "UTC".
// The event id and creation timestamp are assigned at persistence time.
func BuildEvent(title, timezone string, rawSlots []string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	var slots []Slot
	for _, raw := range rawSlots {
		instant, ok := timeutil.NormalizeLocalInput(raw)
		if !ok {
			continue
		}
		slots = append(slots, Slot{
			ID:       uuid.NewString(),
			StartUTC: instant.Format(time.RFC3339),
		})
	}
	if len(slots) == 0 {
		return nil, ErrNoValidSlots
	}

	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	return &Event{Title: title, Timezone: timezone, Slots: slots}, nil
}

// BuildResponse validates participant input and assembles a Response. The
// selected ids are deliberately not checked against any slot set: a response
// stays valid forever even when read against a different event snapshot, and
// stale ids are filtered defensively during aggregation instead.
func BuildResponse(name string, selectedSlotIDs []string) (*Response, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(selectedSlotIDs) == 0 {
		return nil, ErrNoSelection
	}
	return &Response{
		ID:              uuid.NewString(),
		Name:            name,
		SelectedSlotIDs: selectedSlotIDs,
	}, nil
}
