// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MCMartinLee/FindTime/internal/model"
	"github.com/MCMartinLee/FindTime/internal/repository"
	"github.com/MCMartinLee/FindTime/internal/schedule"
	"github.com/MCMartinLee/FindTime/internal/timeutil"
)

// EventStore is the persistence surface the service needs for events.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// ResponseStore is the persistence surface for availability responses.
type ResponseStore interface {
	Create(ctx context.Context, resp *model.Response) (*model.Response, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Response, error)
}

// EventView is everything a viewer needs for one event page: the event, its
// responses, and the ranked tallies recomputed fresh from those responses.
// Nothing here is cached; every load re-fetches and re-aggregates, so two
// loads with no intervening writes always agree.
type EventView struct {
	Event            *model.Event      `json:"event"`
	Responses        []model.Response  `json:"responses"`
	Tallies          []model.SlotTally `json:"tallies"`
	ParticipantCount int               `json:"participant_count"`
	DisplayZone      string            `json:"display_zone"`
}

// EventService orchestrates creation, submission, and reload of events.
type EventService struct {
	events    EventStore
	responses ResponseStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, responses ResponseStore) *EventService {
	return &EventService{events: events, responses: responses}
}

// CreateEvent validates the request, assembles the event, and persists it.
// Validation failures surface as the model sentinel errors; store failures
// come back wrapped so callers can tell the two apart.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event, err := model.BuildEvent(req.Title, req.Timezone, req.Slots)
	if err != nil {
		return nil, err
	}
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

// LoadEvent fetches an event and all of its responses and recomputes the
// ranked tallies. A missing event yields repository.ErrNotFound, which is a
// normal outcome for a stale share link, not a fault. viewerZone optionally
// overrides the event's display timezone for the slot labels; it never
// affects the tallies themselves.
func (s *EventService) LoadEvent(ctx context.Context, id string, viewerZone string) (*EventView, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	responses, err := s.responses.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	if responses == nil {
		responses = []model.Response{}
	}

	zone := strings.TrimSpace(viewerZone)
	if zone == "" {
		zone = event.Timezone
	}

	tallies := schedule.Aggregate(event, responses)
	for i := range tallies {
		tallies[i].Display = timeutil.FormatUTCStringInZone(tallies[i].Slot.StartUTC, zone)
	}

	return &EventView{
		Event:            event,
		Responses:        responses,
		Tallies:          tallies,
		ParticipantCount: len(responses),
		DisplayZone:      zone,
	}, nil
}

// SubmitResponse validates and persists one availability submission for an
// existing event. The event is fetched first so a dead share link fails with
// NotFound before any write is attempted. The caller is expected to re-run
// LoadEvent afterwards for a fresh tally; the service keeps no cache.
func (s *EventService) SubmitResponse(ctx context.Context, eventID string, req model.SubmitResponseRequest) (*model.Response, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("check event: %w", err)
	}

	resp, err := model.BuildResponse(req.Name, req.SelectedSlotIDs)
	if err != nil {
		return nil, err
	}
	resp.EventID = eventID

	created, err := s.responses.Create(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("submit response: %w", err)
	}
	return created, nil
}
