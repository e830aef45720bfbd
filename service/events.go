package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tanmay-37/event-ease/model"
)

// EventStore is the slice of the document store the host/user workflows
// need. *repo.FirestoreConnector satisfies it.
type EventStore interface {
	CreateEvent(ctx context.Context, event model.Event) (string, error)
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	UpdateEvent(ctx context.Context, eventID string, event model.Event) error
	RegisterForEvent(ctx context.Context, eventID string, reg model.Registration) (string, error)
	IncrementSearchCount(ctx context.Context, eventID string) error
	ListArchivedForUser(ctx context.Context, userID string) ([]model.ArchivedEvent, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]model.Registration, error)
}

// Events carries the host- and user-facing workflows: event creation
// and editing, registration, search tracking and past-events reads.
type Events struct {
	store EventStore
}

func NewEvents(store EventStore) *Events {
	return &Events{store: store}
}

// Create validates the event and stores it. The createdAt timestamp is
// assigned by the server.
func (s *Events) Create(ctx context.Context, event model.Event) (string, error) {
	if err := validateEvent(event); err != nil {
		return "", err
	}
	return s.store.CreateEvent(ctx, event)
}

// Get reads a single live event.
func (s *Events) Get(ctx context.Context, eventID string) (*model.Event, error) {
	if eventID == "" {
		return nil, model.ErrEventDoesNotExist
	}
	return s.store.GetEvent(ctx, eventID)
}

// Update overwrites an existing event after validation.
func (s *Events) Update(ctx context.Context, eventID string, event model.Event) error {
	if eventID == "" {
		return model.ErrEventDoesNotExist
	}
	if err := validateEvent(event); err != nil {
		return err
	}
	return s.store.UpdateEvent(ctx, eventID, event)
}

// Register records a user's registration for an event. The store runs
// the registration create and the registrationCount increment in one
// transaction; model.ErrEventDoesNotExist is returned when the event is
// gone (for example, already archived).
func (s *Events) Register(ctx context.Context, eventID string, reg model.Registration) (string, error) {
	if eventID == "" {
		return "", model.ErrEventDoesNotExist
	}
	if reg.UserID == "" {
		return "", fmt.Errorf("%w: userId is required", model.ErrInvalidRegistration)
	}
	if reg.FullName == "" {
		return "", fmt.Errorf("%w: fullName is required", model.ErrInvalidRegistration)
	}
	if reg.Email == "" {
		return "", fmt.Errorf("%w: email is required", model.ErrInvalidRegistration)
	}
	return s.store.RegisterForEvent(ctx, eventID, reg)
}

// TrackSearch bumps the event's search counter, feeding the trending
// ordering on the discover view.
func (s *Events) TrackSearch(ctx context.Context, eventID string) error {
	if eventID == "" {
		return model.ErrEventDoesNotExist
	}
	return s.store.IncrementSearchCount(ctx, eventID)
}

// PastEventsFor lists the archived per-registration records for the
// events this user attended.
func (s *Events) PastEventsFor(ctx context.Context, userID string) ([]model.ArchivedEvent, error) {
	return s.store.ListArchivedForUser(ctx, userID)
}

// RegistrationsFor lists the user's live registrations.
func (s *Events) RegistrationsFor(ctx context.Context, userID string) ([]model.Registration, error) {
	return s.store.ListUserRegistrations(ctx, userID)
}

func validateEvent(event model.Event) error {
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", model.ErrInvalidEvent)
	}
	if event.Venue == "" {
		return fmt.Errorf("%w: venue is required", model.ErrInvalidEvent)
	}
	if event.OwnerID == "" {
		return fmt.Errorf("%w: ownerId is required", model.ErrInvalidEvent)
	}
	if _, err := time.Parse(dateLayout, event.StartDate); err != nil {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", model.ErrInvalidEvent)
	}
	if _, err := time.Parse(timeLayout, event.StartTime); err != nil {
		return fmt.Errorf("%w: startTime must be HH:MM", model.ErrInvalidEvent)
	}
	if event.EndDate != "" {
		if _, err := time.Parse(dateLayout, event.EndDate); err != nil {
			return fmt.Errorf("%w: endDate must be YYYY-MM-DD", model.ErrInvalidEvent)
		}
	}
	if event.EndTime != "" {
		if _, err := time.Parse(timeLayout, event.EndTime); err != nil {
			return fmt.Errorf("%w: endTime must be HH:MM", model.ErrInvalidEvent)
		}
	}
	return nil
}
