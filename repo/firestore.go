package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tanmay-37/event-ease/model"
)

const (
	eventsCollection        = "events"
	registrationsCollection = "registrations"
	archiveCollection       = "recentEvents"
)

// FirestoreConnector struct to hold the Firebase app and Firestore client
type FirestoreConnector struct {
	app    *firebase.App
	client *firestore.Client
}

// NewFirestoreConnector creates a new Firestore connector. When
// credentialsFile is empty, application default credentials are used.
func NewFirestoreConnector(ctx context.Context, projectID string, credentialsFile string) (*FirestoreConnector, error) {
	config := &firebase.Config{
		ProjectID: projectID,
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	return &FirestoreConnector{
		app:    app,
		client: client,
	}, nil
}

// ListEvents lists every document in the events collection. No filter
// is applied; expiry filtering happens in the caller.
func (fc *FirestoreConnector) ListEvents(ctx context.Context) ([]model.Event, error) {
	iter := fc.client.Collection(eventsCollection).Documents(ctx)
	defer iter.Stop()

	var events []model.Event
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing events: %w", err)
		}

		var event model.Event
		if err := doc.DataTo(&event); err != nil {
			return nil, fmt.Errorf("error decoding event %s: %w", doc.Ref.ID, err)
		}
		event.DocumentID = doc.Ref.ID
		events = append(events, event)
	}

	return events, nil
}

// ListEventRegistrations lists the registrations whose eventId field
// equals the given event id.
func (fc *FirestoreConnector) ListEventRegistrations(ctx context.Context, eventID string) ([]model.Registration, error) {
	iter := fc.client.Collection(registrationsCollection).
		Where("eventId", "==", eventID).
		Documents(ctx)
	defer iter.Stop()

	var registrations []model.Registration
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing registrations for event %s: %w", eventID, err)
		}

		var reg model.Registration
		if err := doc.DataTo(&reg); err != nil {
			return nil, fmt.Errorf("error decoding registration %s: %w", doc.Ref.ID, err)
		}
		reg.DocumentID = doc.Ref.ID
		registrations = append(registrations, reg)
	}

	return registrations, nil
}

// ArchiveRecord creates one record in the recentEvents collection.
// The archivedAt field is assigned by the server.
func (fc *FirestoreConnector) ArchiveRecord(ctx context.Context, rec model.ArchivedEvent) (string, error) {
	ref, _, err := fc.client.Collection(archiveCollection).Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("error creating archive record: %w", err)
	}
	return ref.ID, nil
}

// DeleteEvent deletes an event document by its ID.
func (fc *FirestoreConnector) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := fc.client.Collection(eventsCollection).Doc(eventID).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting event %s: %w", eventID, err)
	}
	return nil
}

// DeleteRegistration deletes a registration document by its ID.
func (fc *FirestoreConnector) DeleteRegistration(ctx context.Context, registrationID string) error {
	if _, err := fc.client.Collection(registrationsCollection).Doc(registrationID).Delete(ctx); err != nil {
		return fmt.Errorf("error deleting registration %s: %w", registrationID, err)
	}
	return nil
}

// CreateEvent creates a new event document and returns its ID.
func (fc *FirestoreConnector) CreateEvent(ctx context.Context, event model.Event) (string, error) {
	ref, _, err := fc.client.Collection(eventsCollection).Add(ctx, event)
	if err != nil {
		return "", fmt.Errorf("error creating event: %w", err)
	}
	return ref.ID, nil
}

// GetEvent reads an event document by its ID.
func (fc *FirestoreConnector) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	doc, err := fc.client.Collection(eventsCollection).Doc(eventID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrEventDoesNotExist
		}
		return nil, fmt.Errorf("error reading event %s: %w", eventID, err)
	}

	var event model.Event
	if err := doc.DataTo(&event); err != nil {
		return nil, fmt.Errorf("error decoding event %s: %w", eventID, err)
	}
	event.DocumentID = doc.Ref.ID
	return &event, nil
}

// UpdateEvent overwrites an existing event document.
func (fc *FirestoreConnector) UpdateEvent(ctx context.Context, eventID string, event model.Event) error {
	if _, err := fc.client.Collection(eventsCollection).Doc(eventID).Set(ctx, event); err != nil {
		return fmt.Errorf("error updating event %s: %w", eventID, err)
	}
	return nil
}

// RegisterForEvent creates a registration and increments the event's
// registrationCount inside one transaction. Returns the new
// registration's ID, or model.ErrEventDoesNotExist when the event is
// gone (for example, already archived).
func (fc *FirestoreConnector) RegisterForEvent(ctx context.Context, eventID string, reg model.Registration) (string, error) {
	eventRef := fc.client.Collection(eventsCollection).Doc(eventID)
	regRef := fc.client.Collection(registrationsCollection).NewDoc()
	reg.EventID = eventID

	err := fc.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(eventRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return model.ErrEventDoesNotExist
			}
			return err
		}
		if !snap.Exists() {
			return model.ErrEventDoesNotExist
		}

		if err := tx.Create(regRef, reg); err != nil {
			return err
		}
		return tx.Update(eventRef, []firestore.Update{
			{Path: "registrationCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if errors.Is(err, model.ErrEventDoesNotExist) {
			return "", model.ErrEventDoesNotExist
		}
		return "", fmt.Errorf("error registering for event %s: %w", eventID, err)
	}

	return regRef.ID, nil
}

// IncrementSearchCount bumps the event's searchCount by one.
func (fc *FirestoreConnector) IncrementSearchCount(ctx context.Context, eventID string) error {
	_, err := fc.client.Collection(eventsCollection).Doc(eventID).Update(ctx, []firestore.Update{
		{Path: "searchCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.ErrEventDoesNotExist
		}
		return fmt.Errorf("error incrementing search count for event %s: %w", eventID, err)
	}
	return nil
}

// ListArchivedForUser lists the archive records whose userId field
// equals the given user id, i.e. the per-registration records for the
// past events this user attended.
func (fc *FirestoreConnector) ListArchivedForUser(ctx context.Context, userID string) ([]model.ArchivedEvent, error) {
	iter := fc.client.Collection(archiveCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var records []model.ArchivedEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing archived events for user %s: %w", userID, err)
		}

		var rec model.ArchivedEvent
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("error decoding archive record %s: %w", doc.Ref.ID, err)
		}
		rec.DocumentID = doc.Ref.ID
		records = append(records, rec)
	}

	return records, nil
}

// ListUserRegistrations lists the live registrations created by the
// given user.
func (fc *FirestoreConnector) ListUserRegistrations(ctx context.Context, userID string) ([]model.Registration, error) {
	iter := fc.client.Collection(registrationsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var registrations []model.Registration
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing registrations for user %s: %w", userID, err)
		}

		var reg model.Registration
		if err := doc.DataTo(&reg); err != nil {
			return nil, fmt.Errorf("error decoding registration %s: %w", doc.Ref.ID, err)
		}
		reg.DocumentID = doc.Ref.ID
		registrations = append(registrations, reg)
	}

	return registrations, nil
}

// Close closes the Firestore client.
func (fc *FirestoreConnector) Close() error {
	return fc.client.Close()
}
