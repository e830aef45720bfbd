package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tanmay-37/event-ease/model"
)

const (
	// cleanupInterval is how often the archival pass runs. It is fixed;
	// there is no configuration surface for the trigger.
	cleanupInterval = 15 * time.Minute

	// gracePeriod is added to an event's start instant to obtain its
	// effective end. Stored endDate/endTime are not consulted.
	gracePeriod = 2 * time.Hour

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ArchiveStore is the slice of the document store the archiver needs.
// *repo.FirestoreConnector satisfies it.
type ArchiveStore interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListEventRegistrations(ctx context.Context, eventID string) ([]model.Registration, error)
	ArchiveRecord(ctx context.Context, rec model.ArchivedEvent) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
	DeleteRegistration(ctx context.Context, registrationID string) error
}

// Archiver moves ended events and their registrations from the live
// collections into the recentEvents archive. Migration is archive-first:
// every archive write for an event completes before any delete of its
// live documents begins, so a partial failure can duplicate archive
// records on a later pass but never lose data.
type Archiver struct {
	store ArchiveStore
	loc   *time.Location

	now func() time.Time
}

// NewArchiver creates an archiver. loc pins the timezone in which the
// stored date/time strings are interpreted; nil means local time.
func NewArchiver(store ArchiveStore, loc *time.Location) *Archiver {
	if loc == nil {
		loc = time.Local
	}
	return &Archiver{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// Start runs one cleanup pass immediately and then one per interval
// until ctx is done. It blocks.
func (a *Archiver) Start(ctx context.Context) {
	a.Run(ctx)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Run(ctx)
		}
	}
}

// Run performs a single cleanup pass over the full events collection.
// It returns true on full completion and false if the pass was aborted
// by a store error; it never panics toward the scheduler. An event with
// an unparseable start date/time is skipped with a warning rather than
// aborting the pass.
func (a *Archiver) Run(ctx context.Context) bool {
	now := a.now().In(a.loc)

	events, err := a.store.ListEvents(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cleanup aborted: listing events")
		return false
	}
	log.Debug().Int("events", len(events)).Msg("cleanup pass started")

	archived := 0
	for _, event := range events {
		start, err := a.eventStart(event)
		if err != nil {
			log.Warn().Err(err).
				Str("eventId", event.DocumentID).
				Msg("skipping event with unparseable start date/time")
			continue
		}

		// Strictly after: an event ending exactly now stays live.
		if !now.After(start.Add(gracePeriod)) {
			continue
		}

		if err := a.migrate(ctx, event); err != nil {
			log.Error().Err(err).
				Str("eventId", event.DocumentID).
				Msg("cleanup aborted: migrating event")
			return false
		}
		archived++
		log.Info().
			Str("eventId", event.DocumentID).
			Str("title", event.Title).
			Msg("event archived")
	}

	log.Debug().Int("archived", archived).Msg("cleanup pass finished")
	return true
}

// migrate archives one expired event plus its registrations, then
// deletes the live documents. The per-registration archive writes fan
// out concurrently and are joined before deletion begins.
func (a *Archiver) migrate(ctx context.Context, event model.Event) error {
	registrations, err := a.store.ListEventRegistrations(ctx, event.DocumentID)
	if err != nil {
		return fmt.Errorf("listing registrations: %w", err)
	}
	count := int64(len(registrations))

	if _, err := a.store.ArchiveRecord(ctx, model.NewArchiveMain(event, count)); err != nil {
		return fmt.Errorf("archiving event: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, reg := range registrations {
		g.Go(func() error {
			_, err := a.store.ArchiveRecord(gctx, model.NewArchiveRegistration(event, reg, count))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("archiving registrations: %w", err)
	}

	if err := a.store.DeleteEvent(ctx, event.DocumentID); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	for _, reg := range registrations {
		if err := a.store.DeleteRegistration(ctx, reg.DocumentID); err != nil {
			return fmt.Errorf("deleting registration %s: %w", reg.DocumentID, err)
		}
	}

	return nil
}

// eventStart combines the stored calendar date and time-of-day strings
// in the archiver's timezone.
func (a *Archiver) eventStart(event model.Event) (time.Time, error) {
	return time.ParseInLocation(
		dateLayout+" "+timeLayout,
		event.StartDate+" "+event.StartTime,
		a.loc,
	)
}
