package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tanmay-37/event-ease/model"
)

// fakeStore is an in-memory stand-in for the Firestore connector. It
// records every mutating operation in ops so tests can assert ordering,
// and lets tests inject errors per operation.
type fakeStore struct {
	mu            sync.Mutex
	events        map[string]model.Event
	registrations map[string]model.Registration
	archive       []model.ArchivedEvent
	nextID        int
	ops           []string

	listEventsErr  error
	listRegsErr    error
	archiveErr     error
	deleteEventErr error
	deleteRegErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:        make(map[string]model.Event),
		registrations: make(map[string]model.Registration),
	}
}

func (f *fakeStore) putEvent(id string, event model.Event) {
	event.DocumentID = id
	f.events[id] = event
}

func (f *fakeStore) putRegistration(id string, reg model.Registration) {
	reg.DocumentID = id
	f.registrations[id] = reg
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listEventsErr != nil {
		return nil, f.listEventsErr
	}
	events := make([]model.Event, 0, len(f.events))
	for _, event := range f.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].DocumentID < events[j].DocumentID })
	return events, nil
}

func (f *fakeStore) ListEventRegistrations(ctx context.Context, eventID string) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listRegsErr != nil {
		return nil, f.listRegsErr
	}
	var regs []model.Registration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].DocumentID < regs[j].DocumentID })
	return regs, nil
}

func (f *fakeStore) ArchiveRecord(ctx context.Context, rec model.ArchivedEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "archive:"+rec.OriginalEventID)
	if f.archiveErr != nil {
		return "", f.archiveErr
	}
	id := f.genID("arch")
	rec.DocumentID = id
	f.archive = append(f.archive, rec)
	return id, nil
}

func (f *fakeStore) DeleteEvent(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "deleteEvent:"+eventID)
	if f.deleteEventErr != nil {
		return f.deleteEventErr
	}
	delete(f.events, eventID)
	return nil
}

func (f *fakeStore) DeleteRegistration(ctx context.Context, registrationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "deleteRegistration:"+registrationID)
	if f.deleteRegErr != nil {
		return f.deleteRegErr
	}
	delete(f.registrations, registrationID)
	return nil
}

func (f *fakeStore) CreateEvent(ctx context.Context, event model.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.genID("evt")
	event.DocumentID = id
	f.events[id] = event
	return id, nil
}

func (f *fakeStore) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return nil, model.ErrEventDoesNotExist
	}
	return &event, nil
}

func (f *fakeStore) UpdateEvent(ctx context.Context, eventID string, event model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.DocumentID = eventID
	f.events[eventID] = event
	return nil
}

func (f *fakeStore) RegisterForEvent(ctx context.Context, eventID string, reg model.Registration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return "", model.ErrEventDoesNotExist
	}
	id := f.genID("reg")
	reg.EventID = eventID
	reg.DocumentID = id
	f.registrations[id] = reg
	event.RegistrationCount++
	f.events[eventID] = event
	return id, nil
}

func (f *fakeStore) IncrementSearchCount(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return model.ErrEventDoesNotExist
	}
	event.SearchCount++
	f.events[eventID] = event
	return nil
}

func (f *fakeStore) ListArchivedForUser(ctx context.Context, userID string) ([]model.ArchivedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []model.ArchivedEvent
	for _, rec := range f.archive {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeStore) ListUserRegistrations(ctx context.Context, userID string) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var regs []model.Registration
	for _, reg := range f.registrations {
		if reg.UserID == userID {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].DocumentID < regs[j].DocumentID })
	return regs, nil
}

// mainRecords returns the isMainEvent-flagged archive records for an
// original event id.
func (f *fakeStore) mainRecords(originalEventID string) []model.ArchivedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []model.ArchivedEvent
	for _, rec := range f.archive {
		if rec.IsMainEvent && rec.OriginalEventID == originalEventID {
			records = append(records, rec)
		}
	}
	return records
}

func (f *fakeStore) registrationRecords(originalEventID string) []model.ArchivedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []model.ArchivedEvent
	for _, rec := range f.archive {
		if rec.IsRegistration && rec.OriginalEventID == originalEventID {
			records = append(records, rec)
		}
	}
	return records
}
