package model

import "time"

type Event struct {
	Title             string    `firestore:"title"`
	Description       string    `firestore:"description"`
	Image             string    `firestore:"image"` // URL or data URI
	Venue             string    `firestore:"venue"`
	StartDate         string    `firestore:"startDate"` // "YYYY-MM-DD"
	StartTime         string    `firestore:"startTime"` // "HH:MM"
	EndDate           string    `firestore:"endDate,omitempty"`
	EndTime           string    `firestore:"endTime,omitempty"`
	OwnerID           string    `firestore:"ownerId"`
	RegistrationCount int64     `firestore:"registrationCount"`
	SearchCount       int64     `firestore:"searchCount,omitempty"`
	CreatedAt         time.Time `firestore:"createdAt,serverTimestamp"`

	//firestore
	DocumentID string `firestore:"-"`
}

type Registration struct {
	EventID           string    `firestore:"eventId"`
	UserID            string    `firestore:"userId"`
	FullName          string    `firestore:"fullName"`
	Email             string    `firestore:"email"`
	Whatsapp          string    `firestore:"whatsapp,omitempty"`
	Github            string    `firestore:"github,omitempty"`
	Linkedin          string    `firestore:"linkedin,omitempty"`
	Nationality       string    `firestore:"nationality,omitempty"`
	College           string    `firestore:"college,omitempty"`
	PaymentScreenshot string    `firestore:"paymentScreenshot,omitempty"`
	CreatedAt         time.Time `firestore:"createdAt,serverTimestamp"`

	//firestore
	DocumentID string `firestore:"-"`
}

// ArchivedEvent is one record in the recentEvents collection. Two
// shapes share the collection: the main record for an archived event
// (IsMainEvent set) and one record per migrated registration
// (IsRegistration set, plus UserID and RegistrationID). Both carry a
// copy of the event fields.
type ArchivedEvent struct {
	Title             string    `firestore:"title"`
	Description       string    `firestore:"description"`
	Image             string    `firestore:"image"`
	Venue             string    `firestore:"venue"`
	StartDate         string    `firestore:"startDate"`
	StartTime         string    `firestore:"startTime"`
	EndDate           string    `firestore:"endDate,omitempty"`
	EndTime           string    `firestore:"endTime,omitempty"`
	OwnerID           string    `firestore:"ownerId"`
	OriginalEventID   string    `firestore:"originalEventId"`
	RegistrationCount int64     `firestore:"registrationCount"`
	IsMainEvent       bool      `firestore:"isMainEvent,omitempty"`
	IsRegistration    bool      `firestore:"isRegistration,omitempty"`
	UserID            string    `firestore:"userId,omitempty"`
	RegistrationID    string    `firestore:"registrationId,omitempty"`
	ArchivedAt        time.Time `firestore:"archivedAt,serverTimestamp"`

	//firestore
	DocumentID string `firestore:"-"`
}

// NewArchiveMain builds the main archive record for an event.
func NewArchiveMain(event Event, registrationCount int64) ArchivedEvent {
	rec := newArchiveBase(event, registrationCount)
	rec.IsMainEvent = true
	return rec
}

// NewArchiveRegistration builds the per-registration archive record for
// one of the event's registrations.
func NewArchiveRegistration(event Event, reg Registration, registrationCount int64) ArchivedEvent {
	rec := newArchiveBase(event, registrationCount)
	rec.IsRegistration = true
	rec.UserID = reg.UserID
	rec.RegistrationID = reg.DocumentID
	return rec
}

func newArchiveBase(event Event, registrationCount int64) ArchivedEvent {
	return ArchivedEvent{
		Title:             event.Title,
		Description:       event.Description,
		Image:             event.Image,
		Venue:             event.Venue,
		StartDate:         event.StartDate,
		StartTime:         event.StartTime,
		EndDate:           event.EndDate,
		EndTime:           event.EndTime,
		OwnerID:           event.OwnerID,
		OriginalEventID:   event.DocumentID,
		RegistrationCount: registrationCount,
	}
}
