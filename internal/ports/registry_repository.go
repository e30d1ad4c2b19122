package ports

import (
	"context"
	"errors"
)

var ErrParticipantNotFound = errors.New("participant not found")

// City is one administrative locality row: a municipality and the
// department it belongs to, both carrying their DANE codes.
type City struct {
	DivisionCode int
	LocalityCode int
	DivisionName string
	LocalityName string
}

// Participant is a registration record. The id is supplied by the user
// (a national id or NIT), never generated.
type Participant struct {
	ID           int64
	Name         string
	Address      string
	Phone        string
	Affiliation  string
	EventDate    string
	LocalityName string
}

// ParticipantRow is a participant with its department resolved through
// the cities table (first match on locality name).
type ParticipantRow struct {
	Participant
	DivisionName string
}

type CityRepository interface {
	// BulkInsertIgnore inserts rows with insert-or-ignore semantics keyed
	// on the locality code; returns the number of rows actually inserted.
	BulkInsertIgnore(ctx context.Context, rows []City) (int64, error)
	Truncate(ctx context.Context) error
	CountCities(ctx context.Context) (int64, error)
	ListDivisions(ctx context.Context) ([]string, error)
	ListLocalities(ctx context.Context, division string) ([]string, error)
}

type ParticipantReadRepository interface {
	// ListParticipants returns rows ordered by id descending. A non-empty
	// filter matches as a substring in any displayed column.
	ListParticipants(ctx context.Context, filter string) ([]ParticipantRow, error)
	GetParticipant(ctx context.Context, id int64) (ParticipantRow, error)
	ExistsParticipant(ctx context.Context, id int64) (bool, error)
}

type ParticipantRepository interface {
	ParticipantReadRepository
	CreateParticipant(ctx context.Context, participant Participant) error
	// UpdateParticipant returns the number of rows affected; zero means
	// no row with that id exists.
	UpdateParticipant(ctx context.Context, participant Participant) (int64, error)
	// DeleteParticipant returns the number of rows affected.
	DeleteParticipant(ctx context.Context, id int64) (int64, error)
}
