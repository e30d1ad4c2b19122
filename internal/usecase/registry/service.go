package registry

import (
	"context"
	"errors"

	"participantes/internal/ports"
)

var (
	ErrParticipantExists = errors.New("participant already exists")

	errIDRequired       = errors.New("participant id is required")
	errLocalityRequired = errors.New("locality is required")
)

// Service exposes the participant-registry usecases: reference-data
// import, participant CRUD, lookups and export.
type Service struct {
	cities       ports.CityRepository
	participants ports.ParticipantRepository
	uow          ports.UnitOfWork
	cache        ports.Cache
}

// NewService wires registry usecases with repositories and optional cache.
func NewService(cities ports.CityRepository, participants ports.ParticipantRepository, uow ports.UnitOfWork, cache ports.Cache) *Service {
	return &Service{
		cities:       cities,
		participants: participants,
		uow:          uow,
		cache:        cache,
	}
}

// ParticipantItem is the read-model row shown in lists, lookups and the
// export: stored fields plus the resolved department.
type ParticipantItem struct {
	ID           string
	Name         string
	Address      string
	Phone        string
	Affiliation  string
	EventDate    string
	LocalityName string
	DivisionName string
}

type SaveParticipantInput struct {
	ID           string
	Name         string
	Address      string
	Phone        string
	Affiliation  string
	EventDate    string
	LocalityName string
	// Overwrite authorizes updating an existing row. Without it a save
	// against an existing id fails with ErrParticipantExists so the
	// caller can confirm and retry.
	Overwrite bool
}

type SaveParticipantOutcome struct {
	ID      string
	Created bool
}

type ImportCitiesInput struct {
	CSVPath  string
	Truncate bool
}

type ImportCitiesResult struct {
	Submitted         int
	Inserted          int
	SkippedDuplicates int
	SkippedBadRows    int
}

type DeleteParticipantsResult struct {
	Requested int
	Deleted   int
	NotFound  []string
	Failed    []string
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, 0)
}
