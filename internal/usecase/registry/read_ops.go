package registry

import (
	"context"
	"errors"

	"participantes/internal/errs"
)

// ListParticipants returns all participants ordered by id descending.
// A non-empty filter restricts the result to rows where the token
// appears as a substring in any displayed column; an empty filter is
// identical to listing everything.
func (s *Service) ListParticipants(ctx context.Context, filter string) ([]ParticipantItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.participants == nil {
		return nil, errors.New("participant repository is required")
	}

	rows, err := s.participants.ListParticipants(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ParticipantItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapParticipantItem(row))
	}
	return items, nil
}

// GetParticipant returns one participant by exact id. A missing row
// surfaces as ports.ErrParticipantNotFound, which is a normal outcome,
// not a storage failure.
func (s *Service) GetParticipant(ctx context.Context, id string) (ParticipantItem, error) {
	if ctx == nil {
		return ParticipantItem{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ParticipantItem{}, errs.Wrap(err, "check context")
	}
	if s.participants == nil {
		return ParticipantItem{}, errors.New("participant repository is required")
	}

	parsedID, err := parseParticipantID(id)
	if err != nil {
		return ParticipantItem{}, err
	}

	row, err := s.participants.GetParticipant(ctx, parsedID)
	if err != nil {
		return ParticipantItem{}, err
	}
	return mapParticipantItem(row), nil
}

// ListDivisions returns the distinct department names, ascending.
func (s *Service) ListDivisions(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.cities == nil {
		return nil, errors.New("city repository is required")
	}

	return s.cities.ListDivisions(ctx)
}

// ListLocalities returns the municipality names of one department,
// ascending.
func (s *Service) ListLocalities(ctx context.Context, division string) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.cities == nil {
		return nil, errors.New("city repository is required")
	}

	return s.cities.ListLocalities(ctx, division)
}
