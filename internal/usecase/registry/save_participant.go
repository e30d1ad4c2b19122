package registry

import (
	"context"
	"errors"
	"strings"

	"participantes/internal/errs"
	"participantes/internal/ports"
)

// SaveParticipant creates or updates one participant. The existence
// check and the final write run inside a single transaction, so a save
// can never duplicate a row for an id. An existing id without Overwrite
// fails with ErrParticipantExists; the caller confirms and retries with
// Overwrite set.
func (s *Service) SaveParticipant(ctx context.Context, input SaveParticipantInput) (SaveParticipantOutcome, error) {
	if ctx == nil {
		return SaveParticipantOutcome{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return SaveParticipantOutcome{}, errs.Wrap(err, "check context")
	}
	if s.participants == nil {
		return SaveParticipantOutcome{}, errors.New("participant repository is required")
	}
	if s.uow == nil {
		return SaveParticipantOutcome{}, errors.New("unit of work is required")
	}

	id, err := parseParticipantID(input.ID)
	if err != nil {
		return SaveParticipantOutcome{}, err
	}

	locality := strings.TrimSpace(input.LocalityName)
	if locality == "" {
		return SaveParticipantOutcome{}, errLocalityRequired
	}

	participant := ports.Participant{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Phone:        strings.TrimSpace(input.Phone),
		Affiliation:  strings.TrimSpace(input.Affiliation),
		EventDate:    strings.TrimSpace(input.EventDate),
		LocalityName: locality,
	}

	var created bool
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.participants.ExistsParticipant(txCtx, id)
		if err != nil {
			return err
		}

		if exists {
			if !input.Overwrite {
				return ErrParticipantExists
			}
			if _, err := s.participants.UpdateParticipant(txCtx, participant); err != nil {
				return err
			}
			return nil
		}

		created = true
		return s.participants.CreateParticipant(txCtx, participant)
	}); err != nil {
		return SaveParticipantOutcome{}, err
	}

	return SaveParticipantOutcome{
		ID:      formatParticipantID(id),
		Created: created,
	}, nil
}
