package registry

import (
	"context"
	"errors"
	"log/slog"

	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
)

// DeleteParticipants removes each id individually. One failing or
// missing id never stops the rest of the batch; the result reports what
// actually happened per id.
func (s *Service) DeleteParticipants(ctx context.Context, ids []string) (DeleteParticipantsResult, error) {
	if ctx == nil {
		return DeleteParticipantsResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return DeleteParticipantsResult{}, errs.Wrap(err, "check context")
	}
	if s.participants == nil {
		return DeleteParticipantsResult{}, errors.New("participant repository is required")
	}
	if len(ids) == 0 {
		return DeleteParticipantsResult{}, errors.New("at least one id is required")
	}

	result := DeleteParticipantsResult{Requested: len(ids)}

	for _, raw := range ids {
		id, err := parseParticipantID(raw)
		if err != nil {
			result.Failed = append(result.Failed, raw)
			logging.Warn(ctx, "skip unparsable participant id", slog.String("id", raw))
			continue
		}

		affected, err := s.participants.DeleteParticipant(ctx, id)
		if err != nil {
			result.Failed = append(result.Failed, raw)
			logging.Error(ctx, "delete participant failed", slog.String("id", raw), slog.Any("err", errs.Loggable(err)))
			continue
		}
		if affected == 0 {
			result.NotFound = append(result.NotFound, raw)
			continue
		}
		result.Deleted++
	}

	return result, nil
}
