package registry

import (
	"context"
	"errors"

	"participantes/internal/errs"
)

// ExportHeader is the fixed column order of the participants export.
var ExportHeader = []string{"Id", "Nombre", "Dirección", "Celular", "Entidad", "Fecha", "Ciudad", "Departamento"}

// ExportParticipants returns every participant as ordered string rows
// matching ExportHeader, id descending, ready for CSV serialization.
func (s *Service) ExportParticipants(ctx context.Context) ([][]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	items, err := s.ListParticipants(ctx, "")
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.Address,
			item.Phone,
			item.Affiliation,
			item.EventDate,
			item.LocalityName,
			item.DivisionName,
		})
	}

	s.setCacheBestEffort(ctx, cacheKeyLastExport, nowUTCString())
	return rows, nil
}
