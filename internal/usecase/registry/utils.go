package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"participantes/internal/ports"
)

const (
	cacheKeyLastImport      = "cities:last_import"
	cacheKeyImportSubmitted = "cities:last_import_submitted"
	cacheKeyLastExport      = "participants:last_export"
)

func parseParticipantID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errIDRequired
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid participant id %q", raw)
	}
	return id, nil
}

func formatParticipantID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func mapParticipantItem(row ports.ParticipantRow) ParticipantItem {
	return ParticipantItem{
		ID:           formatParticipantID(row.ID),
		Name:         row.Name,
		Address:      row.Address,
		Phone:        row.Phone,
		Affiliation:  row.Affiliation,
		EventDate:    row.EventDate,
		LocalityName: row.LocalityName,
		DivisionName: row.DivisionName,
	}
}
