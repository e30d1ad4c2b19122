package registry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"participantes/internal/bootstrap/logging"
	domainregistry "participantes/internal/domain/registry"
	"participantes/internal/errs"
	"participantes/internal/ports"
)

// Column names as published in the DANE divipola CSV.
const (
	columnDivisionCode = "CÓDIGO DANE DEL DEPARTAMENTO"
	columnLocalityCode = "CÓDIGO DANE DEL MUNICIPIO"
	columnDivisionName = "DEPARTAMENTO"
	columnLocalityName = "MUNICIPIO"
)

// ImportCities loads the department/municipality reference data from a
// CSV file. Duplicate (department, municipality) pairs within the file
// keep only their first occurrence; rows already present in the table
// are ignored by locality code. A missing expected column aborts the
// whole load before anything is written; a bad value in one row only
// skips that row.
func (s *Service) ImportCities(ctx context.Context, input ImportCitiesInput) (ImportCitiesResult, error) {
	if ctx == nil {
		return ImportCitiesResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ImportCitiesResult{}, errs.Wrap(err, "check context")
	}
	if s.cities == nil {
		return ImportCitiesResult{}, errors.New("city repository is required")
	}

	csvPath := strings.TrimSpace(input.CSVPath)
	if csvPath == "" {
		return ImportCitiesResult{}, errors.New("csv path is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "usecase.registry"), slog.String("csv", csvPath))
	logging.Info(logCtx, "start cities import", slog.Bool("truncate", input.Truncate))

	file, err := os.Open(csvPath)
	if err != nil {
		return ImportCitiesResult{}, errs.Wrapf(err, "open cities csv %q", csvPath)
	}
	defer func() {
		_ = file.Close()
	}()

	rows, result, err := readCityRows(logCtx, file)
	if err != nil {
		return ImportCitiesResult{}, err
	}

	if input.Truncate {
		if err := s.cities.Truncate(ctx); err != nil {
			return ImportCitiesResult{}, err
		}
	}

	inserted, err := s.cities.BulkInsertIgnore(ctx, rows)
	if err != nil {
		return ImportCitiesResult{}, err
	}
	result.Inserted = int(inserted)

	s.setCacheBestEffort(ctx, cacheKeyLastImport, nowUTCString())
	s.setCacheBestEffort(ctx, cacheKeyImportSubmitted, fmt.Sprintf("%d", result.Submitted))

	logging.Info(
		logCtx,
		"cities import finished",
		slog.Int("submitted", result.Submitted),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped_duplicates", result.SkippedDuplicates),
		slog.Int("skipped_bad_rows", result.SkippedBadRows),
	)
	return result, nil
}

type cityKey struct {
	division string
	locality string
}

func readCityRows(ctx context.Context, source io.Reader) ([]ports.City, ImportCitiesResult, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ImportCitiesResult{}, errs.Wrap(err, "read csv header")
	}

	indexes, err := resolveColumnIndexes(header)
	if err != nil {
		return nil, ImportCitiesResult{}, err
	}

	var result ImportCitiesResult
	seen := make(map[cityKey]struct{})
	rows := make([]ports.City, 0, 1024)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ImportCitiesResult{}, errs.Wrapf(err, "read csv line %d", line)
		}

		if len(record) <= indexes.max() {
			result.SkippedBadRows++
			logging.Debug(ctx, "skip short csv row", slog.Int("line", line))
			continue
		}

		divisionCode, err := domainregistry.ParseDANECode(record[indexes.divisionCode])
		if err != nil {
			result.SkippedBadRows++
			logging.Debug(ctx, "skip row with bad division code", slog.Int("line", line))
			continue
		}
		localityCode, err := domainregistry.ParseDANECode(record[indexes.localityCode])
		if err != nil {
			result.SkippedBadRows++
			logging.Debug(ctx, "skip row with bad locality code", slog.Int("line", line))
			continue
		}

		division := strings.TrimSpace(record[indexes.divisionName])
		locality := strings.TrimSpace(record[indexes.localityName])

		key := cityKey{division: division, locality: locality}
		if _, ok := seen[key]; ok {
			result.SkippedDuplicates++
			continue
		}
		seen[key] = struct{}{}

		rows = append(rows, ports.City{
			DivisionCode: divisionCode,
			LocalityCode: localityCode,
			DivisionName: division,
			LocalityName: locality,
		})
	}

	result.Submitted = len(rows)
	return rows, result, nil
}

type columnIndexes struct {
	divisionCode int
	localityCode int
	divisionName int
	localityName int
}

func (c columnIndexes) max() int {
	out := c.divisionCode
	for _, idx := range []int{c.localityCode, c.divisionName, c.localityName} {
		if idx > out {
			out = idx
		}
	}
	return out
}

func resolveColumnIndexes(header []string) (columnIndexes, error) {
	byName := make(map[string]int, len(header))
	for idx, name := range header {
		// Strip the UTF-8 BOM some exports carry on the first cell.
		byName[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = idx
	}

	indexes := columnIndexes{}
	assignments := []struct {
		column string
		target *int
	}{
		{columnDivisionCode, &indexes.divisionCode},
		{columnLocalityCode, &indexes.localityCode},
		{columnDivisionName, &indexes.divisionName},
		{columnLocalityName, &indexes.localityName},
	}

	for _, assignment := range assignments {
		idx, ok := byName[assignment.column]
		if !ok {
			return columnIndexes{}, fmt.Errorf("missing expected csv column %q", assignment.column)
		}
		*assignment.target = idx
	}
	return indexes, nil
}
