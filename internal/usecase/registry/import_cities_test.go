package registry

import (
	"context"
	"strings"
	"testing"
)

func TestImportCitiesParsesDANECodes(t *testing.T) {
	service, repo, _ := setupService(t)
	ctx := context.Background()

	path := writeCitiesCSV(t,
		citiesHeader,
		"05.,05001.,Antioquia,Medellín",
	)

	result, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path})
	if err != nil {
		t.Fatalf("ImportCities() error = %v", err)
	}
	if result.Submitted != 1 || result.Inserted != 1 {
		t.Fatalf("ImportCities() result = %+v", result)
	}

	// The stored row must be (5, 5001, Antioquia, Medellín).
	localities, err := repo.ListLocalities(ctx, "Antioquia")
	if err != nil {
		t.Fatalf("ListLocalities() error = %v", err)
	}
	if len(localities) != 1 || localities[0] != "Medellín" {
		t.Fatalf("ListLocalities() = %v", localities)
	}

	inserted, err := repo.BulkInsertIgnore(ctx, nil)
	if err != nil || inserted != 0 {
		t.Fatalf("BulkInsertIgnore(nil) = %d, %v", inserted, err)
	}
}

func TestImportCitiesDeduplicatesFirstWins(t *testing.T) {
	service, repo, _ := setupService(t)
	ctx := context.Background()

	path := writeCitiesCSV(t,
		citiesHeader,
		"05.,05001.,Antioquia,Medellín",
		"05.,05999.,Antioquia,Medellín",
		"11.,11001.,Bogotá D.C.,Bogotá D.C.",
	)

	result, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path})
	if err != nil {
		t.Fatalf("ImportCities() error = %v", err)
	}
	if result.Submitted != 2 {
		t.Fatalf("Submitted = %d, want 2", result.Submitted)
	}
	if result.SkippedDuplicates != 1 {
		t.Fatalf("SkippedDuplicates = %d, want 1", result.SkippedDuplicates)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCities() = %d, want 2 (first occurrence kept)", count)
	}
}

func TestImportCitiesSkipsBadCodeRows(t *testing.T) {
	service, _, _ := setupService(t)

	path := writeCitiesCSV(t,
		citiesHeader,
		"XX,05001.,Antioquia,Medellín",
		"05.,NaN,Antioquia,Abejorral",
		"11.,11001.,Bogotá D.C.,Bogotá D.C.",
	)

	result, err := service.ImportCities(context.Background(), ImportCitiesInput{CSVPath: path})
	if err != nil {
		t.Fatalf("ImportCities() error = %v", err)
	}
	if result.SkippedBadRows != 2 {
		t.Fatalf("SkippedBadRows = %d, want 2", result.SkippedBadRows)
	}
	if result.Submitted != 1 {
		t.Fatalf("Submitted = %d, want 1", result.Submitted)
	}
}

func TestImportCitiesMissingColumnIsFatal(t *testing.T) {
	service, repo, _ := setupService(t)
	ctx := context.Background()

	path := writeCitiesCSV(t,
		"CÓDIGO DANE DEL DEPARTAMENTO,CÓDIGO DANE DEL MUNICIPIO,DEPARTAMENTO",
		"05.,05001.,Antioquia",
	)

	_, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path})
	if err == nil {
		t.Fatalf("ImportCities() expected error for missing column")
	}
	if !strings.Contains(err.Error(), "MUNICIPIO") {
		t.Fatalf("ImportCities() error = %v, want the missing column named", err)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("CountCities() = %d, want 0 after aborted load", count)
	}
}

func TestImportCitiesIdempotentReimport(t *testing.T) {
	service, repo, cache := setupService(t)
	ctx := context.Background()

	path := writeCitiesCSV(t,
		citiesHeader,
		"05.,05001.,Antioquia,Medellín",
		"05.,05002.,Antioquia,Abejorral",
	)

	first, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path})
	if err != nil {
		t.Fatalf("first import error = %v", err)
	}
	if first.Inserted != 2 {
		t.Fatalf("first import Inserted = %d", first.Inserted)
	}

	second, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path})
	if err != nil {
		t.Fatalf("second import error = %v", err)
	}
	if second.Submitted != 2 {
		t.Fatalf("second import Submitted = %d", second.Submitted)
	}
	if second.Inserted != 0 {
		t.Fatalf("second import Inserted = %d, want 0 (all ignored)", second.Inserted)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCities() = %d, want same count as single import", count)
	}

	if _, found, _ := cache.Get(ctx, "cities:last_import"); !found {
		t.Fatalf("expected import timestamp in cache")
	}
}

func TestImportCitiesTruncateReload(t *testing.T) {
	service, repo, _ := setupService(t)
	ctx := context.Background()

	importSampleCities(t, service)

	path := writeCitiesCSV(t,
		citiesHeader,
		"08.,08001.,Atlántico,Barranquilla",
	)
	if _, err := service.ImportCities(ctx, ImportCitiesInput{CSVPath: path, Truncate: true}); err != nil {
		t.Fatalf("ImportCities(truncate) error = %v", err)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("CountCities() = %d, want only the reloaded row", count)
	}
}
