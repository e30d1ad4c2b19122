package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"participantes/internal/infrastructure/persistence/sqlite/model"
	"participantes/internal/ports"
)

func setupRegistryRepository(t *testing.T) *RegistryRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "participantes.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.City{}, &model.Participant{}, &model.AppKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewRegistryRepository(db)
}

func seedCities(t *testing.T, repo *RegistryRepository) {
	t.Helper()

	inserted, err := repo.BulkInsertIgnore(context.Background(), []ports.City{
		{DivisionCode: 5, LocalityCode: 5001, DivisionName: "Antioquia", LocalityName: "Medellín"},
		{DivisionCode: 5, LocalityCode: 5002, DivisionName: "Antioquia", LocalityName: "Abejorral"},
		{DivisionCode: 11, LocalityCode: 11001, DivisionName: "Bogotá D.C.", LocalityName: "Bogotá D.C."},
	})
	if err != nil {
		t.Fatalf("seed cities: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("seed cities inserted = %d, want 3", inserted)
	}
}

func TestBulkInsertIgnoreSkipsExistingLocalityCode(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()
	seedCities(t, repo)

	inserted, err := repo.BulkInsertIgnore(ctx, []ports.City{
		{DivisionCode: 5, LocalityCode: 5001, DivisionName: "Antioquia", LocalityName: "Medellín"},
		{DivisionCode: 8, LocalityCode: 8001, DivisionName: "Atlántico", LocalityName: "Barranquilla"},
	})
	if err != nil {
		t.Fatalf("BulkInsertIgnore() error = %v", err)
	}
	if inserted != 1 {
		t.Fatalf("BulkInsertIgnore() inserted = %d, want 1", inserted)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 4 {
		t.Fatalf("CountCities() = %d, want 4", count)
	}
}

func TestTruncateClearsCities(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()
	seedCities(t, repo)

	if err := repo.Truncate(ctx); err != nil {
		t.Fatalf("Truncate() error = %v", err)
	}

	count, err := repo.CountCities(ctx)
	if err != nil {
		t.Fatalf("CountCities() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("CountCities() after truncate = %d", count)
	}
}

func TestListDivisionsAndLocalities(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()
	seedCities(t, repo)

	divisions, err := repo.ListDivisions(ctx)
	if err != nil {
		t.Fatalf("ListDivisions() error = %v", err)
	}
	if len(divisions) != 2 {
		t.Fatalf("ListDivisions() len = %d, want 2", len(divisions))
	}
	if divisions[0] != "Antioquia" {
		t.Fatalf("ListDivisions()[0] = %q", divisions[0])
	}

	localities, err := repo.ListLocalities(ctx, "Antioquia")
	if err != nil {
		t.Fatalf("ListLocalities() error = %v", err)
	}
	if len(localities) != 2 {
		t.Fatalf("ListLocalities() len = %d, want 2", len(localities))
	}
	if localities[0] != "Abejorral" {
		t.Fatalf("ListLocalities()[0] = %q, want alphabetical order", localities[0])
	}
}

func TestGetParticipantResolvesDivision(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()
	seedCities(t, repo)

	if err := repo.CreateParticipant(ctx, ports.Participant{
		ID:           1001001,
		Name:         "Ana",
		Address:      "Calle 1",
		Phone:        "3000000000",
		Affiliation:  "UNAL",
		EventDate:    "31/12/2030",
		LocalityName: "Medellín",
	}); err != nil {
		t.Fatalf("CreateParticipant() error = %v", err)
	}

	row, err := repo.GetParticipant(ctx, 1001001)
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if row.Name != "Ana" || row.LocalityName != "Medellín" {
		t.Fatalf("GetParticipant() row = %+v", row)
	}
	if row.DivisionName != "Antioquia" {
		t.Fatalf("GetParticipant() division = %q, want Antioquia", row.DivisionName)
	}
}

func TestGetParticipantNotFound(t *testing.T) {
	repo := setupRegistryRepository(t)

	_, err := repo.GetParticipant(context.Background(), 42)
	if !errors.Is(err, ports.ErrParticipantNotFound) {
		t.Fatalf("GetParticipant() error = %v, want ErrParticipantNotFound", err)
	}
}

func TestListParticipantsFilterAndOrder(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()
	seedCities(t, repo)

	participants := []ports.Participant{
		{ID: 100, Name: "Ana", Phone: "3000000000", LocalityName: "Medellín"},
		{ID: 200, Name: "Luis", Phone: "3111111111", LocalityName: "Bogotá D.C."},
		{ID: 300, Name: "Marta", Phone: "3222222222", LocalityName: "Abejorral"},
	}
	for _, participant := range participants {
		if err := repo.CreateParticipant(ctx, participant); err != nil {
			t.Fatalf("create participant %d: %v", participant.ID, err)
		}
	}

	all, err := repo.ListParticipants(ctx, "")
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListParticipants() len = %d, want 3", len(all))
	}
	if all[0].ID != 300 || all[2].ID != 100 {
		t.Fatalf("ListParticipants() order = %d,%d,%d, want id desc", all[0].ID, all[1].ID, all[2].ID)
	}

	byPhone, err := repo.ListParticipants(ctx, "311111")
	if err != nil {
		t.Fatalf("ListParticipants(filter) error = %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].ID != 200 {
		t.Fatalf("ListParticipants(filter) = %+v, want only id 200", byPhone)
	}

	byID, err := repo.ListParticipants(ctx, "30")
	if err != nil {
		t.Fatalf("ListParticipants(id filter) error = %v", err)
	}
	// "30" appears in id 300 and in every phone starting with 30.
	if len(byID) != 2 {
		t.Fatalf("ListParticipants(id filter) len = %d, want 2", len(byID))
	}
}

func TestUpdateParticipantRowsAffected(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()

	if err := repo.CreateParticipant(ctx, ports.Participant{
		ID: 1001001, Name: "Ana", Phone: "3000000000", LocalityName: "Medellín",
	}); err != nil {
		t.Fatalf("CreateParticipant() error = %v", err)
	}

	affected, err := repo.UpdateParticipant(ctx, ports.Participant{
		ID: 1001001, Name: "Ana", Phone: "3111111111", LocalityName: "Medellín",
	})
	if err != nil {
		t.Fatalf("UpdateParticipant() error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("UpdateParticipant() affected = %d", affected)
	}

	affected, err = repo.UpdateParticipant(ctx, ports.Participant{ID: 999, Name: "Nadie"})
	if err != nil {
		t.Fatalf("UpdateParticipant(missing) error = %v", err)
	}
	if affected != 0 {
		t.Fatalf("UpdateParticipant(missing) affected = %d", affected)
	}
}

func TestDeleteParticipantRowsAffected(t *testing.T) {
	repo := setupRegistryRepository(t)
	ctx := context.Background()

	if err := repo.CreateParticipant(ctx, ports.Participant{ID: 7, Name: "Ana"}); err != nil {
		t.Fatalf("CreateParticipant() error = %v", err)
	}

	affected, err := repo.DeleteParticipant(ctx, 7)
	if err != nil {
		t.Fatalf("DeleteParticipant() error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("DeleteParticipant() affected = %d", affected)
	}

	affected, err = repo.DeleteParticipant(ctx, 7)
	if err != nil {
		t.Fatalf("DeleteParticipant(again) error = %v", err)
	}
	if affected != 0 {
		t.Fatalf("DeleteParticipant(again) affected = %d", affected)
	}
}
