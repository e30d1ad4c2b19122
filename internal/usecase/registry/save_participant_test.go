package registry

import (
	"context"
	"errors"
	"testing"

	"participantes/internal/ports"
)

func TestSaveParticipantCreateAndResolveDivision(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := context.Background()
	importSampleCities(t, service)

	outcome, err := service.SaveParticipant(ctx, SaveParticipantInput{
		ID:           "1001001",
		Name:         "Ana",
		Address:      "Calle 1",
		Phone:        "3000000000",
		Affiliation:  "UNAL",
		EventDate:    "31/12/2030",
		LocalityName: "Medellín",
	})
	if err != nil {
		t.Fatalf("SaveParticipant() error = %v", err)
	}
	if !outcome.Created || outcome.ID != "1001001" {
		t.Fatalf("SaveParticipant() outcome = %+v", outcome)
	}

	item, err := service.GetParticipant(ctx, "1001001")
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if item.Name != "Ana" || item.Phone != "3000000000" || item.LocalityName != "Medellín" {
		t.Fatalf("GetParticipant() = %+v", item)
	}
	if item.DivisionName != "Antioquia" {
		t.Fatalf("GetParticipant() division = %q, want Antioquia", item.DivisionName)
	}
}

func TestSaveParticipantConflictRequiresOverwrite(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := context.Background()
	importSampleCities(t, service)

	first := SaveParticipantInput{
		ID:           "1001001",
		Name:         "Ana",
		Phone:        "3000000000",
		LocalityName: "Medellín",
	}
	if _, err := service.SaveParticipant(ctx, first); err != nil {
		t.Fatalf("initial save error = %v", err)
	}

	conflicting := first
	conflicting.Phone = "3111111111"
	if _, err := service.SaveParticipant(ctx, conflicting); !errors.Is(err, ErrParticipantExists) {
		t.Fatalf("SaveParticipant(conflict) error = %v, want ErrParticipantExists", err)
	}

	// The rejected save must not have touched the row.
	item, err := service.GetParticipant(ctx, "1001001")
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if item.Phone != "3000000000" {
		t.Fatalf("GetParticipant() phone = %q after rejected save", item.Phone)
	}

	conflicting.Overwrite = true
	outcome, err := service.SaveParticipant(ctx, conflicting)
	if err != nil {
		t.Fatalf("SaveParticipant(overwrite) error = %v", err)
	}
	if outcome.Created {
		t.Fatalf("SaveParticipant(overwrite) reported Created")
	}

	item, err = service.GetParticipant(ctx, "1001001")
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if item.Phone != "3111111111" {
		t.Fatalf("GetParticipant() phone = %q, want updated value", item.Phone)
	}
	if item.Name != "Ana" || item.LocalityName != "Medellín" {
		t.Fatalf("GetParticipant() = %+v, other fields must survive", item)
	}

	all, err := service.ListParticipants(ctx, "")
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListParticipants() len = %d, want exactly one row for the id", len(all))
	}
}

func TestSaveParticipantValidation(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input SaveParticipantInput
	}{
		{
			name:  "empty id",
			input: SaveParticipantInput{ID: " ", LocalityName: "Medellín"},
		},
		{
			name:  "non-numeric id",
			input: SaveParticipantInput{ID: "12a45", LocalityName: "Medellín"},
		},
		{
			name:  "missing locality",
			input: SaveParticipantInput{ID: "1001001"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := service.SaveParticipant(ctx, testCase.input); err == nil {
				t.Fatalf("SaveParticipant(%+v) expected error", testCase.input)
			}
		})
	}
}

func TestGetParticipantNotFoundIsDistinct(t *testing.T) {
	service, _, _ := setupService(t)

	_, err := service.GetParticipant(context.Background(), "424242")
	if !errors.Is(err, ports.ErrParticipantNotFound) {
		t.Fatalf("GetParticipant() error = %v, want ErrParticipantNotFound", err)
	}
}
