package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"participantes/internal/errs"
	"participantes/internal/infrastructure/persistence/sqlite/model"
	"participantes/internal/ports"
)

// divisionSubquery resolves a participant's department through the cities
// table. First match wins; locality names are not unique across
// departments, so ties break arbitrarily.
const divisionSubquery = "(SELECT division_name FROM cities WHERE cities.locality_name = participants.locality_name LIMIT 1) AS division_name"

// RegistryRepository implements ports.CityRepository and
// ports.ParticipantRepository on gorm + sqlite.
type RegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

func (r *RegistryRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *RegistryRepository) BulkInsertIgnore(ctx context.Context, rows []ports.City) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	cityRows := make([]model.City, 0, len(rows))
	for _, row := range rows {
		cityRows = append(cityRows, model.City{
			DivisionCode: row.DivisionCode,
			LocalityCode: row.LocalityCode,
			DivisionName: row.DivisionName,
			LocalityName: row.LocalityName,
		})
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cityRows)
	if result.Error != nil {
		return 0, errs.Wrap(result.Error, "insert cities")
	}
	return result.RowsAffected, nil
}

func (r *RegistryRepository) Truncate(ctx context.Context) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Exec("DELETE FROM cities").Error; err != nil {
		return errs.Wrap(err, "truncate cities")
	}
	return nil
}

func (r *RegistryRepository) CountCities(ctx context.Context) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.City{}).Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count cities")
	}
	return count, nil
}

func (r *RegistryRepository) ListDivisions(ctx context.Context) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var divisions []string
	if err := db.Model(&model.City{}).
		Distinct("division_name").
		Order("division_name asc").
		Pluck("division_name", &divisions).Error; err != nil {
		return nil, errs.Wrap(err, "query divisions")
	}
	return divisions, nil
}

func (r *RegistryRepository) ListLocalities(ctx context.Context, division string) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var localities []string
	if err := db.Model(&model.City{}).
		Where("division_name = ?", division).
		Order("locality_name asc").
		Pluck("locality_name", &localities).Error; err != nil {
		return nil, errs.Wrap(err, "query localities")
	}
	return localities, nil
}

// participantRecord is the scan target for list/get queries: the stored
// columns plus the resolved department.
type participantRecord struct {
	ID           int64  `gorm:"column:id"`
	Name         string `gorm:"column:name"`
	Address      string `gorm:"column:address"`
	Phone        string `gorm:"column:phone"`
	Affiliation  string `gorm:"column:affiliation"`
	EventDate    string `gorm:"column:event_date"`
	LocalityName string `gorm:"column:locality_name"`
	DivisionName string `gorm:"column:division_name"`
}

func (r *RegistryRepository) ListParticipants(ctx context.Context, filter string) ([]ports.ParticipantRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Participant{}).
		Select("participants.*, " + divisionSubquery)

	if trimmed := strings.TrimSpace(filter); trimmed != "" {
		pattern := "%" + trimmed + "%"
		query = query.Where(
			"CAST(participants.id AS TEXT) LIKE ? OR participants.name LIKE ? OR participants.address LIKE ? OR participants.phone LIKE ? OR participants.affiliation LIKE ? OR participants.event_date LIKE ? OR participants.locality_name LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	var rows []participantRecord
	if err := query.Order("participants.id desc").Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query participants")
	}

	items := make([]ports.ParticipantRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapParticipantRecord(row))
	}
	return items, nil
}

func (r *RegistryRepository) GetParticipant(ctx context.Context, id int64) (ports.ParticipantRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.ParticipantRow{}, err
	}

	var row participantRecord
	if err := db.Model(&model.Participant{}).
		Select("participants.*, "+divisionSubquery).
		Where("participants.id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ParticipantRow{}, ports.ErrParticipantNotFound
		}
		return ports.ParticipantRow{}, errs.Wrap(err, "query participant")
	}
	return mapParticipantRecord(row), nil
}

func (r *RegistryRepository) ExistsParticipant(ctx context.Context, id int64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Participant{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count participant")
	}
	return count > 0, nil
}

func (r *RegistryRepository) CreateParticipant(ctx context.Context, participant ports.Participant) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Participant{
		ID:           participant.ID,
		Name:         participant.Name,
		Address:      participant.Address,
		Phone:        participant.Phone,
		Affiliation:  participant.Affiliation,
		EventDate:    participant.EventDate,
		LocalityName: participant.LocalityName,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert participant")
	}
	return nil
}

func (r *RegistryRepository) UpdateParticipant(ctx context.Context, participant ports.Participant) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	// Map form so blank fields overwrite too.
	result := db.Model(&model.Participant{}).
		Where("id = ?", participant.ID).
		Updates(map[string]any{
			"name":          participant.Name,
			"address":       participant.Address,
			"phone":         participant.Phone,
			"affiliation":   participant.Affiliation,
			"event_date":    participant.EventDate,
			"locality_name": participant.LocalityName,
		})
	if result.Error != nil {
		return 0, errs.Wrap(result.Error, "update participant")
	}
	return result.RowsAffected, nil
}

func (r *RegistryRepository) DeleteParticipant(ctx context.Context, id int64) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	result := db.Where("id = ?", id).Delete(&model.Participant{})
	if result.Error != nil {
		return 0, errs.Wrap(result.Error, "delete participant")
	}
	return result.RowsAffected, nil
}

func mapParticipantRecord(row participantRecord) ports.ParticipantRow {
	return ports.ParticipantRow{
		Participant: ports.Participant{
			ID:           row.ID,
			Name:         row.Name,
			Address:      row.Address,
			Phone:        row.Phone,
			Affiliation:  row.Affiliation,
			EventDate:    row.EventDate,
			LocalityName: row.LocalityName,
		},
		DivisionName: row.DivisionName,
	}
}
