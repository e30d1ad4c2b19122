package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"participantes/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "participantes/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "participantes/internal/infrastructure/persistence/sqlite/uow"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{
		data: make(map[string]string),
	}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func setupService(t *testing.T) (*Service, *sqliterepo.RegistryRepository, *testCache) {
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

	repo := sqliterepo.NewRegistryRepository(db)
	cache := newTestCache()
	service := NewService(repo, repo, sqliteuow.NewUnitOfWork(db), cache)
	return service, repo, cache
}

func writeCitiesCSV(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "municipios.csv")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const citiesHeader = "CÓDIGO DANE DEL DEPARTAMENTO,CÓDIGO DANE DEL MUNICIPIO,DEPARTAMENTO,MUNICIPIO"

func importSampleCities(t *testing.T, service *Service) {
	t.Helper()

	path := writeCitiesCSV(t,
		citiesHeader,
		"05.,05001.,Antioquia,Medellín",
		"05.,05002.,Antioquia,Abejorral",
		"11.,11001.,Bogotá D.C.,Bogotá D.C.",
	)
	if _, err := service.ImportCities(context.Background(), ImportCitiesInput{CSVPath: path}); err != nil {
		t.Fatalf("import sample cities: %v", err)
	}
}
