package docstore

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the JSON command migrations (index creation) against
// the database named in the URI.
func RunMigrations(storeURI, migrationsPath string) error {
	migrator, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), storeURI)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
