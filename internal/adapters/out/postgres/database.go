package postgres

import (
	"fmt"
	"time"

	"scantrack/internal/adapters/out/postgres/operatorrepo"
	"scantrack/internal/adapters/out/postgres/orderrepo"
	"scantrack/internal/pkg/errs"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// NotifyChannel carries the name of the changed table.
	NotifyChannel = "scantrack_changes"
)

const notifyFunctionSQL = `
CREATE OR REPLACE FUNCTION scantrack_notify_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + NotifyChannel + `', TG_TABLE_NAME);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

var notifiedTables = []string{"orders", "operators"}

// Open connects to the configured database. dsn is a libpq connection
// string for postgres and a file path for sqlite.
func Open(driver, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = gormpostgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("db driver", fmt.Errorf("%q is not postgres or sqlite", driver))
	}

	cfg := &gorm.Config{}
	if logger != nil {
		cfg.Logger = gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, errs.NewPersistenceError("open "+driver, err)
	}
	return db, nil
}

// Migrate creates the tables and, on postgres, the triggers that feed
// the change listener.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &operatorrepo.OperatorDTO{}); err != nil {
		return errs.NewPersistenceError("migrate", err)
	}

	if db.Dialector.Name() != DriverPostgres {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(notifyFunctionSQL).Error; err != nil {
			return errs.NewPersistenceError("create notify function", err)
		}
		for _, table := range notifiedTables {
			trigger := table + "_notify_change"
			if err := tx.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, table)).Error; err != nil {
				return errs.NewPersistenceError("drop trigger "+trigger, err)
			}
			stmt := fmt.Sprintf(
				"CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH STATEMENT EXECUTE FUNCTION scantrack_notify_change()",
				trigger, table,
			)
			if err := tx.Exec(stmt).Error; err != nil {
				return errs.NewPersistenceError("create trigger "+trigger, err)
			}
		}
		return nil
	})
}
