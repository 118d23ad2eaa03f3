package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/thankyou/backend/internal/infrastructure/config"
	"github.com/thankyou/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the GORM handle shared by every repository
type Database struct {
	DB     *gorm.DB
	Driver string
}

type options struct {
	logger      logger.Interface
	pingTimeout time.Duration
}

// Option customizes NewDatabase
type Option func(*options)

// WithLogger routes GORM logs through l. The default is silent.
func WithLogger(l logger.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithPingTimeout bounds the connectivity check done on open
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) { o.pingTimeout = d }
}

// NewDatabase opens and pings the configured database. Postgres gets the
// configured pool; sqlite is limited to a single connection so writers
// never see SQLITE_BUSY and :memory: stays one database.
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := options{
		logger:      logger.Default.LogMode(logger.Silent),
		pingTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 o.logger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	d := &Database{DB: db, Driver: dialector.Name()}

	ctx, cancel := context.WithTimeout(context.Background(), o.pingTimeout)
	defer cancel()
	if err := d.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

func openDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// AutoMigrate syncs the schema from the GORM models. Used for sqlite and
// tests; postgres deployments run the SQL migrations instead.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(models.All()...)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping backs the health endpoints
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
