package app

import (
	"database/sql"
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/keylock"
	"go-payroll/internal/tax"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the shared connections of one process.
type infra struct {
	cfg    config.Config
	logger *zap.Logger
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func connect(cfg config.Config, logger *zap.Logger, withRedis bool) (*infra, error) {
	dsn := connection.PostgresDSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode)
	gormDB, err := connection.ConnectGORMWithRetry(dsn, cfg.DB.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	in := &infra{cfg: cfg, logger: logger, gormDB: gormDB, sqlDB: sqlDB}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		in.rdb = rdb
	}
	return in, nil
}

func (in *infra) Close() {
	if in.rdb != nil {
		_ = in.rdb.Close()
	}
	_ = in.sqlDB.Close()
}

func (in *infra) locker() keylock.Locker {
	if in.cfg.Lock.Backend == config.LockBackendRedis && in.rdb != nil {
		return keylock.NewRedis(in.rdb, in.cfg.Lock.TTL, in.logger)
	}
	return keylock.NewLocal()
}

func newCalculator(cfg config.PayrollConfig) (*tax.Calculator, error) {
	table, err := tax.LookupTable(cfg.TaxTable)
	if err != nil {
		return nil, fmt.Errorf("tax table %q: %w", cfg.TaxTable, err)
	}
	return tax.NewCalculator(table, tax.WithProfessionalTax(tax.FlatPT(cfg.ProfessionalTax))), nil
}
