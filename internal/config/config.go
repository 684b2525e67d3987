package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Policy   AttendancePolicy
	Payroll  PayrollConfig
	Lock     LockConfig
	Outbox   OutboxConfig
	Timezone string `env:"DEFAULT_TIMEZONE" envDefault:"Asia/Kolkata"`

	// AdminRoles may run payroll, manage compensation and tenant settings.
	AdminRoles []string `env:"ADMIN_ROLES" envSeparator:"," envDefault:"ADMIN,HR"`
	// ReadOnlyRoles may only read those routes.
	ReadOnlyRoles []string `env:"READONLY_ROLES" envSeparator:"," envDefault:"AUDITOR"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT"                envDefault:"3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"   envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT"  envDefault:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT"   envDefault:"60s"`
	RateLimitRPS float64       `env:"HTTP_RATE_LIMIT_RPS" envDefault:"10"`
	RateBurst    int           `env:"HTTP_RATE_BURST"     envDefault:"20"`
}

type DBConfig struct {
	Host       string `env:"DB_HOST"     envDefault:"localhost"`
	Port       int    `env:"DB_PORT"     envDefault:"5432"`
	User       string `env:"DB_USER"     envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME"     envDefault:"payroll"`
	SSLMode    string `env:"DB_SSLMODE"  envDefault:"disable"`
	MaxRetries int    `env:"DB_RETRIES"  envDefault:"5"`
}

type RedisConfig struct {
	Addr       string `env:"REDIS_ADDR"    envDefault:"localhost:6379"`
	MaxRetries int    `env:"REDIS_RETRIES" envDefault:"5"`
}

type KafkaConfig struct {
	Broker     string `env:"KAFKA_BROKER"`
	GroupID    string `env:"KAFKA_GROUP_ID" envDefault:"go-payroll-payslip-renderer"`
	MaxRetries int    `env:"KAFKA_RETRIES"  envDefault:"5"`
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET,required,notEmpty"`
}

// AttendancePolicy holds the workday thresholds applied by the session
// tracker.
type AttendancePolicy struct {
	LateAfter     string  `env:"ATTENDANCE_LATE_AFTER"     envDefault:"09:30"`
	StandardHours float64 `env:"ATTENDANCE_STANDARD_HOURS" envDefault:"9"`
	HalfDayHours  float64 `env:"ATTENDANCE_HALF_DAY_HOURS" envDefault:"4.5"`
}

type PayrollConfig struct {
	Workers         int    `env:"PAYROLL_WORKERS"  envDefault:"4"`
	ProfessionalTax int64  `env:"PROFESSIONAL_TAX" envDefault:"200"`
	TaxTable        string `env:"TAX_TABLE"        envDefault:"FY2024-25"`
	PayslipDir      string `env:"PAYSLIP_DIR"      envDefault:"storage/payslips"`
}

type LockConfig struct {
	Backend string        `env:"LOCK_BACKEND" envDefault:"local"`
	TTL     time.Duration `env:"LOCK_TTL"     envDefault:"2m"`
}

type OutboxConfig struct {
	PollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
}

// Load reads .env when present and parses the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Payroll.Workers < 1 {
		return fmt.Errorf("PAYROLL_WORKERS must be >= 1, got %d", c.Payroll.Workers)
	}
	switch c.Lock.Backend {
	case LockBackendLocal, LockBackendRedis:
	default:
		return fmt.Errorf("LOCK_BACKEND must be %q or %q, got %q", LockBackendLocal, LockBackendRedis, c.Lock.Backend)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	if len(c.AdminRoles) == 0 {
		return fmt.Errorf("ADMIN_ROLES must name at least one role")
	}
	if _, err := time.Parse("15:04", c.Policy.LateAfter); err != nil {
		return fmt.Errorf("ATTENDANCE_LATE_AFTER: %w", err)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// NewLogger builds the process logger for the configured environment.
func NewLogger(c Config) (*zap.Logger, error) {
	if c.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
