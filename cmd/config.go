package cmd

import (
	"fmt"
	"strings"
	"time"

	"scantrack/internal/adapters/out/postgres"
	"scantrack/internal/core/application/usecases/commands"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	AppTimezone string
	LogLevel    string

	VisionAPIKey  string
	VisionBaseURL string
	VisionModel   string

	EventsBroker           string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RabbitMQURL            string
	RabbitMQExchange       string

	ScanSessionTTL    string
	OperatorsSeedFile string
}

// Driver defaults to postgres.
func (c Config) Driver() string {
	if c.DBDriver == "" {
		return postgres.DriverPostgres
	}
	return strings.ToLower(c.DBDriver)
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver() == postgres.DriverSQLite {
		if c.SQLitePath == "" {
			return "scantrack.db"
		}
		return c.SQLitePath
	}
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// Location is the zone calendar days are evaluated in; UTC when unset.
func (c Config) Location() (*time.Location, error) {
	if c.AppTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c Config) SessionTTL() (time.Duration, error) {
	if c.ScanSessionTTL == "" {
		return commands.DefaultScanSessionTTL, nil
	}
	ttl, err := time.ParseDuration(c.ScanSessionTTL)
	if err != nil {
		return 0, fmt.Errorf("SCAN_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SCAN_SESSION_TTL must be positive, got %s", ttl)
	}
	return ttl, nil
}

func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
