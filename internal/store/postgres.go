package store

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

func NewPostgresConfigFromEnv() *PostgresConfig {
	return &PostgresConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		Username: os.Getenv("POSTGRES_USERNAME"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB_NAME"),
		SSLMode:  os.Getenv("POSTGRES_SSL_MODE"),
	}
}

func (c *PostgresConfig) Setup() *PostgresConfig {
	const (
		defaultHost     = "localhost"
		defaultPort     = "5432"
		defaultUsername = "postgres"
		defaultPassword = "postgres"
		defaultDBName   = "postgres"
		defaultSSLMode  = "disable"
	)

	c.Host = cmp.Or(c.Host, defaultHost)
	c.Port = cmp.Or(c.Port, defaultPort)
	if _, err := strconv.Atoi(c.Port); err != nil {
		c.Port = defaultPort
	}
	c.Username = cmp.Or(c.Username, defaultUsername)
	c.Password = cmp.Or(c.Password, defaultPassword)
	c.DBName = cmp.Or(c.DBName, defaultDBName)
	c.SSLMode = cmp.Or(c.SSLMode, defaultSSLMode)

	return c
}

func (c *PostgresConfig) String() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.DBName, c.Password, c.SSLMode,
	)
}

func NewDB(cfg *PostgresConfig) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", cfg.String())
}

const (
	_createSeenTable = `CREATE TABLE IF NOT EXISTS seen_positions (
							entry_oid TEXT PRIMARY KEY
						)`
	_querySeen  = "SELECT entry_oid FROM seen_positions"
	_insertSeen = `INSERT INTO seen_positions (entry_oid)
					VALUES ($1)
					ON CONFLICT (entry_oid) DO NOTHING`
)

// PostgresStore is the alternative seen-set backend for deployments
// where the watcher host is ephemeral and a local file would not
// survive restarts.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(ctx context.Context, db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, _createSeenTable); err != nil {
		return nil, fmt.Errorf("%w: can't create seen positions table", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (model.SeenSet, error) {
	var oids []string
	if err := s.db.SelectContext(ctx, &oids, _querySeen); err != nil {
		return model.SeenSet{}, fmt.Errorf("%w: can't query seen positions", err)
	}

	seen := make(model.SeenSet, len(oids))
	for _, oid := range oids {
		seen.Add(model.OID(oid))
	}

	return seen, nil
}

// Save upserts the full set. Oids are never deleted, so replaying the
// whole set keeps the table in step with memory even after a failed
// save.
func (s *PostgresStore) Save(ctx context.Context, seen model.SeenSet) error {
	for _, oid := range seen.Values() {
		if _, err := s.db.ExecContext(ctx, _insertSeen, string(oid)); err != nil {
			return fmt.Errorf("%w: can't insert seen position %s", err, oid)
		}
	}

	return nil
}
