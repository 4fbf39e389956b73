package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// PQStore persists each record set as a single JSONB document row in
// PostgreSQL, using database/sql directly. It is the simplest SQL
// rendition of the whole-set Storage contract: every save overwrites
// the document in place.
type PQStore struct {
	db *sql.DB
}

// StartPQ opens a plain database/sql connection to PostgreSQL
func StartPQ(env *config.EnvironmentVariable) (*PQStore, error) {
	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		env.DB_HOST,
		env.DB_PORT,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		fmt.Println("Unable to Start PostgreSQL Database.")
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL Database.")
	return &PQStore{db: db}, nil
}

func (s *PQStore) Init() error {
	query := `
	CREATE TABLE IF NOT EXISTS record_sets (
		name VARCHAR(32) PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err := s.db.Exec(query)
	return err
}

func (s *PQStore) Close() error { return s.db.Close() }

func (s *PQStore) HealthCheck() error { return s.db.Ping() }

func (s *PQStore) LoadAssignments() ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := s.load("assignments", &assignments); err != nil {
		return nil, err
	}
	return NormalizeAssignments(assignments), nil
}

func (s *PQStore) SaveAssignments(assignments []model.Assignment) error {
	return s.save("assignments", assignments)
}

func (s *PQStore) LoadTemplates() ([]model.Template, error) {
	var templates []model.Template
	if err := s.load("templates", &templates); err != nil {
		return nil, err
	}
	return NormalizeTemplates(templates), nil
}

func (s *PQStore) SaveTemplates(templates []model.Template) error {
	return s.save("templates", templates)
}

// load reads one record-set document; a missing row means an empty set
func (s *PQStore) load(name string, dest interface{}) error {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM record_sets WHERE name = $1;`, name,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// save overwrites one record-set document in place
func (s *PQStore) save(name string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	query := `
	INSERT INTO record_sets (name, payload, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE SET payload = $2, updated_at = now();`

	if _, err := s.db.Exec(query, name, payload); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
