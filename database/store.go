package database

import (
	"fmt"

	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// Storage is the repository port every backend must satisfy. The record
// set is persisted wholesale: LoadAssignments returns the exhaustive
// current collection (empty slice when nothing has been saved yet) and
// SaveAssignments atomically replaces it. There are no partial writes.
//
// Every mutation in the service layer is a full read-modify-write cycle
// against this interface. Two writers racing between Load and Save will
// lose the earlier write (last write wins). That is a known limitation
// of the single-writer workload this system assumes; do not paper over
// it with locking here without changing the stated guarantees.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Assignment set
	LoadAssignments() ([]model.Assignment, error)
	SaveAssignments([]model.Assignment) error

	// Template set
	LoadTemplates() ([]model.Template, error)
	SaveTemplates([]model.Template) error
}

// Open selects and starts a storage backend based on STORE_DRIVER
func Open(env *config.EnvironmentVariable) (Storage, error) {
	switch env.STORE_DRIVER {
	case "", "file":
		return NewFileStore(env.STORE_FILE), nil
	case "redis":
		return NewRedisStore(env.REDIS_URL)
	case "postgres":
		return StartGORM(env)
	case "pq":
		return StartPQ(env)
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", env.STORE_DRIVER)
}
