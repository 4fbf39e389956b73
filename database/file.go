package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

// fileDocument is the on-disk layout of the whole record set
type fileDocument struct {
	Assignments []model.Assignment `json:"assignments"`
	Templates   []model.Template   `json:"templates"`
}

// FileStore keeps the whole record set in a single JSON document on
// disk. It is the default backend: no external services required.
//
// The mutex only makes individual Load/Save calls safe against each
// other; the read-modify-write cycle in the service layer is still
// subject to the lost-update hazard documented on Storage.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file store writing to the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		log.Printf("Store file %s does not exist yet, starting empty", s.path)
		return nil
	} else if err != nil {
		return err
	}
	// Make sure the existing document parses before serving traffic
	_, err := s.read()
	return err
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) HealthCheck() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	return nil
}

func (s *FileStore) LoadAssignments() ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return NormalizeAssignments(doc.Assignments), nil
}

func (s *FileStore) SaveAssignments(assignments []model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Assignments = assignments
	return s.write(doc)
}

func (s *FileStore) LoadTemplates() ([]model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return NormalizeTemplates(doc.Templates), nil
}

func (s *FileStore) SaveTemplates(templates []model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Templates = templates
	return s.write(doc)
}

// read loads the whole document, returning an empty one when the file
// does not exist yet
func (s *FileStore) read() (*fileDocument, error) {
	doc := &fileDocument{
		Assignments: []model.Assignment{},
		Templates:   []model.Template{},
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the document atomically via a temp-file rename
func (s *FileStore) write(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
