package services

import (
	"errors"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

// fakeStore is an in-memory storage backend for service tests. Setting
// failLoad or failSave makes the corresponding operation error, for
// exercising the persistence failure paths.
type fakeStore struct {
	assignments []model.Assignment
	templates   []model.Template

	failLoad bool
	failSave bool

	saveCalls int
}

var errFakeStore = errors.New("storage unavailable")

func (f *fakeStore) Init() error        { return nil }
func (f *fakeStore) Close() error       { return nil }
func (f *fakeStore) HealthCheck() error { return nil }

func (f *fakeStore) LoadAssignments() ([]model.Assignment, error) {
	if f.failLoad {
		return nil, errFakeStore
	}
	out := make([]model.Assignment, len(f.assignments))
	copy(out, f.assignments)
	return out, nil
}

func (f *fakeStore) SaveAssignments(assignments []model.Assignment) error {
	f.saveCalls++
	if f.failSave {
		return errFakeStore
	}
	f.assignments = make([]model.Assignment, len(assignments))
	copy(f.assignments, assignments)
	return nil
}

func (f *fakeStore) LoadTemplates() ([]model.Template, error) {
	if f.failLoad {
		return nil, errFakeStore
	}
	out := make([]model.Template, len(f.templates))
	copy(out, f.templates)
	return out, nil
}

func (f *fakeStore) SaveTemplates(templates []model.Template) error {
	f.saveCalls++
	if f.failSave {
		return errFakeStore
	}
	f.templates = make([]model.Template, len(templates))
	copy(f.templates, templates)
	return nil
}
