package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// TemplateService is plain CRUD over assignment presets. Templates have
// no ownership restriction beyond requiring an authenticated creator.
type TemplateService struct {
	store database.Storage
}

// NewTemplateService creates a new template service
func NewTemplateService(store database.Storage) *TemplateService {
	return &TemplateService{store: store}
}

// CreateTemplateInput carries the typed payload for a new template
type CreateTemplateInput struct {
	Title       string
	Subject     string
	Description string
	Tags        []string
}

// Create validates and persists a new template
func (svc *TemplateService) Create(identity model.Identity, in CreateTemplateInput) (model.Template, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if len(fields) > 0 {
		return model.Template{}, NewValidationError(fields)
	}

	now := time.Now().UTC()
	template := model.Template{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Subject:     in.Subject,
		Description: in.Description,
		Tags:        in.Tags,
		CreatedBy:   identity.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if template.Tags == nil {
		template.Tags = []string{}
	}

	templates, err := svc.store.LoadTemplates()
	if err != nil {
		return model.Template{}, &PersistenceError{Err: err}
	}
	templates = append(templates, template)

	if err := svc.store.SaveTemplates(templates); err != nil {
		return model.Template{}, &PersistenceError{Err: err}
	}
	return template, nil
}

// List returns all templates
func (svc *TemplateService) List() ([]model.Template, error) {
	templates, err := svc.store.LoadTemplates()
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return templates, nil
}

// Delete removes a template by id
func (svc *TemplateService) Delete(id string) error {
	templates, err := svc.store.LoadTemplates()
	if err != nil {
		return &PersistenceError{Err: err}
	}

	found := -1
	for i, t := range templates {
		if t.ID == id {
			found = i
			break
		}
	}
	if found < 0 {
		return ErrNotFound
	}

	templates = append(templates[:found], templates[found+1:]...)
	if err := svc.store.SaveTemplates(templates); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}
