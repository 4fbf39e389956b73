package database

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// GORMStore persists the record set in PostgreSQL through GORM: one row
// per assignment, nested data (tags, recurrence, comments, attachments)
// in JSONB columns. SaveAssignments replaces the whole table inside a
// transaction, honoring the whole-set Storage contract.
type GORMStore struct {
	db *gorm.DB
}

// assignmentRow is the relational shape of model.Assignment
type assignmentRow struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	Position       int    `gorm:"index"` // preserves collection order across save/load
	Title          string `gorm:"not null"`
	Subject        string `gorm:"not null;index"`
	Description    string `gorm:"type:text"`
	Priority       string `gorm:"type:varchar(10)"`
	DueDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TeacherEmail   string `gorm:"index"`
	TeacherName    string
	YearGroup      string `gorm:"type:varchar(50)"`
	ClassName      string `gorm:"type:varchar(100)"`
	Completed      bool
	IsRecurring    bool
	NextOccurrence *time.Time
	ParentID       string         `gorm:"type:varchar(64);index"`
	Tags           datatypes.JSON `gorm:"type:jsonb"`
	Recurrence     datatypes.JSON `gorm:"type:jsonb"`
	Comments       datatypes.JSON `gorm:"type:jsonb"`
	Attachments    datatypes.JSON `gorm:"type:jsonb"`
}

func (assignmentRow) TableName() string { return "assignments" }

// templateRow is the relational shape of model.Template
type templateRow struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	Position    int    `gorm:"index"`
	Title       string `gorm:"not null"`
	Subject     string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (templateRow) TableName() string { return "templates" }

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if env.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")
	return &GORMStore{db: db}, nil
}

func (s *GORMStore) Init() error {
	return s.db.AutoMigrate(&assignmentRow{}, &templateRow{})
}

func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *GORMStore) LoadAssignments() ([]model.Assignment, error) {
	var rows []assignmentRow
	if err := s.db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	assignments := make([]model.Assignment, 0, len(rows))
	for _, r := range rows {
		a, err := r.toModel()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return NormalizeAssignments(assignments), nil
}

func (s *GORMStore) SaveAssignments(assignments []model.Assignment) error {
	rows := make([]assignmentRow, 0, len(assignments))
	for i, a := range assignments {
		r, err := toAssignmentRow(a, i)
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&assignmentRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to save assignments: %w", err)
		}
		return nil
	})
}

func (s *GORMStore) LoadTemplates() ([]model.Template, error) {
	var rows []templateRow
	if err := s.db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	templates := make([]model.Template, 0, len(rows))
	for _, r := range rows {
		var tags []string
		if len(r.Tags) > 0 {
			if err := json.Unmarshal(r.Tags, &tags); err != nil {
				return nil, fmt.Errorf("failed to decode template tags: %w", err)
			}
		}
		templates = append(templates, model.Template{
			ID:          r.ID,
			Title:       r.Title,
			Subject:     r.Subject,
			Description: r.Description,
			Tags:        tags,
			CreatedBy:   r.CreatedBy,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return NormalizeTemplates(templates), nil
}

func (s *GORMStore) SaveTemplates(templates []model.Template) error {
	rows := make([]templateRow, 0, len(templates))
	for i, t := range templates {
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode template tags: %w", err)
		}
		rows = append(rows, templateRow{
			ID:          t.ID,
			Position:    i,
			Title:       t.Title,
			Subject:     t.Subject,
			Description: t.Description,
			Tags:        tags,
			CreatedBy:   t.CreatedBy,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&templateRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear templates: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to save templates: %w", err)
		}
		return nil
	})
}

// toModel decodes the JSONB columns back into the domain value
func (r assignmentRow) toModel() (model.Assignment, error) {
	a := model.Assignment{
		ID:             r.ID,
		Title:          r.Title,
		Subject:        r.Subject,
		Description:    r.Description,
		Priority:       model.Priority(r.Priority),
		DueDate:        r.DueDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		TeacherEmail:   r.TeacherEmail,
		TeacherName:    r.TeacherName,
		YearGroup:      r.YearGroup,
		ClassName:      r.ClassName,
		Completed:      r.Completed,
		IsRecurring:    r.IsRecurring,
		NextOccurrence: r.NextOccurrence,
		ParentID:       r.ParentID,
	}

	if len(r.Tags) > 0 {
		if err := json.Unmarshal(r.Tags, &a.Tags); err != nil {
			return a, fmt.Errorf("failed to decode tags for %s: %w", r.ID, err)
		}
	}
	if len(r.Recurrence) > 0 {
		if err := json.Unmarshal(r.Recurrence, &a.Recurrence); err != nil {
			return a, fmt.Errorf("failed to decode recurrence for %s: %w", r.ID, err)
		}
	}
	if len(r.Comments) > 0 {
		if err := json.Unmarshal(r.Comments, &a.Comments); err != nil {
			return a, fmt.Errorf("failed to decode comments for %s: %w", r.ID, err)
		}
	}
	if len(r.Attachments) > 0 {
		if err := json.Unmarshal(r.Attachments, &a.Attachments); err != nil {
			return a, fmt.Errorf("failed to decode attachments for %s: %w", r.ID, err)
		}
	}
	return a, nil
}

// toAssignmentRow encodes the domain value into its relational shape
func toAssignmentRow(a model.Assignment, position int) (assignmentRow, error) {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return assignmentRow{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	recurrence, err := json.Marshal(a.Recurrence)
	if err != nil {
		return assignmentRow{}, fmt.Errorf("failed to encode recurrence: %w", err)
	}
	comments, err := json.Marshal(a.Comments)
	if err != nil {
		return assignmentRow{}, fmt.Errorf("failed to encode comments: %w", err)
	}
	attachments, err := json.Marshal(a.Attachments)
	if err != nil {
		return assignmentRow{}, fmt.Errorf("failed to encode attachments: %w", err)
	}

	return assignmentRow{
		ID:             a.ID,
		Position:       position,
		Title:          a.Title,
		Subject:        a.Subject,
		Description:    a.Description,
		Priority:       string(a.Priority),
		DueDate:        a.DueDate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		TeacherEmail:   a.TeacherEmail,
		TeacherName:    a.TeacherName,
		YearGroup:      a.YearGroup,
		ClassName:      a.ClassName,
		Completed:      a.Completed,
		IsRecurring:    a.IsRecurring,
		NextOccurrence: a.NextOccurrence,
		ParentID:       a.ParentID,
		Tags:           tags,
		Recurrence:     recurrence,
		Comments:       comments,
		Attachments:    attachments,
	}, nil
}
