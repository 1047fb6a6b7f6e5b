package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rmejia/unified-portfolio-backend/models"
)

// projectRecord is the row shape for a unified project. Scalar fields get
// real columns so they stay queryable with plain SQL; the nested content
// structures live in JSON columns since only the store ever interprets them.
type projectRecord struct {
	ID          string  `gorm:"type:text;primaryKey;not null"`
	Slug        string  `gorm:"type:text;uniqueIndex;not null"`
	Title       string  `gorm:"type:text;not null"`
	Role        string  `gorm:"type:text;not null"`
	Summary     string  `gorm:"type:text;not null"`
	Type        string  `gorm:"type:text;not null"`
	Status      string  `gorm:"type:text;not null;index"`
	Featured    bool    `gorm:"not null"`
	TemplateID  *string `gorm:"type:text"`
	OrderIndex  *int
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	Content     datatypes.JSON `gorm:"type:jsonb"`
	Images      datatypes.JSON `gorm:"type:jsonb"`
	Sections    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

func (projectRecord) TableName() string {
	return "projects"
}

// GormBackend persists the collection in a SQL database (Postgres in
// production, SQLite for local development) through a shared GORM instance.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&projectRecord{}); err != nil {
		return nil, fmt.Errorf("migrating projects table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Load(ctx context.Context) ([]models.UnifiedProject, error) {
	var records []projectRecord
	if err := b.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}

	projects := make([]models.UnifiedProject, 0, len(records))
	for _, rec := range records {
		p, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("decoding project %s: %w", rec.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Save replaces the whole collection in one transaction. The data set is a
// single author's portfolio, so a full replace keeps the Backend contract
// trivially atomic without per-row diffing.
func (b *GormBackend) Save(ctx context.Context, projects []models.UnifiedProject) error {
	records := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		rec, err := toRecord(p)
		if err != nil {
			return fmt.Errorf("encoding project %s: %w", p.ID, err)
		}
		records = append(records, rec)
	}

	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&projectRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func toRecord(p models.UnifiedProject) (projectRecord, error) {
	rec := projectRecord{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Role:        p.Role,
		Summary:     p.Summary,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Featured:    p.Featured,
		TemplateID:  p.TemplateID,
		OrderIndex:  p.OrderIndex,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}

	var err error
	if rec.Tags, err = json.Marshal(p.Tags); err != nil {
		return rec, err
	}
	if rec.Content, err = json.Marshal(p.Content); err != nil {
		return rec, err
	}
	if rec.Images, err = json.Marshal(p.Images); err != nil {
		return rec, err
	}
	if rec.Sections, err = json.Marshal(p.Sections); err != nil {
		return rec, err
	}
	return rec, nil
}

func (rec projectRecord) toModel() (models.UnifiedProject, error) {
	p := models.UnifiedProject{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Title:       rec.Title,
		Role:        rec.Role,
		Summary:     rec.Summary,
		Type:        models.ProjectType(rec.Type),
		Status:      models.ProjectStatus(rec.Status),
		Featured:    rec.Featured,
		TemplateID:  rec.TemplateID,
		OrderIndex:  rec.OrderIndex,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		PublishedAt: rec.PublishedAt,
	}

	if err := json.Unmarshal(rec.Tags, &p.Tags); err != nil {
		return p, err
	}
	if err := json.Unmarshal(rec.Content, &p.Content); err != nil {
		return p, err
	}
	if err := json.Unmarshal(rec.Images, &p.Images); err != nil {
		return p, err
	}
	if err := json.Unmarshal(rec.Sections, &p.Sections); err != nil {
		return p, err
	}
	return p, nil
}
