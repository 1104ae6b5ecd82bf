package rdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/domain/model"
)

// EnvironmentRepository is a GORM-backed implementation of domain.EnvironmentRepository.
type EnvironmentRepository struct {
	db *gorm.DB
}

func NewEnvironmentRepository(db *gorm.DB) *EnvironmentRepository {
	return &EnvironmentRepository{db: db}
}

func toEnvironmentRecord(e *model.Environment) *EnvironmentRecord {
	vars := e.Variables
	if vars == nil {
		vars = map[string]string{}
	}
	// Marshal of map[string]string cannot fail.
	payload, _ := json.Marshal(vars)
	return &EnvironmentRecord{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Name:        e.Name,
		Description: e.Description,
		Variables:   string(payload),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEnvironmentModel(r *EnvironmentRecord) *model.Environment {
	vars := map[string]string{}
	// Malformed payloads contribute an empty variable set; a bad record
	// must never fail reads or merges.
	if r.Variables != "" {
		if err := json.Unmarshal([]byte(r.Variables), &vars); err != nil {
			vars = map[string]string{}
		}
	}
	return &model.Environment{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Variables:   vars,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *EnvironmentRepository) Create(ctx context.Context, e *model.Environment) error {
	rec := toEnvironmentRecord(e)
	if rec.ID == "" {
		rec.ID = "env-" + uuid.NewString()
		e.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *EnvironmentRepository) Get(ctx context.Context, id string) (*model.Environment, error) {
	var rec EnvironmentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrEnvironmentNotFound
		}
		return nil, err
	}
	return toEnvironmentModel(&rec), nil
}

func (r *EnvironmentRepository) List(ctx context.Context) ([]*model.Environment, error) {
	var recs []EnvironmentRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Environment, 0, len(recs))
	for i := range recs {
		out = append(out, toEnvironmentModel(&recs[i]))
	}
	return out, nil
}

func (r *EnvironmentRepository) Update(ctx context.Context, e *model.Environment) error {
	rec := toEnvironmentRecord(e)
	return r.db.WithContext(ctx).Model(&EnvironmentRecord{}).Where("id = ?", rec.ID).Select("*").Omit("id", "created_at").Updates(rec).Error
}

func (r *EnvironmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&WorkspaceEnvironmentRecord{}, "environment_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&EnvironmentRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrEnvironmentNotFound
		}
		return nil
	})
}

// Ensure interface satisfaction.
var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
