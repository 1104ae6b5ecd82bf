package rdb

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devharbor/devharbor/domain"
	"github.com/devharbor/devharbor/domain/model"
)

// WorkspaceRepository is a GORM-backed implementation of domain.WorkspaceRepository.
type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func toWorkspaceRecord(w *model.Workspace) *WorkspaceRecord {
	return &WorkspaceRecord{
		ID:           w.ID,
		OwnerID:      w.OwnerID,
		Name:         w.Name,
		RepoURL:      w.RepoURL,
		RepoBranch:   w.RepoBranch,
		Status:       string(w.Status),
		StatusDetail: w.StatusDetail,
		AgentPort:    w.AgentPort,
		EditorPort:   w.EditorPort,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func toWorkspaceModel(r *WorkspaceRecord) *model.Workspace {
	return &model.Workspace{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		RepoURL:      r.RepoURL,
		RepoBranch:   r.RepoBranch,
		Status:       model.WorkspaceStatus(r.Status),
		StatusDetail: r.StatusDetail,
		AgentPort:    r.AgentPort,
		EditorPort:   r.EditorPort,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *model.Workspace) error {
	rec := toWorkspaceRecord(w)
	if rec.ID == "" {
		rec.ID = "ws-" + uuid.NewString()
		w.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *WorkspaceRepository) Get(ctx context.Context, id string) (*model.Workspace, error) {
	var rec WorkspaceRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return toWorkspaceModel(&rec), nil
}

func (r *WorkspaceRepository) List(ctx context.Context) ([]*model.Workspace, error) {
	var recs []WorkspaceRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Workspace, 0, len(recs))
	for i := range recs {
		out = append(out, toWorkspaceModel(&recs[i]))
	}
	return out, nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *model.Workspace) error {
	rec := toWorkspaceRecord(w)
	// Select all columns so zero values (cleared detail, stopped flags)
	// are written too.
	return r.db.WithContext(ctx).Model(&WorkspaceRecord{}).Where("id = ?", rec.ID).Select("*").Omit("id", "created_at").Updates(rec).Error
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&WorkspaceEnvironmentRecord{}, "workspace_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&WorkspaceRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrWorkspaceNotFound
		}
		return nil
	})
}

// ReplaceEnvironmentLinks swaps the link set wholesale: delete all rows for
// the workspace, then insert the selection in order.
func (r *WorkspaceRepository) ReplaceEnvironmentLinks(ctx context.Context, workspaceID string, environmentIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&WorkspaceEnvironmentRecord{}, "workspace_id = ?", workspaceID).Error; err != nil {
			return err
		}
		for i, envID := range environmentIDs {
			rec := &WorkspaceEnvironmentRecord{WorkspaceID: workspaceID, EnvironmentID: envID, Position: i}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *WorkspaceRepository) LinkedEnvironmentIDs(ctx context.Context, workspaceID string) ([]string, error) {
	var recs []WorkspaceEnvironmentRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&recs, "workspace_id = ?", workspaceID).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].EnvironmentID)
	}
	return out, nil
}

// Ensure interface satisfaction.
var _ domain.WorkspaceRepository = (*WorkspaceRepository)(nil)
