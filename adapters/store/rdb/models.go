package rdb

import "time"

// WorkspaceRecord is the RDB persistence model for domain Workspace.
// Table name: workspaces
type WorkspaceRecord struct {
	ID           string    `gorm:"primaryKey;type:text;not null"`
	OwnerID      string    `gorm:"type:text;not null;index"`
	Name         string    `gorm:"type:text;not null"`
	RepoURL      string    `gorm:"type:text"`
	RepoBranch   string    `gorm:"type:text"`
	Status       string    `gorm:"type:text;not null"`
	StatusDetail string    `gorm:"type:text"`
	AgentPort    int       `gorm:"not null"`
	EditorPort   int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (WorkspaceRecord) TableName() string { return "workspaces" }

// EnvironmentRecord persistence model. Variables holds a JSON encoded
// map[string]string; consumers treat invalid JSON as an empty object.
type EnvironmentRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	OwnerID     string    `gorm:"type:text;not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Variables   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (EnvironmentRecord) TableName() string { return "environments" }

// WorkspaceEnvironmentRecord links workspaces to environments. Position is
// the caller's selection order and is the merge-priority tie-break.
type WorkspaceEnvironmentRecord struct {
	WorkspaceID   string `gorm:"primaryKey;type:text;not null"`
	EnvironmentID string `gorm:"primaryKey;type:text;not null"`
	Position      int    `gorm:"not null"`
}

func (WorkspaceEnvironmentRecord) TableName() string { return "workspace_environments" }
