package models

import "time"

// Report is a generated analytics report. Only its existence and creation
// time matter to the usage evaluator: monthly usage counts reports created
// since the first instant of the current calendar month.
type Report struct {
	ID          string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	WorkspaceID string    `gorm:"column:workspace_id;type:uuid;not null;index:idx_report_workspace_created,priority:1" json:"workspace_id"`
	Title       string    `gorm:"column:title;type:varchar(256);not null" json:"title"`
	// PeriodStart/PeriodEnd bound the data window the report covers.
	PeriodStart time.Time `gorm:"column:period_start;not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"column:period_end;not null" json:"period_end"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"index:idx_report_workspace_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "report"
}
