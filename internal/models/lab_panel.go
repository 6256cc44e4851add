package models

import (
	"time"

	"gorm.io/gorm"
)

// LabPanel is one dated core lab draw. Every analyte is optional; a panel
// uploaded from a PDF or entered by hand rarely carries all of them.
type LabPanel struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	TakenAt   time.Time      `gorm:"index" json:"taken_at" example:"2023-01-01"`

	FastingGlucoseMgDl *float64 `json:"fasting_glucose_mg_dl" example:"95"`
	HbA1cPercent       *float64 `json:"hba1c_percent" example:"5.4"`
	BunMgDl            *float64 `json:"bun_mg_dl" example:"14"`
	CreatinineMgDl     *float64 `json:"creatinine_mg_dl" example:"0.9"`
	EgfrMlMin          *float64 `gorm:"column:egfr_ml_min_1_73" json:"egfr_ml_min_1_73" example:"98"`
	CholTotalMgDl      *float64 `json:"chol_total_mg_dl" example:"180"`
	HdlMgDl            *float64 `json:"hdl_mg_dl" example:"55"`
	LdlMgDl            *float64 `json:"ldl_mg_dl" example:"100"`
	TrigMgDl           *float64 `json:"trig_mg_dl" example:"120"`
	AltUL              *float64 `gorm:"column:alt_u_l" json:"alt_u_l" example:"22"`
	AstUL              *float64 `gorm:"column:ast_u_l" json:"ast_u_l" example:"24"`
	TshUluMl           *float64 `gorm:"column:tsh_ulu_ml" json:"tsh_ulu_ml" example:"1.8"`
	VitD25OhNgMl       *float64 `gorm:"column:vitd_25oh_ng_ml" json:"vitd_25oh_ng_ml" example:"32"`
	CrpMgL             *float64 `gorm:"column:crp_mg_l" json:"crp_mg_l" example:"0.8"`
}

func (l *LabPanel) TableName() string {
	return "lab_panels"
}

// LabsCore is the scoring-facing view of the latest lab panel.
type LabsCore struct {
	FastingGlucoseMgDl *float64 `json:"fasting_glucose_mg_dl"`
	HbA1cPercent       *float64 `json:"hba1c_percent"`
	BunMgDl            *float64 `json:"bun_mg_dl"`
	CreatinineMgDl     *float64 `json:"creatinine_mg_dl"`
	EgfrMlMin          *float64 `json:"egfr_ml_min_1_73"`
	CholTotalMgDl      *float64 `json:"chol_total_mg_dl"`
	HdlMgDl            *float64 `json:"hdl_mg_dl"`
	LdlMgDl            *float64 `json:"ldl_mg_dl"`
	TrigMgDl           *float64 `json:"trig_mg_dl"`
	AltUL              *float64 `json:"alt_u_l"`
	AstUL              *float64 `json:"ast_u_l"`
	TshUluMl           *float64 `json:"tsh_ulu_ml"`
	VitD25OhNgMl       *float64 `json:"vitd_25oh_ng_ml"`
	CrpMgL             *float64 `json:"crp_mg_l"`
}
