package domain

import "time"

const (
	ProjectStatusOngoing   = "Ongoing"
	ProjectStatusCompleted = "Completed"
	ProjectStatusPlanned   = "Planned"
)

type Project struct {
	ID                     string       `db:"id" json:"id"`
	TitleAr                string       `db:"title_ar" json:"title_ar"`
	TitleEn                string       `db:"title_en" json:"title_en"`
	DescriptionAr          string       `db:"description_ar" json:"description_ar"`
	DescriptionEn          string       `db:"description_en" json:"description_en"`
	ObjectivesAr           StringList   `db:"objectives_ar" json:"objectives_ar"`
	ObjectivesEn           StringList   `db:"objectives_en" json:"objectives_en"`
	AchievementsAr         StringList   `db:"achievements_ar" json:"achievements_ar"`
	AchievementsEn         StringList   `db:"achievements_en" json:"achievements_en"`
	BeneficiariesAr        StringList   `db:"beneficiaries_ar" json:"beneficiaries_ar"`
	BeneficiariesEn        StringList   `db:"beneficiaries_en" json:"beneficiaries_en"`
	DurationAr             string       `db:"duration_ar" json:"duration_ar"`
	DurationEn             string       `db:"duration_en" json:"duration_en"`
	Locations              LocationList `db:"locations" json:"locations"`
	StartDate              time.Time    `db:"start_date" json:"start_date"`
	EndDate                time.Time    `db:"end_date" json:"end_date"`
	Budget                 Budget       `db:"budget" json:"budget"`
	FundingSourceAr        StringList   `db:"funding_source_ar" json:"funding_source_ar"`
	FundingSourceEn        StringList   `db:"funding_source_en" json:"funding_source_en"`
	Status                 string       `db:"status" json:"status"`
	Phases                 PhaseList    `db:"project_phases" json:"project_phases"`
	MainImage              MediaRef     `db:"main_image" json:"main_image"`
	Images                 MediaList    `db:"images" json:"images"`
	MainVideo              MediaRef     `db:"main_video" json:"main_video"`
	Videos                 MediaList    `db:"videos" json:"videos"`
	MainFile               MediaRef     `db:"main_file" json:"main_file"`
	Files                  FileList     `db:"files" json:"files"`
	BeneficiariesBreakdown Breakdown    `db:"beneficiaries_breakdown" json:"beneficiaries_breakdown"`
	Published              bool         `db:"published" json:"published"`
	UserID                 string       `db:"user_id" json:"user_id"`
	CreatedAt              time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time    `db:"updated_at" json:"updated_at"`
}

func (p *Project) RecordID() string       { return p.ID }
func (p *Project) SetOwner(userID string) { p.UserID = userID }
