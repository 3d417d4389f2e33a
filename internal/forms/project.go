package forms

import (
	"fmt"
	"time"

	"content_hub/internal/domain"
)

type ProjectInput struct {
	TitleAr                string                `json:"title_ar" validate:"required"`
	TitleEn                string                `json:"title_en" validate:"required"`
	DescriptionAr          string                `json:"description_ar" validate:"required"`
	DescriptionEn          string                `json:"description_en" validate:"required"`
	ObjectivesAr           []string              `json:"objectives_ar"`
	ObjectivesEn           []string              `json:"objectives_en"`
	AchievementsAr         []string              `json:"achievements_ar"`
	AchievementsEn         []string              `json:"achievements_en"`
	BeneficiariesAr        []string              `json:"beneficiaries_ar"`
	BeneficiariesEn        []string              `json:"beneficiaries_en"`
	DurationAr             string                `json:"duration_ar"`
	DurationEn             string                `json:"duration_en"`
	Locations              []domain.Location     `json:"locations"`
	StartDate              time.Time             `json:"start_date" validate:"required"`
	EndDate                time.Time             `json:"end_date" validate:"required"`
	Budget                 domain.Budget         `json:"budget"`
	FundingSourceAr        []string              `json:"funding_source_ar"`
	FundingSourceEn        []string              `json:"funding_source_en"`
	Status                 string                `json:"status" validate:"omitempty,oneof=Ongoing Completed Planned"`
	Phases                 []domain.Phase        `json:"project_phases"`
	MainImage              domain.MediaRef       `json:"main_image"`
	Images                 []domain.MediaItem    `json:"images"`
	MainVideo              domain.MediaRef       `json:"main_video"`
	Videos                 []domain.MediaItem    `json:"videos"`
	MainFile               domain.MediaRef       `json:"main_file"`
	Files                  []domain.FileItem     `json:"files"`
	BeneficiariesBreakdown domain.Breakdown      `json:"beneficiaries_breakdown"`
	Published              bool                  `json:"published"`
}

func (in ProjectInput) Record() (*domain.Project, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid project input: %w", err)
	}
	if err := requirePairs(in.Published,
		pair{"title", in.TitleAr, in.TitleEn},
		pair{"description", in.DescriptionAr, in.DescriptionEn},
	); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "objectives", len(in.ObjectivesAr), len(in.ObjectivesEn)); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "achievements", len(in.AchievementsAr), len(in.AchievementsEn)); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "beneficiaries", len(in.BeneficiariesAr), len(in.BeneficiariesEn)); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "funding_source", len(in.FundingSourceAr), len(in.FundingSourceEn)); err != nil {
		return nil, err
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("project end date precedes start date")
	}
	if in.Published && in.MainImage.URL == "" {
		return nil, fmt.Errorf("cannot publish a project without a main image")
	}

	status := in.Status
	if status == "" {
		status = domain.ProjectStatusPlanned
	}

	return &domain.Project{
		TitleAr:                in.TitleAr,
		TitleEn:                in.TitleEn,
		DescriptionAr:          in.DescriptionAr,
		DescriptionEn:          in.DescriptionEn,
		ObjectivesAr:           domain.StringList(in.ObjectivesAr),
		ObjectivesEn:           domain.StringList(in.ObjectivesEn),
		AchievementsAr:         domain.StringList(in.AchievementsAr),
		AchievementsEn:         domain.StringList(in.AchievementsEn),
		BeneficiariesAr:        domain.StringList(in.BeneficiariesAr),
		BeneficiariesEn:        domain.StringList(in.BeneficiariesEn),
		DurationAr:             in.DurationAr,
		DurationEn:             in.DurationEn,
		Locations:              domain.LocationList(in.Locations),
		StartDate:              in.StartDate,
		EndDate:                in.EndDate,
		Budget:                 in.Budget,
		FundingSourceAr:        domain.StringList(in.FundingSourceAr),
		FundingSourceEn:        domain.StringList(in.FundingSourceEn),
		Status:                 status,
		Phases:                 domain.PhaseList(in.Phases),
		MainImage:              in.MainImage,
		Images:                 domain.MediaList(in.Images),
		MainVideo:              in.MainVideo,
		Videos:                 domain.MediaList(in.Videos),
		MainFile:               in.MainFile,
		Files:                  domain.FileList(in.Files),
		BeneficiariesBreakdown: in.BeneficiariesBreakdown,
		Published:              in.Published,
	}, nil
}
