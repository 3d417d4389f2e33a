package forms

import (
	"fmt"

	"content_hub/internal/domain"
)

type ReportInput struct {
	TitleAr          string   `json:"title_ar" validate:"required"`
	TitleEn          string   `json:"title_en" validate:"required"`
	DescriptionAr    string   `json:"description_ar" validate:"required"`
	DescriptionEn    string   `json:"description_en" validate:"required"`
	FileURL          string   `json:"file_url" validate:"required,url"`
	FileSize         string   `json:"file_size"`
	ReportType       string   `json:"report_type"`
	MainImageURL     string   `json:"main_image_url" validate:"omitempty,url"`
	AdditionalImages []string `json:"additional_images" validate:"dive,url"`
	Published        bool     `json:"published"`
}

func (in ReportInput) Record() (*domain.Report, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid report input: %w", err)
	}
	if err := requirePairs(in.Published,
		pair{"title", in.TitleAr, in.TitleEn},
		pair{"description", in.DescriptionAr, in.DescriptionEn},
	); err != nil {
		return nil, err
	}

	reportType := in.ReportType
	if reportType == "" {
		reportType = "Annual"
	}

	return &domain.Report{
		TitleAr:          in.TitleAr,
		TitleEn:          in.TitleEn,
		DescriptionAr:    in.DescriptionAr,
		DescriptionEn:    in.DescriptionEn,
		FileURL:          in.FileURL,
		FileSize:         in.FileSize,
		ReportType:       reportType,
		MainImageURL:     optionalURL(in.MainImageURL),
		AdditionalImages: domain.StringList(in.AdditionalImages),
		Published:        in.Published,
	}, nil
}
