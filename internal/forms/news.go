package forms

import (
	"fmt"

	"content_hub/internal/domain"
)

// NewsInput is the news form payload. The main image is required before
// submission: uploads happen first, so by the time the record is built the
// URL must exist.
type NewsInput struct {
	TitleAr          string   `json:"title_ar" validate:"required"`
	TitleEn          string   `json:"title_en" validate:"required"`
	ContentAr        string   `json:"content_ar" validate:"required"`
	ContentEn        string   `json:"content_en" validate:"required"`
	Category         string   `json:"category"`
	MainImageURL     string   `json:"main_image_url" validate:"required,url"`
	AdditionalImages []string `json:"additional_images" validate:"dive,url"`
	Published        bool     `json:"published"`
}

func (in NewsInput) Record() (*domain.News, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid news input: %w", err)
	}
	if err := requirePairs(in.Published,
		pair{"title", in.TitleAr, in.TitleEn},
		pair{"content", in.ContentAr, in.ContentEn},
	); err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = "General"
	}

	return &domain.News{
		TitleAr:          in.TitleAr,
		TitleEn:          in.TitleEn,
		ContentAr:        in.ContentAr,
		ContentEn:        in.ContentEn,
		Category:         category,
		MainImageURL:     &in.MainImageURL,
		AdditionalImages: domain.StringList(in.AdditionalImages),
		Published:        in.Published,
	}, nil
}
