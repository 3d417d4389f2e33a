package forms

import (
	"fmt"
	"time"

	"content_hub/internal/domain"
)

type SuccessStoryInput struct {
	TitleAr            string                  `json:"title_ar" validate:"required"`
	TitleEn            string                  `json:"title_en" validate:"required"`
	ContentAr          string                  `json:"content_ar" validate:"required"`
	ContentEn          string                  `json:"content_en" validate:"required"`
	AuthorNameAr       string                  `json:"author_name_ar"`
	AuthorNameEn       string                  `json:"author_name_en"`
	SuccessDetailsAr   []string                `json:"success_details_ar"`
	SuccessDetailsEn   []string                `json:"success_details_en"`
	KeyTakeawaysAr     []string                `json:"key_takeaways_ar"`
	KeyTakeawaysEn     []string                `json:"key_takeaways_en"`
	ImpactAr           string                  `json:"impact_ar"`
	ImpactEn           string                  `json:"impact_en"`
	StartDate          time.Time               `json:"start_date" validate:"required"`
	EndDate            time.Time               `json:"end_date" validate:"required"`
	Categories         []string                `json:"categories"`
	Location           string                  `json:"location"`
	MainImage          domain.CaptionedMedia   `json:"main_image"`
	Images             []domain.CaptionedMedia `json:"images"`
	MainVideo          string                  `json:"main_video" validate:"omitempty,url"`
	Videos             []domain.CaptionedMedia `json:"videos"`
	MainFile           string                  `json:"main_file" validate:"omitempty,url"`
	Files              []domain.CaptionedMedia `json:"files"`
	AudienceEngagement map[string]any          `json:"audience_engagement"`
	Published          bool                    `json:"published"`
}

func (in SuccessStoryInput) Record() (*domain.SuccessStory, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid success story input: %w", err)
	}
	if err := requirePairs(in.Published,
		pair{"title", in.TitleAr, in.TitleEn},
		pair{"content", in.ContentAr, in.ContentEn},
		pair{"author_name", in.AuthorNameAr, in.AuthorNameEn},
		pair{"impact", in.ImpactAr, in.ImpactEn},
	); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "success_details", len(in.SuccessDetailsAr), len(in.SuccessDetailsEn)); err != nil {
		return nil, err
	}
	if err := requireBalanced(in.Published, "key_takeaways", len(in.KeyTakeawaysAr), len(in.KeyTakeawaysEn)); err != nil {
		return nil, err
	}
	if in.Published && in.MainImage.URL == "" {
		return nil, fmt.Errorf("cannot publish a success story without a main image")
	}

	return &domain.SuccessStory{
		TitleAr:            in.TitleAr,
		TitleEn:            in.TitleEn,
		ContentAr:          in.ContentAr,
		ContentEn:          in.ContentEn,
		AuthorNameAr:       in.AuthorNameAr,
		AuthorNameEn:       in.AuthorNameEn,
		SuccessDetailsAr:   domain.StringList(in.SuccessDetailsAr),
		SuccessDetailsEn:   domain.StringList(in.SuccessDetailsEn),
		KeyTakeawaysAr:     domain.StringList(in.KeyTakeawaysAr),
		KeyTakeawaysEn:     domain.StringList(in.KeyTakeawaysEn),
		ImpactAr:           in.ImpactAr,
		ImpactEn:           in.ImpactEn,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		Categories:         domain.StringList(in.Categories),
		Location:           in.Location,
		MainImage:          in.MainImage,
		Images:             domain.CaptionedList(in.Images),
		MainVideo:          optionalURL(in.MainVideo),
		Videos:             domain.CaptionedList(in.Videos),
		MainFile:           optionalURL(in.MainFile),
		Files:              domain.CaptionedList(in.Files),
		AudienceEngagement: domain.JSONMap(in.AudienceEngagement),
		Published:          in.Published,
	}, nil
}
