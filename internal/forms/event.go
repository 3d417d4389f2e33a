package forms

import (
	"fmt"
	"time"

	"content_hub/internal/domain"
)

type EventInput struct {
	TitleAr          string    `json:"title_ar" validate:"required"`
	TitleEn          string    `json:"title_en" validate:"required"`
	DescriptionAr    string    `json:"description_ar" validate:"required"`
	DescriptionEn    string    `json:"description_en" validate:"required"`
	EventDate        time.Time `json:"event_date" validate:"required"`
	LocationAr       string    `json:"location_ar" validate:"required"`
	LocationEn       string    `json:"location_en" validate:"required"`
	MainImageURL     string    `json:"main_image_url" validate:"omitempty,url"`
	AdditionalImages []string  `json:"additional_images" validate:"dive,url"`
	Published        bool      `json:"published"`
}

func (in EventInput) Record() (*domain.Event, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid event input: %w", err)
	}
	if err := requirePairs(in.Published,
		pair{"title", in.TitleAr, in.TitleEn},
		pair{"description", in.DescriptionAr, in.DescriptionEn},
		pair{"location", in.LocationAr, in.LocationEn},
	); err != nil {
		return nil, err
	}

	return &domain.Event{
		TitleAr:          in.TitleAr,
		TitleEn:          in.TitleEn,
		DescriptionAr:    in.DescriptionAr,
		DescriptionEn:    in.DescriptionEn,
		EventDate:        in.EventDate,
		LocationAr:       in.LocationAr,
		LocationEn:       in.LocationEn,
		MainImageURL:     optionalURL(in.MainImageURL),
		AdditionalImages: domain.StringList(in.AdditionalImages),
		Published:        in.Published,
	}, nil
}
