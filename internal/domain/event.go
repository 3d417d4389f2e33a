package domain

import "time"

type Event struct {
	ID               string     `db:"id" json:"id"`
	TitleAr          string     `db:"title_ar" json:"title_ar"`
	TitleEn          string     `db:"title_en" json:"title_en"`
	DescriptionAr    string     `db:"description_ar" json:"description_ar"`
	DescriptionEn    string     `db:"description_en" json:"description_en"`
	MainImageURL     *string    `db:"main_image_url" json:"main_image_url"`
	AdditionalImages StringList `db:"additional_images" json:"additional_images"`
	EventDate        time.Time  `db:"event_date" json:"event_date"`
	LocationAr       string     `db:"location_ar" json:"location_ar"`
	LocationEn       string     `db:"location_en" json:"location_en"`
	Published        bool       `db:"published" json:"published"`
	UserID           string     `db:"user_id" json:"user_id"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

func (e *Event) RecordID() string       { return e.ID }
func (e *Event) SetOwner(userID string) { e.UserID = userID }
