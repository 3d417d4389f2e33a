package domain

import "time"

type News struct {
	ID               string     `db:"id" json:"id"`
	TitleAr          string     `db:"title_ar" json:"title_ar"`
	TitleEn          string     `db:"title_en" json:"title_en"`
	ContentAr        string     `db:"content_ar" json:"content_ar"`
	ContentEn        string     `db:"content_en" json:"content_en"`
	MainImageURL     *string    `db:"main_image_url" json:"main_image_url"`
	AdditionalImages StringList `db:"additional_images" json:"additional_images"`
	Category         string     `db:"category" json:"category"`
	Published        bool       `db:"published" json:"published"`
	UserID           string     `db:"user_id" json:"user_id"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

func (n *News) RecordID() string       { return n.ID }
func (n *News) SetOwner(userID string) { n.UserID = userID }
