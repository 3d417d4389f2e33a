package domain

import "time"

type Report struct {
	ID               string     `db:"id" json:"id"`
	TitleAr          string     `db:"title_ar" json:"title_ar"`
	TitleEn          string     `db:"title_en" json:"title_en"`
	DescriptionAr    string     `db:"description_ar" json:"description_ar"`
	DescriptionEn    string     `db:"description_en" json:"description_en"`
	FileURL          string     `db:"file_url" json:"file_url"`
	FileSize         string     `db:"file_size" json:"file_size"`
	ReportType       string     `db:"report_type" json:"report_type"`
	MainImageURL     *string    `db:"main_image_url" json:"main_image_url"`
	AdditionalImages StringList `db:"additional_images" json:"additional_images"`
	Published        bool       `db:"published" json:"published"`
	UserID           string     `db:"user_id" json:"user_id"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

func (r *Report) RecordID() string       { return r.ID }
func (r *Report) SetOwner(userID string) { r.UserID = userID }
