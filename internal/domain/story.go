package domain

import "time"

type SuccessStory struct {
	ID                 string         `db:"id" json:"id"`
	TitleAr            string         `db:"title_ar" json:"title_ar"`
	TitleEn            string         `db:"title_en" json:"title_en"`
	ContentAr          string         `db:"content_ar" json:"content_ar"`
	ContentEn          string         `db:"content_en" json:"content_en"`
	AuthorNameAr       string         `db:"author_name_ar" json:"author_name_ar"`
	AuthorNameEn       string         `db:"author_name_en" json:"author_name_en"`
	SuccessDetailsAr   StringList     `db:"success_details_ar" json:"success_details_ar"`
	SuccessDetailsEn   StringList     `db:"success_details_en" json:"success_details_en"`
	KeyTakeawaysAr     StringList     `db:"key_takeaways_ar" json:"key_takeaways_ar"`
	KeyTakeawaysEn     StringList     `db:"key_takeaways_en" json:"key_takeaways_en"`
	ImpactAr           string         `db:"impact_ar" json:"impact_ar"`
	ImpactEn           string         `db:"impact_en" json:"impact_en"`
	StartDate          time.Time      `db:"start_date" json:"start_date"`
	EndDate            time.Time      `db:"end_date" json:"end_date"`
	Categories         StringList     `db:"categories" json:"categories"`
	Location           string         `db:"location" json:"location"`
	MainImage          CaptionedMedia `db:"main_image" json:"main_image"`
	Images             CaptionedList  `db:"images" json:"images"`
	MainVideo          *string        `db:"main_video" json:"main_video"`
	Videos             CaptionedList  `db:"videos" json:"videos"`
	MainFile           *string        `db:"main_file" json:"main_file"`
	Files              CaptionedList  `db:"files" json:"files"`
	AudienceEngagement JSONMap        `db:"audience_engagement" json:"audience_engagement"`
	Published          bool           `db:"published" json:"published"`
	UserID             string         `db:"user_id" json:"user_id"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

func (s *SuccessStory) RecordID() string       { return s.ID }
func (s *SuccessStory) SetOwner(userID string) { s.UserID = userID }
