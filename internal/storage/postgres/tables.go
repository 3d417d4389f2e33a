package postgres

import (
	"github.com/jmoiron/sqlx"

	"content_hub/internal/domain"
)

var newsSpec = TableSpec{
	Name:    "news",
	OrderBy: "created_at DESC",
	InsertCols: []string{
		"title_ar", "title_en", "content_ar", "content_en",
		"main_image_url", "additional_images", "category", "published", "user_id",
	},
	MutableCols: []string{
		"title_ar", "title_en", "content_ar", "content_en",
		"main_image_url", "additional_images", "category", "published",
	},
}

var eventsSpec = TableSpec{
	Name:    "events",
	OrderBy: "event_date ASC",
	InsertCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"main_image_url", "additional_images", "event_date",
		"location_ar", "location_en", "published", "user_id",
	},
	MutableCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"main_image_url", "additional_images", "event_date",
		"location_ar", "location_en", "published",
	},
}

var reportsSpec = TableSpec{
	Name:    "reports",
	OrderBy: "created_at DESC",
	InsertCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"file_url", "file_size", "report_type",
		"main_image_url", "additional_images", "published", "user_id",
	},
	MutableCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"file_url", "file_size", "report_type",
		"main_image_url", "additional_images", "published",
	},
}

var projectsSpec = TableSpec{
	Name:    "projects",
	OrderBy: "created_at DESC",
	InsertCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"objectives_ar", "objectives_en", "achievements_ar", "achievements_en",
		"beneficiaries_ar", "beneficiaries_en", "duration_ar", "duration_en",
		"locations", "start_date", "end_date", "budget",
		"funding_source_ar", "funding_source_en", "status", "project_phases",
		"main_image", "images", "main_video", "videos", "main_file", "files",
		"beneficiaries_breakdown", "published", "user_id",
	},
	MutableCols: []string{
		"title_ar", "title_en", "description_ar", "description_en",
		"objectives_ar", "objectives_en", "achievements_ar", "achievements_en",
		"beneficiaries_ar", "beneficiaries_en", "duration_ar", "duration_en",
		"locations", "start_date", "end_date", "budget",
		"funding_source_ar", "funding_source_en", "status", "project_phases",
		"main_image", "images", "main_video", "videos", "main_file", "files",
		"beneficiaries_breakdown", "published",
	},
}

var successStoriesSpec = TableSpec{
	Name:    "success_stories",
	OrderBy: "created_at DESC",
	InsertCols: []string{
		"title_ar", "title_en", "content_ar", "content_en",
		"author_name_ar", "author_name_en",
		"success_details_ar", "success_details_en",
		"key_takeaways_ar", "key_takeaways_en",
		"impact_ar", "impact_en", "start_date", "end_date",
		"categories", "location",
		"main_image", "images", "main_video", "videos", "main_file", "files",
		"audience_engagement", "published", "user_id",
	},
	MutableCols: []string{
		"title_ar", "title_en", "content_ar", "content_en",
		"author_name_ar", "author_name_en",
		"success_details_ar", "success_details_en",
		"key_takeaways_ar", "key_takeaways_en",
		"impact_ar", "impact_en", "start_date", "end_date",
		"categories", "location",
		"main_image", "images", "main_video", "videos", "main_file", "files",
		"audience_engagement", "published",
	},
}

// Tables lists every content table served by this package.
func Tables() []string {
	return []string{
		newsSpec.Name,
		eventsSpec.Name,
		reportsSpec.Name,
		projectsSpec.Name,
		successStoriesSpec.Name,
	}
}

func NewNewsStore(db *sqlx.DB) *RecordStore[*domain.News] {
	return NewRecordStore(db, newsSpec, func() *domain.News { return new(domain.News) })
}

func NewEventStore(db *sqlx.DB) *RecordStore[*domain.Event] {
	return NewRecordStore(db, eventsSpec, func() *domain.Event { return new(domain.Event) })
}

func NewReportStore(db *sqlx.DB) *RecordStore[*domain.Report] {
	return NewRecordStore(db, reportsSpec, func() *domain.Report { return new(domain.Report) })
}

func NewProjectStore(db *sqlx.DB) *RecordStore[*domain.Project] {
	return NewRecordStore(db, projectsSpec, func() *domain.Project { return new(domain.Project) })
}

func NewSuccessStoryStore(db *sqlx.DB) *RecordStore[*domain.SuccessStory] {
	return NewRecordStore(db, successStoriesSpec, func() *domain.SuccessStory { return new(domain.SuccessStory) })
}
