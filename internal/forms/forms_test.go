package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"content_hub/internal/domain"
)

func validNewsInput() NewsInput {
	return NewsInput{
		TitleAr:      "عنوان",
		TitleEn:      "Title",
		ContentAr:    "محتوى",
		ContentEn:    "Content",
		MainImageURL: "https://cdn.example.com/main.jpg",
	}
}

func TestNewsInput_Record(t *testing.T) {
	rec, err := validNewsInput().Record()
	require.NoError(t, err)

	require.Equal(t, "General", rec.Category)
	require.NotNil(t, rec.MainImageURL)
	require.Equal(t, "https://cdn.example.com/main.jpg", *rec.MainImageURL)
	require.False(t, rec.Published)
}

func TestNewsInput_MainImageRequired(t *testing.T) {
	in := validNewsInput()
	in.MainImageURL = ""

	_, err := in.Record()
	require.ErrorContains(t, err, "invalid news input")
}

func TestNewsInput_RejectsNonURLImage(t *testing.T) {
	in := validNewsInput()
	in.MainImageURL = "not a url"

	_, err := in.Record()
	require.Error(t, err)
}

func TestNewsInput_PublishRequiresBothLanguages(t *testing.T) {
	in := validNewsInput()
	in.Published = true
	in.ContentEn = "   "

	_, err := in.Record()
	require.ErrorContains(t, err, "cannot publish with incomplete bilingual fields: content")
}

func TestNewsInput_DraftAllowsIncompleteTranslation(t *testing.T) {
	in := validNewsInput()
	in.ContentEn = "placeholder"
	in.Published = false

	_, err := in.Record()
	require.NoError(t, err)
}

func validEventInput() EventInput {
	return EventInput{
		TitleAr:       "فعالية",
		TitleEn:       "Event",
		DescriptionAr: "وصف",
		DescriptionEn: "Description",
		EventDate:     time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		LocationAr:    "صنعاء",
		LocationEn:    "Sanaa",
	}
}

func TestEventInput_Record(t *testing.T) {
	rec, err := validEventInput().Record()
	require.NoError(t, err)
	require.Equal(t, "Sanaa", rec.LocationEn)
	require.Nil(t, rec.MainImageURL)
}

func TestEventInput_PublishChecksLocationPair(t *testing.T) {
	in := validEventInput()
	in.Published = true
	in.LocationAr = ""

	_, err := in.Record()
	require.ErrorContains(t, err, "location")
}

func TestReportInput_Defaults(t *testing.T) {
	rec, err := ReportInput{
		TitleAr:       "تقرير",
		TitleEn:       "Report",
		DescriptionAr: "وصف",
		DescriptionEn: "Description",
		FileURL:       "https://cdn.example.com/report.pdf",
	}.Record()

	require.NoError(t, err)
	require.Equal(t, "Annual", rec.ReportType)
}

func TestReportInput_FileRequired(t *testing.T) {
	_, err := ReportInput{
		TitleAr:       "تقرير",
		TitleEn:       "Report",
		DescriptionAr: "وصف",
		DescriptionEn: "Description",
	}.Record()

	require.ErrorContains(t, err, "invalid report input")
}

func validProjectInput() ProjectInput {
	return ProjectInput{
		TitleAr:       "مشروع",
		TitleEn:       "Project",
		DescriptionAr: "وصف",
		DescriptionEn: "Description",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestProjectInput_DefaultStatus(t *testing.T) {
	rec, err := validProjectInput().Record()
	require.NoError(t, err)
	require.Equal(t, domain.ProjectStatusPlanned, rec.Status)
}

func TestProjectInput_RejectsUnknownStatus(t *testing.T) {
	in := validProjectInput()
	in.Status = "Cancelled"

	_, err := in.Record()
	require.Error(t, err)
}

func TestProjectInput_EndBeforeStart(t *testing.T) {
	in := validProjectInput()
	in.EndDate = in.StartDate.AddDate(0, -1, 0)

	_, err := in.Record()
	require.ErrorContains(t, err, "end date precedes start date")
}

func TestProjectInput_PublishRequiresBalancedLists(t *testing.T) {
	in := validProjectInput()
	in.Published = true
	in.MainImage = domain.MediaRef{URL: "https://cdn.example.com/main.jpg"}
	in.ObjectivesAr = []string{"هدف"}

	_, err := in.Record()
	require.ErrorContains(t, err, "objectives")
}

func TestProjectInput_PublishRequiresMainImage(t *testing.T) {
	in := validProjectInput()
	in.Published = true

	_, err := in.Record()
	require.ErrorContains(t, err, "main image")
}

func TestSuccessStoryInput_PublishRules(t *testing.T) {
	in := SuccessStoryInput{
		TitleAr:   "قصة",
		TitleEn:   "Story",
		ContentAr: "محتوى",
		ContentEn: "Content",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := in.Record()
	require.NoError(t, err, "drafts skip the publish gate")

	in.Published = true
	_, err = in.Record()
	require.ErrorContains(t, err, "author_name")

	in.AuthorNameAr = "كاتب"
	in.AuthorNameEn = "Author"
	in.ImpactAr = "أثر"
	in.ImpactEn = "Impact"
	_, err = in.Record()
	require.ErrorContains(t, err, "main image")

	in.MainImage = domain.CaptionedMedia{URL: "https://cdn.example.com/story.jpg"}
	rec, err := in.Record()
	require.NoError(t, err)
	require.True(t, rec.Published)
}
