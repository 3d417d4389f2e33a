//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"content_hub/internal/domain"
	"content_hub/testdata/utils"
)

const testUserID = "1b4e28ba-2fa1-11ed-a261-0242ac120002"

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_content_tables.up.sql"),
			filepath.Join(migrationsPath, "002_change_notifications.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	for _, table := range Tables() {
		_, _ = s.db.ExecContext(s.ctx, "DELETE FROM "+table)
	}
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newNews(titleEn string) *domain.News {
	return &domain.News{
		TitleAr:      "خبر",
		TitleEn:      titleEn,
		ContentAr:    "محتوى",
		ContentEn:    "Content",
		MainImageURL: utils.Ptr("https://cdn.example.com/main.jpg"),
		Category:     "General",
		UserID:       testUserID,
	}
}

func (s *PostgresIntegrationSuite) TestNewsStore_InsertReturnsServerValues() {
	store := NewNewsStore(s.db)

	created, err := store.Insert(s.ctx, s.newNews("Inserted"))
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())
	s.False(created.UpdatedAt.IsZero())
	s.Equal("Inserted", created.TitleEn)
	s.Equal(testUserID, created.UserID)
	s.False(created.Published)
}

func (s *PostgresIntegrationSuite) TestNewsStore_ListOrdersNewestFirst() {
	store := NewNewsStore(s.db)

	first, err := store.Insert(s.ctx, s.newNews("older"))
	s.Require().NoError(err)

	// created_at has microsecond resolution; force distinct timestamps.
	_, err = s.db.ExecContext(s.ctx,
		"UPDATE news SET created_at = created_at - interval '1 hour' WHERE id = $1", first.ID)
	s.Require().NoError(err)

	_, err = store.Insert(s.ctx, s.newNews("newer"))
	s.Require().NoError(err)

	rows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("newer", rows[0].TitleEn)
	s.Equal("older", rows[1].TitleEn)
}

func (s *PostgresIntegrationSuite) TestNewsStore_ListPage() {
	store := NewNewsStore(s.db)

	titles := []string{"oldest", "middle", "newest"}
	for i, title := range titles {
		created, err := store.Insert(s.ctx, s.newNews(title))
		s.Require().NoError(err)

		// Spread created_at so the page ordering is deterministic.
		_, err = s.db.ExecContext(s.ctx,
			"UPDATE news SET created_at = created_at - make_interval(hours => $1) WHERE id = $2",
			len(titles)-i, created.ID)
		s.Require().NoError(err)
	}

	rows, total, err := store.ListPage(s.ctx, 2, 0)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(rows, 2)
	s.Equal("newest", rows[0].TitleEn)
	s.Equal("middle", rows[1].TitleEn)

	rows, total, err = store.ListPage(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(rows, 1)
	s.Equal("oldest", rows[0].TitleEn)

	rows, total, err = store.ListPage(s.ctx, 2, 4)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Empty(rows)
}

func (s *PostgresIntegrationSuite) TestNewsStore_ListPageRejectsBadWindow() {
	store := NewNewsStore(s.db)

	_, _, err := store.ListPage(s.ctx, 0, 0)
	s.ErrorContains(err, "limit must be positive")

	_, _, err = store.ListPage(s.ctx, 10, -1)
	s.ErrorContains(err, "negative offset")
}

func (s *PostgresIntegrationSuite) TestNewsStore_UpdatePatchesOnlyGivenColumns() {
	store := NewNewsStore(s.db)

	created, err := store.Insert(s.ctx, s.newNews("Original"))
	s.Require().NoError(err)

	updated, err := store.Update(s.ctx, created.ID, map[string]any{
		"title_en":  "Patched",
		"published": true,
	})
	s.Require().NoError(err)

	s.Equal("Patched", updated.TitleEn)
	s.True(updated.Published)
	s.Equal(created.TitleAr, updated.TitleAr)
	s.Equal(created.ContentEn, updated.ContentEn)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
}

func (s *PostgresIntegrationSuite) TestNewsStore_UpdateRejectsServerOwnedColumns() {
	store := NewNewsStore(s.db)

	created, err := store.Insert(s.ctx, s.newNews("Original"))
	s.Require().NoError(err)

	_, err = store.Update(s.ctx, created.ID, map[string]any{"user_id": testUserID})
	s.ErrorContains(err, `column "user_id" is not updatable`)
}

func (s *PostgresIntegrationSuite) TestNewsStore_UpdateUnknownID() {
	store := NewNewsStore(s.db)

	_, err := store.Update(s.ctx, "8f8c6f04-9fd1-4f5c-9a6e-000000000000", map[string]any{"published": true})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestNewsStore_UpdateMalformedID() {
	store := NewNewsStore(s.db)

	_, err := store.Update(s.ctx, "not-a-uuid", map[string]any{"published": true})
	s.Error(err)
	s.NotErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestNewsStore_Delete() {
	store := NewNewsStore(s.db)

	created, err := store.Insert(s.ctx, s.newNews("Doomed"))
	s.Require().NoError(err)

	s.NoError(store.Delete(s.ctx, created.ID))

	rows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(rows)

	s.ErrorIs(store.Delete(s.ctx, created.ID), domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestEventStore_OrdersByEventDateAscending() {
	store := NewEventStore(s.db)

	later := &domain.Event{
		TitleAr: "فعالية", TitleEn: "Later",
		DescriptionAr: "وصف", DescriptionEn: "Description",
		EventDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		LocationAr: "عدن", LocationEn: "Aden",
		UserID: testUserID,
	}
	sooner := &domain.Event{
		TitleAr: "فعالية", TitleEn: "Sooner",
		DescriptionAr: "وصف", DescriptionEn: "Description",
		EventDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		LocationAr: "صنعاء", LocationEn: "Sanaa",
		UserID: testUserID,
	}

	_, err := store.Insert(s.ctx, later)
	s.Require().NoError(err)
	_, err = store.Insert(s.ctx, sooner)
	s.Require().NoError(err)

	rows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Sooner", rows[0].TitleEn)
	s.Equal("Later", rows[1].TitleEn)
}

func (s *PostgresIntegrationSuite) TestProjectStore_RoundTripsStructuredColumns() {
	store := NewProjectStore(s.db)

	project := &domain.Project{
		TitleAr: "مشروع", TitleEn: "Water Project",
		DescriptionAr: "وصف", DescriptionEn: "Description",
		ObjectivesAr: domain.StringList{"هدف"},
		ObjectivesEn: domain.StringList{"Objective"},
		Locations: domain.LocationList{{
			NameAr: "تعز", NameEn: "Taiz",
			Coordinates: domain.Coordinates{Lat: "13.57", Lng: "44.01"},
		}},
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Budget:    domain.Budget{Amount: 250000, Currency: "USD"},
		Status:    domain.ProjectStatusOngoing,
		Phases: domain.PhaseList{{
			NameAr: "مرحلة", NameEn: "Phase 1",
			StartDate: "2026-01-01", EndDate: "2026-06-30", Status: "Ongoing",
		}},
		MainImage:              domain.MediaRef{URL: "https://cdn.example.com/p.jpg", UploadedAt: time.Now().UTC()},
		BeneficiariesBreakdown: domain.Breakdown{Total: 500, Women: 200, Children: 150},
		UserID:                 testUserID,
	}

	created, err := store.Insert(s.ctx, project)
	s.Require().NoError(err)

	rows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)

	got := rows[0]
	s.Equal(domain.StringList{"Objective"}, got.ObjectivesEn)
	s.Equal("Taiz", got.Locations[0].NameEn)
	s.Equal("13.57", got.Locations[0].Coordinates.Lat)
	s.Equal(250000.0, got.Budget.Amount)
	s.Equal("Phase 1", got.Phases[0].NameEn)
	s.Equal(500, got.BeneficiariesBreakdown.Total)
	s.Equal(created.ID, got.ID)
}

func (s *PostgresIntegrationSuite) TestProjectStore_PatchStructuredColumn() {
	store := NewProjectStore(s.db)

	created, err := store.Insert(s.ctx, &domain.Project{
		TitleAr: "مشروع", TitleEn: "Project",
		DescriptionAr: "وصف", DescriptionEn: "Description",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectStatusPlanned,
		UserID:    testUserID,
	})
	s.Require().NoError(err)

	updated, err := store.Update(s.ctx, created.ID, map[string]any{
		"budget": domain.Budget{Amount: 90000, Currency: "EUR"},
		"status": domain.ProjectStatusOngoing,
	})
	s.Require().NoError(err)

	s.Equal(90000.0, updated.Budget.Amount)
	s.Equal("EUR", updated.Budget.Currency)
	s.Equal(domain.ProjectStatusOngoing, updated.Status)
}

func (s *PostgresIntegrationSuite) TestProjectStore_ListOrdersByCreationNotStartDate() {
	store := NewProjectStore(s.db)

	newProject := func(titleEn string, start time.Time) *domain.Project {
		return &domain.Project{
			TitleAr: "مشروع", TitleEn: titleEn,
			DescriptionAr: "وصف", DescriptionEn: "Description",
			StartDate: start,
			EndDate:   start.AddDate(1, 0, 0),
			Status:    domain.ProjectStatusPlanned,
			UserID:    testUserID,
		}
	}

	// The earlier-created project starts later: creation order and start-date
	// order disagree, and the listing must follow creation time.
	first, err := store.Insert(s.ctx, newProject("created first", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	_, err = s.db.ExecContext(s.ctx,
		"UPDATE projects SET created_at = created_at - interval '1 hour' WHERE id = $1", first.ID)
	s.Require().NoError(err)

	_, err = store.Insert(s.ctx, newProject("created second", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	rows, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("created second", rows[0].TitleEn)
	s.Equal("created first", rows[1].TitleEn)
}

func (s *PostgresIntegrationSuite) TestChangeTriggers_EmitNotifications() {
	connStr, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	listener := pq.NewListener(connStr, time.Second, 10*time.Second, nil)
	defer listener.Close()
	s.Require().NoError(listener.Listen("content_changes"))

	store := NewNewsStore(s.db)
	created, err := store.Insert(s.ctx, s.newNews("Watched"))
	s.Require().NoError(err)

	change := s.nextChange(listener)
	s.Equal("news", change.Table)
	s.Equal(domain.ActionInsert, change.Action)
	s.Equal(created.ID, change.ID)

	_, err = store.Update(s.ctx, created.ID, map[string]any{"published": true})
	s.Require().NoError(err)

	change = s.nextChange(listener)
	s.Equal(domain.ActionUpdate, change.Action)
	s.Equal(created.ID, change.ID)

	s.Require().NoError(store.Delete(s.ctx, created.ID))

	change = s.nextChange(listener)
	s.Equal(domain.ActionDelete, change.Action)
	s.Equal(created.ID, change.ID)
}

func (s *PostgresIntegrationSuite) nextChange(listener *pq.Listener) domain.Change {
	select {
	case n := <-listener.Notify:
		s.Require().NotNil(n)
		var change domain.Change
		s.Require().NoError(json.Unmarshal([]byte(n.Extra), &change))
		return change
	case <-time.After(5 * time.Second):
		s.Require().FailNow("no notification received")
		return domain.Change{}
	}
}
