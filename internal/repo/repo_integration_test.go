//go:build integration

package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"memorywall/internal/model"
	"memorywall/internal/moderation"
	"memorywall/internal/repo"
	"memorywall/internal/testutil/containers"
)

type PostgresRepoSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	repo     repo.Repository
	event    *model.Event
}

func TestPostgresRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepoSuite))
}

func (s *PostgresRepoSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	log := zerolog.Nop()

	r, err := repo.NewRepository(s.postgres.DB, &log)
	s.Require().NoError(err)
	s.Require().NoError(r.MigrateUp("../../migrations/postgres"))
	s.repo = r
}

func (s *PostgresRepoSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "submissions", "event_settings", "events"))
	s.event = s.createEvent("anna-ben")
}

func (s *PostgresRepoSuite) createEvent(slug string) *model.Event {
	e := &model.Event{
		Title:          "Anna & Ben",
		Date:           time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		WelcomeMessage: "Share your memories",
		Slug:           slug,
	}
	settings := moderation.DefaultSettings()
	s.Require().NoError(s.repo.CreateEventTx(context.Background(), e, &settings))
	return e
}

func (s *PostgresRepoSuite) createSubmission(after *time.Duration) *model.Submission {
	sub := &model.Submission{
		EventID:     s.event.ID,
		Type:        model.SubmissionMessage,
		MessageText: strPtr("congrats"),
	}
	s.Require().NoError(s.repo.CreateSubmission(context.Background(), sub, after))
	return sub
}

func strPtr(v string) *string { return &v }

func durPtr(d time.Duration) *time.Duration { return &d }

// =============================================================================
// Creation
// =============================================================================

func (s *PostgresRepoSuite) TestCreateSubmission_ManualPlanHasNoDeadline() {
	ctx := context.Background()
	sub := s.createSubmission(nil)

	s.False(sub.Approved)
	s.Nil(sub.AutoApproveAt)

	approved, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	s.Nil(approved, "a manual submission is never auto-approved")

	overdue, err := s.repo.ApproveOverdue(ctx, 10)
	s.Require().NoError(err)
	s.Empty(overdue)
}

func (s *PostgresRepoSuite) TestCreateSubmission_StampsDeadlineFromDelay() {
	sub := s.createSubmission(durPtr(time.Hour))

	s.False(sub.Approved)
	s.Require().NotNil(sub.AutoApproveAt)
	s.WithinDuration(sub.CreatedAt.Add(time.Hour), *sub.AutoApproveAt, time.Second)

	approved, err := s.repo.ApproveIfPending(context.Background(), sub.ID)
	s.Require().NoError(err)
	s.Nil(approved, "not due yet")
}

func (s *PostgresRepoSuite) TestCreateEventTx_SlugTaken() {
	e := &model.Event{Title: "t", Date: time.Now(), WelcomeMessage: "w", Slug: "anna-ben"}
	settings := moderation.DefaultSettings()

	err := s.repo.CreateEventTx(context.Background(), e, &settings)
	s.ErrorIs(err, repo.ErrSlugTaken)
}

// =============================================================================
// Conditional approval
// =============================================================================

func (s *PostgresRepoSuite) TestApproveIfPending_ApprovesOnceThenNoop() {
	ctx := context.Background()
	sub := s.createSubmission(durPtr(0))

	approved, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	s.Require().NotNil(approved)
	s.True(approved.Approved)
	s.Nil(approved.AutoApproveAt)

	again, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	s.Nil(again, "already approved is a no-op")
}

func (s *PostgresRepoSuite) TestApproveIfPending_DeletedRowIsNoop() {
	ctx := context.Background()
	sub := s.createSubmission(durPtr(0))
	s.Require().NoError(s.repo.DeleteSubmission(ctx, sub.ID))

	approved, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	s.Nil(approved)

	_, err = s.repo.GetSubmissionByID(ctx, sub.ID)
	s.ErrorIs(err, repo.ErrSubmissionNotFound, "the row must not come back")
}

func (s *PostgresRepoSuite) TestSetSubmissionApproval_OrganizerDecisionWins() {
	ctx := context.Background()
	sub := s.createSubmission(durPtr(0))

	hidden, err := s.repo.SetSubmissionApproval(ctx, sub.ID, false)
	s.Require().NoError(err)
	s.False(hidden.Approved)
	s.Nil(hidden.AutoApproveAt)

	approved, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	s.Nil(approved, "late timer after an organizer decision")

	overdue, err := s.repo.ApproveOverdue(ctx, 10)
	s.Require().NoError(err)
	s.Empty(overdue, "sweep after an organizer decision")

	stored, err := s.repo.GetSubmissionByID(ctx, sub.ID)
	s.Require().NoError(err)
	s.False(stored.Approved)
}

func (s *PostgresRepoSuite) TestSetSubmissionApproval_UnapproveAfterAutoApproval() {
	ctx := context.Background()
	sub := s.createSubmission(durPtr(0))

	_, err := s.repo.ApproveIfPending(ctx, sub.ID)
	s.Require().NoError(err)
	_, err = s.repo.SetSubmissionApproval(ctx, sub.ID, false)
	s.Require().NoError(err)

	overdue, err := s.repo.ApproveOverdue(ctx, 10)
	s.Require().NoError(err)
	s.Empty(overdue)
}

func (s *PostgresRepoSuite) TestSetSubmissionApproval_NotFound() {
	_, err := s.repo.SetSubmissionApproval(context.Background(), 999, true)
	s.ErrorIs(err, repo.ErrSubmissionNotFound)
}

// =============================================================================
// Sweep
// =============================================================================

func (s *PostgresRepoSuite) TestApproveOverdue_Batches() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.createSubmission(durPtr(0))
	}
	s.createSubmission(durPtr(time.Hour))

	var sizes []int
	for {
		batch, err := s.repo.ApproveOverdue(ctx, 2)
		s.Require().NoError(err)
		if len(batch) == 0 {
			break
		}
		for _, sub := range batch {
			s.True(sub.Approved)
		}
		sizes = append(sizes, len(batch))
	}
	s.Equal([]int{2, 2, 1}, sizes)

	pending := false
	rest, err := s.repo.GetSubmissionsByEventID(ctx, s.event.ID, &pending)
	s.Require().NoError(err)
	s.Len(rest, 1, "the submission that is not due stays pending")
}

func (s *PostgresRepoSuite) TestApproveOverdue_SkipsLockedRows() {
	ctx := context.Background()
	locked := s.createSubmission(durPtr(0))
	free := s.createSubmission(durPtr(0))

	tx, err := s.postgres.DB.Master.BeginTx(ctx, nil)
	s.Require().NoError(err)
	_, err = tx.ExecContext(ctx, `SELECT id FROM submissions WHERE id = $1 FOR UPDATE`, locked.ID)
	s.Require().NoError(err)

	batch, err := s.repo.ApproveOverdue(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 1)
	s.Equal(free.ID, batch[0].ID)

	s.Require().NoError(tx.Rollback())

	batch, err = s.repo.ApproveOverdue(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 1)
	s.Equal(locked.ID, batch[0].ID)
}

// =============================================================================
// Event deletion
// =============================================================================

func (s *PostgresRepoSuite) TestDeleteEventTx_CascadesToSettingsAndSubmissions() {
	ctx := context.Background()
	other := s.createEvent("other-wedding")
	s.createSubmission(nil)
	s.createSubmission(durPtr(time.Hour))

	s.Require().NoError(s.repo.DeleteEventTx(ctx, s.event.ID))

	_, err := s.repo.GetEventByID(ctx, s.event.ID)
	s.ErrorIs(err, repo.ErrEventNotFound)
	_, err = s.repo.GetSettingsByEventID(ctx, s.event.ID)
	s.ErrorIs(err, repo.ErrSettingsNotFound)
	subs, err := s.repo.GetSubmissionsByEventID(ctx, s.event.ID, nil)
	s.Require().NoError(err)
	s.Empty(subs)

	_, err = s.repo.GetSettingsByEventID(ctx, other.ID)
	s.NoError(err, "other events are untouched")

	s.ErrorIs(s.repo.DeleteEventTx(ctx, s.event.ID), repo.ErrEventNotFound)
}
