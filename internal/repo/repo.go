package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"memorywall/internal/model"
)

//go:generate mockgen -source=repo.go -destination=mocks/mocks.go -package=mocks Repository

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrSettingsNotFound   = errors.New("event settings not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSlugTaken          = errors.New("slug already in use")
)

const uniqueViolation = "23505"

type Repository interface {
	CreateEventTx(ctx context.Context, e *model.Event, s *model.EventSettings) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id int64, upd model.EventUpdate) (*model.Event, error)
	DeleteEventTx(ctx context.Context, id int64) error

	GetSettingsByEventID(ctx context.Context, eventID int64) (*model.EventSettings, error)
	UpdateSettings(ctx context.Context, eventID int64, upd model.SettingsUpdate) (*model.EventSettings, error)

	CreateSubmission(ctx context.Context, sub *model.Submission, autoApproveAfter *time.Duration) error
	GetSubmissionByID(ctx context.Context, id int64) (*model.Submission, error)
	GetSubmissionsByEventID(ctx context.Context, eventID int64, approved *bool) ([]model.Submission, error)
	SetSubmissionApproval(ctx context.Context, id int64, approved bool) (*model.Submission, error)
	ApproveIfPending(ctx context.Context, id int64) (*model.Submission, error)
	ApproveOverdue(ctx context.Context, limit int) ([]model.Submission, error)
	DeleteSubmission(ctx context.Context, id int64) error

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *repository) runMigrations(migrationsDir, pattern string, reverse bool) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	sort.Strings(files)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}
	return nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	if err := r.runMigrations(migrationsDir, "*.up.sql", false); err != nil {
		return err
	}
	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	if err := r.runMigrations(migrationsDir, "*.down.sql", true); err != nil {
		return err
	}
	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// setClause accumulates "column = $n" fragments for partial updates.
type setClause struct {
	parts []string
	args  []any
}

func (c *setClause) add(column string, value any) {
	c.args = append(c.args, value)
	c.parts = append(c.parts, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

func (c *setClause) empty() bool {
	return len(c.parts) == 0
}

func (c *setClause) String() string {
	return strings.Join(c.parts, ", ")
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

const eventColumns = `id, title, date, welcome_message, slug, cover_photo_url,
	primary_color, secondary_color, accent_color, primary_font, created_at, updated_at`

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.WelcomeMessage, &e.Slug, &e.CoverPhotoURL,
		&e.PrimaryColor, &e.SecondaryColor, &e.AccentColor, &e.PrimaryFont,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) CreateEventTx(ctx context.Context, e *model.Event, s *model.EventSettings) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO events (title, date, welcome_message, slug, cover_photo_url,
		                    primary_color, secondary_color, accent_color, primary_font)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Date, e.WelcomeMessage, e.Slug, e.CoverPhotoURL,
		e.PrimaryColor, e.SecondaryColor, e.AccentColor, e.PrimaryFont,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}

	s.EventID = e.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO event_settings (event_id, collect_photos, collect_messages, collect_voicemails,
		                            moderation_enabled, manual_approval, auto_approval_delay,
		                            show_ceremony_tab, show_afterparty_tab, show_album_tab,
		                            tab_ceremony_name, tab_afterparty_name, tab_album_name,
		                            tab_ceremony_content, tab_afterparty_content, tab_album_content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, s.EventID, s.CollectPhotos, s.CollectMessages, s.CollectVoicemails,
		s.ModerationEnabled, s.ManualApproval, s.AutoApprovalDelay,
		s.ShowCeremonyTab, s.ShowAfterpartyTab, s.ShowAlbumTab,
		s.TabCeremonyName, s.TabAfterpartyName, s.TabAlbumName,
		s.TabCeremonyContent, s.TabAfterpartyContent, s.TabAlbumContent,
	).Scan(&s.ID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to insert event settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (r *repository) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	return e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func (r *repository) UpdateEvent(ctx context.Context, id int64, upd model.EventUpdate) (*model.Event, error) {
	var set setClause
	if upd.Title != nil {
		set.add("title", *upd.Title)
	}
	if upd.Date != nil {
		set.add("date", *upd.Date)
	}
	if upd.WelcomeMessage != nil {
		set.add("welcome_message", *upd.WelcomeMessage)
	}
	if upd.CoverPhotoURL != nil {
		set.add("cover_photo_url", *upd.CoverPhotoURL)
	}
	if upd.PrimaryColor != nil {
		set.add("primary_color", *upd.PrimaryColor)
	}
	if upd.SecondaryColor != nil {
		set.add("secondary_color", *upd.SecondaryColor)
	}
	if upd.AccentColor != nil {
		set.add("accent_color", *upd.AccentColor)
	}
	if upd.PrimaryFont != nil {
		set.add("primary_font", *upd.PrimaryFont)
	}
	if set.empty() {
		return r.GetEventByID(ctx, id)
	}

	set.args = append(set.args, id)
	query := fmt.Sprintf(`UPDATE events SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		set.String(), len(set.args), eventColumns)

	e, err := scanEvent(r.db.Master.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return e, nil
}

// DeleteEventTx removes the event together with its submissions and settings.
func (r *repository) DeleteEventTx(ctx context.Context, id int64) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE event_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_settings WHERE event_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete event settings: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		_ = tx.Rollback()
		return ErrEventNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

const settingsColumns = `id, event_id, collect_photos, collect_messages, collect_voicemails,
	moderation_enabled, manual_approval, auto_approval_delay,
	show_ceremony_tab, show_afterparty_tab, show_album_tab,
	tab_ceremony_name, tab_afterparty_name, tab_album_name,
	tab_ceremony_content, tab_afterparty_content, tab_album_content`

func scanSettings(row rowScanner) (*model.EventSettings, error) {
	var s model.EventSettings
	if err := row.Scan(
		&s.ID, &s.EventID, &s.CollectPhotos, &s.CollectMessages, &s.CollectVoicemails,
		&s.ModerationEnabled, &s.ManualApproval, &s.AutoApprovalDelay,
		&s.ShowCeremonyTab, &s.ShowAfterpartyTab, &s.ShowAlbumTab,
		&s.TabCeremonyName, &s.TabAfterpartyName, &s.TabAlbumName,
		&s.TabCeremonyContent, &s.TabAfterpartyContent, &s.TabAlbumContent,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetSettingsByEventID(ctx context.Context, eventID int64) (*model.EventSettings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM event_settings WHERE event_id = $1`, eventID)
	s, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get event settings: %w", err)
	}
	return s, nil
}

func (r *repository) UpdateSettings(ctx context.Context, eventID int64, upd model.SettingsUpdate) (*model.EventSettings, error) {
	var set setClause
	addBool := func(column string, v *bool) {
		if v != nil {
			set.add(column, *v)
		}
	}
	addString := func(column string, v *string) {
		if v != nil {
			set.add(column, *v)
		}
	}
	addContent := func(column string, v *model.TabContent) {
		if v != nil {
			set.add(column, string(*v))
		}
	}

	addBool("collect_photos", upd.CollectPhotos)
	addBool("collect_messages", upd.CollectMessages)
	addBool("collect_voicemails", upd.CollectVoicemails)
	addBool("moderation_enabled", upd.ModerationEnabled)
	addBool("manual_approval", upd.ManualApproval)
	if upd.AutoApprovalDelay != nil {
		set.add("auto_approval_delay", *upd.AutoApprovalDelay)
	}
	addBool("show_ceremony_tab", upd.ShowCeremonyTab)
	addBool("show_afterparty_tab", upd.ShowAfterpartyTab)
	addBool("show_album_tab", upd.ShowAlbumTab)
	addString("tab_ceremony_name", upd.TabCeremonyName)
	addString("tab_afterparty_name", upd.TabAfterpartyName)
	addString("tab_album_name", upd.TabAlbumName)
	addContent("tab_ceremony_content", upd.TabCeremonyContent)
	addContent("tab_afterparty_content", upd.TabAfterpartyContent)
	addContent("tab_album_content", upd.TabAlbumContent)

	if set.empty() {
		return r.GetSettingsByEventID(ctx, eventID)
	}

	set.args = append(set.args, eventID)
	query := fmt.Sprintf(`UPDATE event_settings SET %s WHERE event_id = $%d RETURNING %s`,
		set.String(), len(set.args), settingsColumns)

	s, err := scanSettings(r.db.Master.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to update event settings: %w", err)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Submissions
// ---------------------------------------------------------------------------

const submissionColumns = `id, event_id, type, content_url, message_text, guest_name,
	approved, auto_approve_at, created_at`

func scanSubmission(row rowScanner) (*model.Submission, error) {
	var s model.Submission
	if err := row.Scan(
		&s.ID, &s.EventID, &s.Type, &s.ContentURL, &s.MessageText, &s.GuestName,
		&s.Approved, &s.AutoApproveAt, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSubmissions(rows *sql.Rows) ([]model.Submission, error) {
	defer rows.Close()

	subs := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return subs, nil
}

// CreateSubmission inserts an unapproved submission. When autoApproveAfter is
// set, auto_approve_at is stamped relative to the database clock so the
// conditional approval and the sweeper agree on the deadline.
func (r *repository) CreateSubmission(ctx context.Context, sub *model.Submission, autoApproveAfter *time.Duration) error {
	var delaySeconds *float64
	if autoApproveAfter != nil {
		secs := autoApproveAfter.Seconds()
		delaySeconds = &secs
	}

	err := r.db.Master.QueryRowContext(ctx, `
		INSERT INTO submissions (event_id, type, content_url, message_text, guest_name, approved, auto_approve_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW() + ($6::double precision * INTERVAL '1 second'))
		RETURNING id, approved, auto_approve_at, created_at
	`, sub.EventID, string(sub.Type), sub.ContentURL, sub.MessageText, sub.GuestName, delaySeconds,
	).Scan(&sub.ID, &sub.Approved, &sub.AutoApproveAt, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (r *repository) GetSubmissionByID(ctx context.Context, id int64) (*model.Submission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return s, nil
}

func (r *repository) GetSubmissionsByEventID(ctx context.Context, eventID int64, approved *bool) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE event_id = $1`
	args := []any{eventID}
	if approved != nil {
		query += ` AND approved = $2`
		args = append(args, *approved)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return scanSubmissions(rows)
}

// SetSubmissionApproval is the organizer toggle. It clears any pending
// auto-approval so a later timer or sweep cannot override the decision.
func (r *repository) SetSubmissionApproval(ctx context.Context, id int64, approved bool) (*model.Submission, error) {
	row := r.db.Master.QueryRowContext(ctx, `
		UPDATE submissions
		SET approved = $2, auto_approve_at = NULL
		WHERE id = $1
		RETURNING `+submissionColumns, id, approved)

	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to update submission approval: %w", err)
	}
	return s, nil
}

// ApproveIfPending approves a submission whose auto-approval deadline has
// passed. It returns nil, nil when the row is gone, already approved or was
// taken over by the organizer.
func (r *repository) ApproveIfPending(ctx context.Context, id int64) (*model.Submission, error) {
	row := r.db.Master.QueryRowContext(ctx, `
		UPDATE submissions
		SET approved = TRUE, auto_approve_at = NULL
		WHERE id = $1
		  AND approved = FALSE
		  AND auto_approve_at IS NOT NULL
		  AND auto_approve_at <= NOW()
		RETURNING `+submissionColumns, id)

	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to auto-approve submission: %w", err)
	}
	return s, nil
}

func (r *repository) ApproveOverdue(ctx context.Context, limit int) ([]model.Submission, error) {
	rows, err := r.db.Master.QueryContext(ctx, `
		UPDATE submissions
		SET approved = TRUE, auto_approve_at = NULL
		WHERE id IN (
			SELECT id FROM submissions
			WHERE approved = FALSE
			  AND auto_approve_at IS NOT NULL
			  AND auto_approve_at <= NOW()
			ORDER BY auto_approve_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+submissionColumns, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to approve overdue submissions: %w", err)
	}

	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, err
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
	return subs, nil
}

func (r *repository) DeleteSubmission(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
