package character

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/character/migrations"
)

// SQLiteRepository stores each character as a JSON document next to the
// columns it is looked up by
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// OpenSQLite opens the database file, applies the embedded migrations and
// returns the repository. Close releases the file.
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char := prepareForCreate(input.Character, r.clock.Now().Unix())
	data, err := json.Marshal(char)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO characters (id, player_id, name, level, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		char.ID, char.PlayerID, char.Name, char.Level, string(data), char.CreatedAt, char.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: char}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char, err := r.load(ctx, r.db, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: char}, nil
}

// Update applies the partial update inside one transaction
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Update == nil {
		return nil, errors.InvalidArgument(errUpdateNil)
	}
	if err := input.Update.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to begin update")
	}
	defer func() { _ = tx.Rollback() }()

	char, err := r.load(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(char, input, r.clock.Now().Unix()); err != nil {
		return nil, err
	}

	data, err := json.Marshal(char)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}
	// The row only changes if no other writer bumped the revision since load.
	res, err := tx.ExecContext(ctx,
		`UPDATE characters SET level = ?, data = ?, updated_at = ?
		 WHERE id = ? AND COALESCE(json_extract(data, '$.revision'), 0) = ?`,
		char.Level, string(data), char.UpdatedAt, char.ID, char.Revision-1,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	if n == 0 {
		return nil, errors.Abortedf("character %s was modified concurrently", char.ID)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "failed to commit character update")
	}

	slog.DebugContext(ctx, "updated character",
		"character_id", char.ID,
		"level", char.Level)

	return &UpdateOutput{Character: char}, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *SQLiteRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM characters WHERE player_id = ? ORDER BY created_at, id`,
		input.PlayerID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
	}
	defer func() { _ = rows.Close() }()

	characters := make([]*dnd5e.Character, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character")
		}
		char, err := decodeCharacter([]byte(data))
		if err != nil {
			return nil, err
		}
		characters = append(characters, char)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
	}

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteRepository) load(ctx context.Context, q queryer, id string) (*dnd5e.Character, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("character with ID %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}
	return decodeCharacter([]byte(data))
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Repository = (*SQLiteRepository)(nil)
