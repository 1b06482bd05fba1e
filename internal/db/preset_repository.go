package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opencode-ai/tsvg/internal/models"
)

// Preset repository errors.
var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrPresetExists   = errors.New("preset already exists")
)

const presetColumns = `id, name, file, anchor_line, values_json, created_at, updated_at`

// PresetRepository handles preset persistence.
type PresetRepository struct {
	db *DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(db *DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// Create stores a new preset. Returns ErrPresetExists if the file already has
// a preset with that name.
func (r *PresetRepository) Create(ctx context.Context, preset *models.Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}

	if preset.ID == "" {
		preset.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	preset.UpdatedAt = now
	if preset.Values == nil {
		preset.Values = map[string]string{}
	}

	valuesJSON, err := json.Marshal(preset.Values)
	if err != nil {
		return fmt.Errorf("failed to marshal values: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO presets (`+presetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		preset.ID,
		preset.Name,
		preset.File,
		preset.AnchorLine,
		string(valuesJSON),
		preset.CreatedAt.Format(time.RFC3339),
		preset.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrPresetExists, preset.Name)
		}
		return fmt.Errorf("failed to insert preset: %w", err)
	}

	return nil
}

// Upsert creates the preset, or replaces the values of the preset with the
// same file and name.
func (r *PresetRepository) Upsert(ctx context.Context, preset *models.Preset) error {
	existing, err := r.GetByName(ctx, preset.File, preset.Name)
	if errors.Is(err, ErrPresetNotFound) {
		return r.Create(ctx, preset)
	}
	if err != nil {
		return err
	}
	if err := preset.Validate(); err != nil {
		return err
	}

	preset.ID = existing.ID
	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = time.Now().UTC()
	if preset.Values == nil {
		preset.Values = map[string]string{}
	}

	valuesJSON, err := json.Marshal(preset.Values)
	if err != nil {
		return fmt.Errorf("failed to marshal values: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE presets
		SET anchor_line = ?, values_json = ?, updated_at = ?
		WHERE id = ?
	`,
		preset.AnchorLine,
		string(valuesJSON),
		preset.UpdatedAt.Format(time.RFC3339),
		preset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update preset: %w", err)
	}
	return nil
}

// Get retrieves a preset by ID.
func (r *PresetRepository) Get(ctx context.Context, id string) (*models.Preset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+presetColumns+` FROM presets WHERE id = ?`, id)
	return r.scanPreset(row)
}

// GetByName retrieves a preset by the file it belongs to and its name.
func (r *PresetRepository) GetByName(ctx context.Context, file, name string) (*models.Preset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+presetColumns+` FROM presets WHERE file = ? AND name = ?`, file, name)
	return r.scanPreset(row)
}

// List returns all presets ordered by name. A non-empty file narrows the
// result to presets captured from that file.
func (r *PresetRepository) List(ctx context.Context, file string) ([]*models.Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets`
	args := []any{}
	if file != "" {
		query += ` WHERE file = ?`
		args = append(args, file)
	}
	query += ` ORDER BY name, file`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := []*models.Preset{}
	for rows.Next() {
		preset, err := r.scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presets: %w", err)
	}

	return presets, nil
}

// Delete removes the named preset of file.
func (r *PresetRepository) Delete(ctx context.Context, file, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE file = ? AND name = ?`, file, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPresetNotFound
	}
	return nil
}

func (r *PresetRepository) scanPreset(row rowScanner) (*models.Preset, error) {
	var preset models.Preset
	var valuesJSON, createdAt, updatedAt string

	err := row.Scan(
		&preset.ID,
		&preset.Name,
		&preset.File,
		&preset.AnchorLine,
		&valuesJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, fmt.Errorf("failed to scan preset: %w", err)
	}

	preset.Values = map[string]string{}
	if err := json.Unmarshal([]byte(valuesJSON), &preset.Values); err != nil {
		r.db.logger.Warn().Err(err).Str("preset_id", preset.ID).Msg("failed to parse preset values")
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		preset.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		preset.UpdatedAt = t
	}

	return &preset, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
