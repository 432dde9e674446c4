package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/storage"
)

const upsertSetting = `
	INSERT INTO settings (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", storage.ErrNotFound)
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertSetting)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetClockOverride() (*time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", constants.SettingClockOverride).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return storage.DecodeClockOverride(value)
}

func (s *Store) SetClockOverride(t time.Time) error {
	_, err := s.db.Exec(upsertSetting, constants.SettingClockOverride, storage.EncodeClockOverride(t))
	return err
}

func (s *Store) ClearClockOverride() error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = $1", constants.SettingClockOverride)
	return err
}
