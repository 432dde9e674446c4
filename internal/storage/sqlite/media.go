package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/storage"
)

const mediaColumns = "id, category, title, video_playback_id, video_url, audio_url, active, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaAsset(row rowScanner) (models.MediaAsset, error) {
	var (
		asset     models.MediaAsset
		category  string
		active    int
		createdAt string
	)
	if err := row.Scan(&asset.ID, &category, &asset.Title, &asset.VideoPlaybackID, &asset.VideoURL, &asset.AudioURL, &active, &createdAt); err != nil {
		return models.MediaAsset{}, err
	}
	asset.Category = models.Category(category)
	asset.Active = active == 1

	t, err := time.Parse(storage.TimestampLayout, createdAt)
	if err != nil {
		return models.MediaAsset{}, fmt.Errorf("parsing created_at for media %s: %w", asset.ID, err)
	}
	asset.CreatedAt = t
	return asset, nil
}

func (s *Store) AddMediaAsset(asset models.MediaAsset) error {
	asset, err := storage.PrepareMediaAsset(asset)
	if err != nil {
		return err
	}

	active := 0
	if asset.Active {
		active = 1
	}
	_, err = s.db.Exec(
		"INSERT INTO media_assets ("+mediaColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		asset.ID, string(asset.Category), asset.Title, asset.VideoPlaybackID, asset.VideoURL, asset.AudioURL,
		active, asset.CreatedAt.Format(storage.TimestampLayout),
	)
	return err
}

func (s *Store) GetMediaAsset(id string) (models.MediaAsset, error) {
	row := s.db.QueryRow("SELECT "+mediaColumns+" FROM media_assets WHERE id = ?", id)
	asset, err := scanMediaAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MediaAsset{}, fmt.Errorf("media asset %s: %w", id, storage.ErrNotFound)
	}
	return asset, err
}

func (s *Store) ListMediaAssets(category *models.Category) ([]models.MediaAsset, error) {
	query := "SELECT " + mediaColumns + " FROM media_assets"
	var args []any
	if category != nil {
		query += " WHERE category = ?"
		args = append(args, string(*category))
	}
	// created_at is fixed-width UTC, so text order is time order
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.MediaAsset
	for rows.Next() {
		asset, err := scanMediaAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (s *Store) DeleteMediaAsset(id string) error {
	res, err := s.db.Exec("DELETE FROM media_assets WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("media asset %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
