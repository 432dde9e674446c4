package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/storage"
)

const mediaColumns = "id, category, title, video_playback_id, video_url, audio_url, active, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaAsset(row rowScanner) (models.MediaAsset, error) {
	var (
		asset    models.MediaAsset
		category string
	)
	if err := row.Scan(&asset.ID, &category, &asset.Title, &asset.VideoPlaybackID, &asset.VideoURL, &asset.AudioURL, &asset.Active, &asset.CreatedAt); err != nil {
		return models.MediaAsset{}, err
	}
	asset.Category = models.Category(category)
	asset.CreatedAt = asset.CreatedAt.UTC()
	return asset, nil
}

func (s *Store) AddMediaAsset(asset models.MediaAsset) error {
	asset, err := storage.PrepareMediaAsset(asset)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO media_assets ("+mediaColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		asset.ID, string(asset.Category), asset.Title, asset.VideoPlaybackID, asset.VideoURL, asset.AudioURL,
		asset.Active, asset.CreatedAt,
	)
	return err
}

func (s *Store) GetMediaAsset(id string) (models.MediaAsset, error) {
	row := s.db.QueryRow("SELECT "+mediaColumns+" FROM media_assets WHERE id = $1", id)
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
		query += " WHERE category = $1"
		args = append(args, string(*category))
	}
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
	res, err := s.db.Exec("DELETE FROM media_assets WHERE id = $1", id)
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
