package postgres

import (
	"fmt"

	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/storage"
)

func (s *Store) GetTimetable() ([]models.ActivitySlot, error) {
	rows, err := s.db.Query("SELECT id, start_minutes, label, type FROM timetable_slots ORDER BY start_minutes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.ActivitySlot
	for rows.Next() {
		var (
			slot    models.ActivitySlot
			minutes int
			kind    string
		)
		if err := rows.Scan(&slot.ID, &minutes, &slot.Label, &kind); err != nil {
			return nil, err
		}
		slot.Start = models.NewTimeOfDay(minutes/60, minutes%60)
		slot.Type = models.ActivityType(kind)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *Store) ReplaceTimetable(slots []models.ActivitySlot) error {
	prepared, err := storage.PrepareTimetable(slots)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM timetable_slots"); err != nil {
		return fmt.Errorf("clearing timetable: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO timetable_slots (id, position, start_minutes, label, type) VALUES ($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, slot := range prepared {
		if _, err := stmt.Exec(slot.ID, i, slot.Start.Minutes(), slot.Label, string(slot.Type)); err != nil {
			return fmt.Errorf("inserting slot %s: %w", slot.Start, err)
		}
	}

	return tx.Commit()
}
