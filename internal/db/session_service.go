package db

import (
	"context"

	"github.com/balkashynov/workclock/internal/models"
)

// Durations inside [DefaultNoiseLow, DefaultNoiseHigh] are accidental start/stop clicks
const (
	DefaultNoiseLow  int64 = -120
	DefaultNoiseHigh int64 = 120
)

// Insert stores a new session and returns it with its assigned ID
func (s *Store) Insert(ctx context.Context, in models.WorkSessionInput) (*models.WorkSession, error) {
	row := models.WorkSession{
		Start:    in.Start,
		Duration: in.Duration,
		Notes:    in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storageErr("insert", err)
	}
	return &row, nil
}

// QuerySince returns sessions that started strictly after ts, oldest first
func (s *Store) QuerySince(ctx context.Context, ts int64) ([]models.WorkSession, error) {
	var rows []models.WorkSession
	err := s.db.WithContext(ctx).
		Where("start > ?", ts).
		Order("start ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("query since", err)
	}
	return rows, nil
}

// QueryUntil returns sessions that started strictly before ts, oldest first
func (s *Store) QueryUntil(ctx context.Context, ts int64) ([]models.WorkSession, error) {
	var rows []models.WorkSession
	err := s.db.WithContext(ctx).
		Where("start < ?", ts).
		Order("start ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("query until", err)
	}
	return rows, nil
}

// SumDurationUntil adds up the durations of sessions that started before ts
func (s *Store) SumDurationUntil(ctx context.Context, ts int64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkSession{}).
		Where("start < ?", ts).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, storageErr("sum", err)
	}
	return total, nil
}

// HasSessionsBefore reports whether any session started before ts
func (s *Store) HasSessionsBefore(ctx context.Context, ts int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkSession{}).
		Where("start < ?", ts).
		Count(&n).Error
	if err != nil {
		return false, storageErr("count", err)
	}
	return n > 0, nil
}

// Exists reports whether a session with exactly these fields is already stored
func (s *Store) Exists(ctx context.Context, in models.WorkSessionInput) (bool, error) {
	n, err := s.countMatching(ctx, in)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) countMatching(ctx context.Context, in models.WorkSessionInput) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkSession{}).
		Where("start = ? AND duration = ? AND notes = ?", in.Start, in.Duration, in.Notes).
		Count(&n).Error
	if err != nil {
		return 0, storageErr("exists", err)
	}
	return n, nil
}

// DeleteNoise removes every session with low <= duration <= high and returns how many went
func (s *Store) DeleteNoise(ctx context.Context, low, high int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("duration >= ? AND duration <= ?", low, high).
		Delete(&models.WorkSession{})
	if res.Error != nil {
		return 0, storageErr("delete noise", res.Error)
	}
	return res.RowsAffected, nil
}

// ExportAll returns every stored session, oldest first
func (s *Store) ExportAll(ctx context.Context) ([]models.WorkSession, error) {
	var rows []models.WorkSession
	if err := s.db.WithContext(ctx).Order("start ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, storageErr("export", err)
	}
	return rows, nil
}

// BulkImport inserts sessions one at a time. With dedup, candidates are matched on all
// three fields against the rows stored before the batch: if k identical rows were already
// there, the first k identical candidates are skipped and the rest inserted.
// A storage failure stops the batch and returns the number inserted before it.
func (s *Store) BulkImport(ctx context.Context, sessions []models.WorkSessionInput, dedup bool) (int, error) {
	inserted := 0
	// remaining pre-existing matches per candidate, counted before its first insert
	existing := make(map[models.WorkSessionInput]int64)
	for _, in := range sessions {
		if dedup {
			left, seen := existing[in]
			if !seen {
				n, err := s.countMatching(ctx, in)
				if err != nil {
					return inserted, err
				}
				left = n
			}
			if left > 0 {
				existing[in] = left - 1
				continue
			}
			existing[in] = 0
		}
		if _, err := s.Insert(ctx, in); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
