package store

import (
	"database/sql"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/config"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/model"
)

// GetSetting returns the setting for key, or (nil, nil) when unset.
func (s *Store) GetSetting(key string) (*model.Setting, error) {
	if cache, ok := s.SettingCache.Load(key); ok {
		return cache.(*model.Setting), nil
	}

	setting := &model.Setting{}
	stmt := `
        SELECT key, value, updated_at FROM settings WHERE key = ?
    `
	if err := s.db.QueryRow(stmt, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get setting")
	}

	s.SettingCache.Store(setting.Key, setting)
	return setting, nil
}

func (s *Store) UpsertSetting(setting *model.Setting) (*model.Setting, error) {
	if setting.Key == "" {
		return nil, errors.Wrap(ErrInvalid, "key is required")
	}

	stmt := `
    INSERT INTO settings (
        key, value, updated_at
    )
    VALUES (?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT(key) DO UPDATE
    SET
        value = EXCLUDED.value,
        updated_at = EXCLUDED.updated_at
    RETURNING key, value, updated_at
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	newSetting := &model.Setting{}
	if err := s.db.QueryRow(stmt, setting.Key, setting.Value).Scan(
		&newSetting.Key,
		&newSetting.Value,
		&newSetting.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert/update setting")
	}

	s.SettingCache.Store(newSetting.Key, newSetting)
	return newSetting, nil
}

// YearlyGoal reads the "yearly_goal" setting, falling back to the configured
// default when the setting is unset or not a positive number.
func (s *Store) YearlyGoal() int {
	fallback := config.Opts.DefaultYearlyGoal

	setting, err := s.GetSetting(model.SettingKeyYearlyGoal)
	if err != nil {
		log.Warn("Failed to read yearly goal setting", zap.Error(err))
		return fallback
	}
	if setting == nil {
		return fallback
	}

	goal, err := strconv.Atoi(setting.Value)
	if err != nil || goal <= 0 {
		return fallback
	}
	return goal
}
