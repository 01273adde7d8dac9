package pg

import (
	"database/sql"
	"errors"

	internal_errors "github.com/hanzawa-dev/gobbs/internal/errors"
)

// ActiveSetting returns the value for key when an active row exists.
// Inactive or missing keys yield errors.NotFound; callers supply defaults.
func (s *Storage) ActiveSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
	SELECT setting_value
	FROM settings
	WHERE setting_key = $1 AND active_flag`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", internal_errors.NotFound
		}
		return "", err
	}
	return value, nil
}
