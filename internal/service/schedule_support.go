package service

import (
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx/types"

	"github.com/sica-labs/sica-api/internal/schedule"
	appErrors "github.com/sica-labs/sica-api/pkg/errors"
)

// translateScheduleError maps engine errors onto the API error taxonomy while
// keeping the original error in the chain for callers that inspect it.
func translateScheduleError(err error, fallback string) error {
	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflict.Error())
	}
	var badRange *schedule.InvalidRangeError
	if errors.As(err, &badRange) {
		return appErrors.Wrap(err, appErrors.ErrInvalidRange.Code, appErrors.ErrInvalidRange.Status, badRange.Error())
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallback)
}

func parseDays(raw []string) ([]schedule.Weekday, error) {
	days := make([]schedule.Weekday, 0, len(raw))
	seen := make(map[schedule.Weekday]bool, len(raw))
	for _, value := range raw {
		day, ok := schedule.ParseWeekday(value)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+value)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days, nil
}

func metadataToJSON(metadata map[string]string) (types.JSONText, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid metadata")
	}
	return types.JSONText(raw), nil
}

func metadataFromJSON(raw types.JSONText) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var metadata map[string]string
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	return metadata
}
