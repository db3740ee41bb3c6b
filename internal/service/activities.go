package service

import (
	"context"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetActivities returns the full audit log.
func (s *Service) GetActivities(ctx context.Context) ([]model.Activity, error) {
	rows, err := s.api.GetRange(ctx, codec.ActivitiesRange)
	if err != nil {
		return nil, s.translate(err, "activities")
	}
	return codec.DecodeActivities(rows), nil
}

// recordActivity appends an audit entry for a mutation. It is best-effort:
// a failure here must never fail the primary operation, so errors are
// logged and swallowed.
func (s *Service) recordActivity(ctx context.Context, activityType model.ActivityType, description, entityID, entityName, userName string) {
	activity := model.Activity{
		ID:          model.NewActivityID(s.now()),
		Timestamp:   s.timestamp(),
		Type:        activityType,
		Description: description,
		EntityID:    entityID,
		EntityName:  entityName,
		UserName:    userName,
	}

	if err := s.api.AppendRows(ctx, codec.ActivitiesRange, [][]string{codec.EncodeActivity(activity)}); err != nil {
		s.logger.Warn("failed to record activity",
			"type", string(activityType),
			"entity_id", entityID,
			"error", err)
	}
}
