package service

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/types"
)

// ActivityService exposes the append-only audit trail to the office
// console
type ActivityService interface {
	ListActivity(ctx context.Context, filter *types.QueryFilter) (*dto.ListActivityResponse, error)
}

type activityService struct {
	activityLogRepo activitylog.Repository
	logger          *logger.Logger
}

func NewActivityService(activityLogRepo activitylog.Repository, logger *logger.Logger) ActivityService {
	return &activityService{activityLogRepo: activityLogRepo, logger: logger}
}

func (s *activityService) ListActivity(ctx context.Context, filter *types.QueryFilter) (*dto.ListActivityResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.activityLogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.activityLogRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
