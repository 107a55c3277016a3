package services

import (
	"context"

	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// ZoneService answers zone directory queries
type ZoneService struct {
	zones       repositories.IZoneRepository
	areas       repositories.IAreaRepository
	supervisors repositories.ISupervisorRepository
}

// NewZoneService creates a new ZoneService
func NewZoneService(
	zones repositories.IZoneRepository,
	areas repositories.IAreaRepository,
	supervisors repositories.ISupervisorRepository,
) *ZoneService {
	return &ZoneService{zones: zones, areas: areas, supervisors: supervisors}
}

// RequireLeader fails with a forbidden error unless userID leads the zone
func (s *ZoneService) RequireLeader(ctx context.Context, zoneID, userID int64) error {
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if !zone.IsLeader(userID) {
		return apperrors.ErrNotZoneLeader
	}
	return nil
}

// GetZoneAssignments returns the zone with its areas and current allocations
func (s *ZoneService) GetZoneAssignments(ctx context.Context, zoneID int64) (*dto.ZoneResponse, error) {
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	areas, err := s.areas.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	supervisors, err := s.supervisors.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	allocations := make([]dto.SupervisorAllocation, len(supervisors))
	for i, sup := range supervisors {
		allocations[i] = dto.SupervisorAllocation{
			SupervisorID: sup.ID,
			StudentIDs:   sup.AssignedStudents,
			Count:        len(sup.AssignedStudents),
		}
	}

	return &dto.ZoneResponse{Zone: zone, Areas: areas, Allocations: allocations}, nil
}
