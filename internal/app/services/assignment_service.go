package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/metrics"
)

// DefaultBatchSize is the number of students CreateAreaAndAssign hands out per call
const DefaultBatchSize = 10

// AreaInput describes the area to create
type AreaInput struct {
	Name        string
	Description string
}

// AssignmentService binds students to supervisors within a zone. Every
// operation runs under the zone's lock in a single transaction.
type AssignmentService struct {
	zones     repositories.ZoneLocker
	batchSize int
	logger    zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(zones repositories.ZoneLocker, batchSize int, logger zerolog.Logger) *AssignmentService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &AssignmentService{zones: zones, batchSize: batchSize, logger: logger}
}

// CreateAreaAndAssign creates an area in the zone for the supervisor and
// assigns up to one batch of the zone's unassigned students to them.
func (s *AssignmentService) CreateAreaAndAssign(
	ctx context.Context,
	zoneID int64,
	in AreaInput,
	supervisorID int64,
	requestingUserID int64,
) (*dto.AreaAssignmentResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperrors.NewValidationError("area name is required")
	}

	var result *dto.AreaAssignmentResponse
	err := s.zones.InZone(ctx, zoneID, func(ctx context.Context, scope repositories.ZoneScope) error {
		zone, err := scope.Zones.GetByID(ctx, zoneID)
		if err != nil {
			return err
		}
		if !zone.IsLeader(requestingUserID) {
			return apperrors.ErrNotZoneLeader
		}

		supervisor, err := scope.Supervisors.GetByID(ctx, supervisorID)
		if err != nil {
			return err
		}
		if supervisor.ZoneID != zoneID {
			return apperrors.ErrSupervisorNotInZone
		}

		area := &models.Area{
			ZoneID:       zoneID,
			Name:         in.Name,
			Description:  in.Description,
			SupervisorID: &supervisor.ID,
		}
		if err := scope.Areas.Create(ctx, area); err != nil {
			return err
		}
		if err := scope.Supervisors.SetArea(ctx, supervisor.ID, area.ID); err != nil {
			return err
		}

		students, err := scope.Students.ListUnassignedInZone(ctx, zoneID, s.batchSize)
		if err != nil {
			return err
		}
		ids := studentIDs(students)
		if err := scope.Assignments.Assign(ctx, supervisor.ID, ids, &area.ID); err != nil {
			return err
		}

		result = &dto.AreaAssignmentResponse{
			Area:                 area,
			SupervisorID:         supervisor.ID,
			AssignedStudentIDs:   ids,
			AssignedStudentCount: len(ids),
		}
		return nil
	})
	metrics.AssignmentOps.WithLabelValues("create_area", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	metrics.StudentsAssigned.WithLabelValues("create_area").Add(float64(result.AssignedStudentCount))
	s.logger.Info().
		Int64("zoneID", zoneID).
		Int64("areaID", result.Area.ID).
		Int64("supervisorID", supervisorID).
		Int("assigned", result.AssignedStudentCount).
		Msg("Area created and students assigned")
	return result, nil
}

// BalanceWorkload redistributes every student of the zone evenly across the
// zone's supervisors, replacing existing assignments. Supervisors and students
// are taken in id order so the result is deterministic.
func (s *AssignmentService) BalanceWorkload(ctx context.Context, zoneID int64) (*dto.BalanceResponse, error) {
	var result *dto.BalanceResponse
	err := s.zones.InZone(ctx, zoneID, func(ctx context.Context, scope repositories.ZoneScope) error {
		if _, err := scope.Zones.GetByID(ctx, zoneID); err != nil {
			return err
		}

		supervisors, err := scope.Supervisors.ListByZone(ctx, zoneID)
		if err != nil {
			return err
		}
		students, err := scope.Students.ListByZone(ctx, zoneID)
		if err != nil {
			return err
		}

		parts, err := PartitionEvenly(studentIDs(students), len(supervisors))
		if err != nil {
			return fmt.Errorf("zone %d: %w", zoneID, err)
		}

		if err := scope.Assignments.ClearZone(ctx, zoneID); err != nil {
			return err
		}

		result = &dto.BalanceResponse{
			ZoneID:        zoneID,
			TotalStudents: len(students),
			Supervisors:   len(supervisors),
			Allocations:   make([]dto.SupervisorAllocation, len(supervisors)),
		}
		for i, sup := range supervisors {
			if err := scope.Assignments.Assign(ctx, sup.ID, parts[i], nil); err != nil {
				return err
			}
			result.Allocations[i] = dto.SupervisorAllocation{
				SupervisorID: sup.ID,
				StudentIDs:   parts[i],
				Count:        len(parts[i]),
			}
		}
		return nil
	})
	metrics.AssignmentOps.WithLabelValues("balance", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	metrics.StudentsAssigned.WithLabelValues("balance").Add(float64(result.TotalStudents))
	s.logger.Info().
		Int64("zoneID", zoneID).
		Int("students", result.TotalStudents).
		Int("supervisors", result.Supervisors).
		Msg("Zone workload balanced")
	return result, nil
}

func studentIDs(students []*models.Student) []int64 {
	ids := make([]int64, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	return ids
}
