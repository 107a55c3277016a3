package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

func TestZoneService(t *testing.T) {
	f := newFixture(t)
	leader := f.user("leader@school.test", models.RoleSupervisorSchool)
	zone := f.zone("Accra", leader)
	sup := f.supervisor(zone.ID)
	f.students(zone.ID, 3)
	svc := NewZoneService(memZones{f.store}, memAreas{f.store}, memSupervisors{f.store})

	assert.NoError(t, svc.RequireLeader(f.ctx, zone.ID, leader.ID))
	assert.ErrorIs(t, svc.RequireLeader(f.ctx, zone.ID, sup.UserID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.RequireLeader(f.ctx, 9999, leader.ID), apperrors.ErrResourceNotFound)

	_, err := f.assignments().CreateAreaAndAssign(f.ctx, zone.ID, AreaInput{Name: "Tema"}, sup.ID, leader.ID)
	require.NoError(t, err)

	res, err := svc.GetZoneAssignments(f.ctx, zone.ID)
	require.NoError(t, err)
	assert.Equal(t, zone.ID, res.Zone.ID)
	require.Len(t, res.Areas, 1)
	assert.Equal(t, "Tema", res.Areas[0].Name)
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, 3, res.Allocations[0].Count)
}
