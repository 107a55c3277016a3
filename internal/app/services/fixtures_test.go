package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/supervision/internal/app/models"
)

// fixture builds zones, supervisors and students directly in a memStore
type fixture struct {
	t     *testing.T
	store *memStore
	ctx   context.Context
	n     int
}

func (f *fixture) seq() int {
	f.n++
	return f.n
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, store: newMemStore(), ctx: context.Background()}
}

func (f *fixture) user(email string, role models.Role) *models.User {
	f.t.Helper()
	u := &models.User{Email: email, Role: role, FirstName: "Test", LastName: email, IsActive: true}
	require.NoError(f.t, memUsers{f.store}.Create(f.ctx, u))
	return u
}

func (f *fixture) zone(name string, leader *models.User) *models.Zone {
	f.t.Helper()
	z := &models.Zone{Name: name}
	if leader != nil {
		z.LeaderUserID = &leader.ID
	}
	require.NoError(f.t, memZones{f.store}.Create(f.ctx, z))
	return z
}

func (f *fixture) supervisor(zoneID int64) *models.Supervisor {
	f.t.Helper()
	u := f.user(fmt.Sprintf("supervisor%d@school.test", f.seq()), models.RoleSupervisorSchool)
	s := &models.Supervisor{UserID: u.ID, ZoneID: zoneID, Position: "Lecturer"}
	require.NoError(f.t, memSupervisors{f.store}.Create(f.ctx, s))
	return s
}

func (f *fixture) students(zoneID int64, n int) []*models.Student {
	f.t.Helper()
	out := make([]*models.Student, n)
	for i := range out {
		u := f.user(fmt.Sprintf("student%d@school.test", f.seq()), models.RoleStudent)
		st := &models.Student{UserID: u.ID, ZoneID: zoneID, RegistrationNumber: "REG"}
		require.NoError(f.t, memStudents{f.store}.Create(f.ctx, st))
		out[i] = st
	}
	return out
}

func (f *fixture) assignments() *AssignmentService {
	return NewAssignmentService(f.store, DefaultBatchSize, zerolog.Nop())
}

// checkBidirectional asserts that supervisor lists and student back references agree
func (f *fixture) checkBidirectional() {
	f.t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	owner := map[int64]int64{}
	for _, sup := range f.store.supervisors {
		for _, id := range sup.AssignedStudents {
			_, dup := owner[id]
			require.False(f.t, dup, "student %d listed by two supervisors", id)
			owner[id] = sup.ID
			st := f.store.students[id]
			require.NotNil(f.t, st.AssignedSupervisorID, "student %d has no back reference", id)
			require.Equal(f.t, sup.ID, *st.AssignedSupervisorID)
		}
	}
	for _, st := range f.store.students {
		if st.AssignedSupervisorID != nil {
			require.Equal(f.t, *st.AssignedSupervisorID, owner[st.ID], "student %d back reference not listed", st.ID)
		}
	}
}
