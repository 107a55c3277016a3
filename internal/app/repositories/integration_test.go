//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yigit/supervision/internal/app/migrations"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("supervision"),
		postgres.WithUsername("supervision"),
		postgres.WithPassword("supervision"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := db.Connect(ctx, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, migrations.NewMigrator(database.Pool).Up(ctx))
	return database.Pool
}

type seeded struct {
	zone        *models.Zone
	leader      *models.User
	supervisors []*models.Supervisor
	students    []*models.Student
}

func seedZone(t *testing.T, ctx context.Context, repos *repositories.Repositories, supervisors, students int) seeded {
	t.Helper()
	s := seeded{}

	s.leader = &models.User{Email: "leader@school.edu", PasswordHash: "x", Role: models.RoleSupervisorSchool, IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, s.leader))

	s.zone = &models.Zone{Name: "Greater Accra", LeaderUserID: &s.leader.ID}
	require.NoError(t, repos.ZoneRepository.Create(ctx, s.zone))

	for i := 0; i < supervisors; i++ {
		u := &models.User{Email: fmt.Sprintf("supervisor%d@school.edu", i), PasswordHash: "x", Role: models.RoleSupervisorSchool, IsActive: true}
		require.NoError(t, repos.UserRepository.Create(ctx, u))
		sup := &models.Supervisor{UserID: u.ID, ZoneID: s.zone.ID}
		require.NoError(t, repos.SupervisorRepository.Create(ctx, sup))
		s.supervisors = append(s.supervisors, sup)
	}
	for i := 0; i < students; i++ {
		u := &models.User{Email: fmt.Sprintf("student%d@school.edu", i), PasswordHash: "x", Role: models.RoleStudent, IsActive: true}
		require.NoError(t, repos.UserRepository.Create(ctx, u))
		st := &models.Student{UserID: u.ID, RegistrationNumber: fmt.Sprintf("IT-%04d", i), ZoneID: s.zone.ID}
		require.NoError(t, repos.StudentRepository.Create(ctx, st))
		s.students = append(s.students, st)
	}
	return s
}

func TestAssignmentAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repos := repositories.NewRepositories(pool)
	s := seedZone(t, ctx, repos, 3, 25)

	svc := services.NewAssignmentService(repositories.NewTxManager(pool), 10, zerolog.Nop())

	t.Run("create area assigns one batch", func(t *testing.T) {
		res, err := svc.CreateAreaAndAssign(ctx, s.zone.ID, services.AreaInput{Name: "Tema"}, s.supervisors[0].ID, s.leader.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, res.AssignedStudentCount)

		ids, err := repos.AssignmentRepository.ListStudentIDs(ctx, s.supervisors[0].ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, res.AssignedStudentIDs, ids)

		for _, id := range ids {
			st, err := repos.StudentRepository.GetByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, st.AssignedSupervisorID)
			assert.Equal(t, s.supervisors[0].ID, *st.AssignedSupervisorID)
			require.NotNil(t, st.AreaID)
			assert.Equal(t, res.Area.ID, *st.AreaID)
		}
	})

	t.Run("duplicate area name conflicts and rolls back", func(t *testing.T) {
		_, err := svc.CreateAreaAndAssign(ctx, s.zone.ID, services.AreaInput{Name: "Tema"}, s.supervisors[1].ID, s.leader.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists), "got %v", err)

		ids, err := repos.AssignmentRepository.ListStudentIDs(ctx, s.supervisors[1].ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("balance partitions evenly", func(t *testing.T) {
		res, err := svc.BalanceWorkload(ctx, s.zone.ID)
		require.NoError(t, err)
		require.Len(t, res.Allocations, 3)

		seen := map[int64]bool{}
		for i, a := range res.Allocations {
			assert.Equal(t, []int{9, 8, 8}[i], a.Count)
			for _, id := range a.StudentIDs {
				assert.False(t, seen[id], "student %d assigned twice", id)
				seen[id] = true
			}
		}
		assert.Len(t, seen, 25)
	})
}

func TestConcurrentAreaCreationDoesNotOverlap(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repos := repositories.NewRepositories(pool)
	s := seedZone(t, ctx, repos, 4, 25)

	svc := services.NewAssignmentService(repositories.NewTxManager(pool), 10, zerolog.Nop())

	var wg sync.WaitGroup
	for i, sup := range s.supervisors {
		wg.Add(1)
		go func(i int, supervisorID int64) {
			defer wg.Done()
			_, err := svc.CreateAreaAndAssign(ctx, s.zone.ID, services.AreaInput{Name: fmt.Sprintf("Area %d", i)}, supervisorID, s.leader.ID)
			assert.NoError(t, err)
		}(i, sup.ID)
	}
	wg.Wait()

	seen := map[int64]bool{}
	total := 0
	for _, sup := range s.supervisors {
		ids, err := repos.AssignmentRepository.ListStudentIDs(ctx, sup.ID)
		require.NoError(t, err)
		total += len(ids)
		for _, id := range ids {
			assert.False(t, seen[id], "student %d assigned twice", id)
			seen[id] = true
		}
	}
	assert.Equal(t, 25, total)
}

func TestDeleteSupervisorAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repos := repositories.NewRepositories(pool)
	s := seedZone(t, ctx, repos, 2, 6)

	tx := repositories.NewTxManager(pool)
	assignments := services.NewAssignmentService(tx, 10, zerolog.Nop())
	res, err := assignments.CreateAreaAndAssign(ctx, s.zone.ID, services.AreaInput{Name: "Tema"}, s.supervisors[0].ID, s.leader.ID)
	require.NoError(t, err)
	require.Equal(t, 6, res.AssignedStudentCount)

	gone := s.supervisors[0]
	svc := services.NewSupervisorService(tx, repos.SupervisorRepository, repos.UserRepository, zerolog.Nop())
	require.NoError(t, svc.Delete(ctx, gone.ID))

	_, err = repos.SupervisorRepository.GetByID(ctx, gone.ID)
	assert.ErrorIs(t, err, apperrors.ErrSupervisorNotFound)
	_, err = repos.UserRepository.GetByID(ctx, gone.UserID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	for _, st := range s.students {
		got, err := repos.StudentRepository.GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Nil(t, got.AssignedSupervisorID, "student %d still references the deleted supervisor", st.ID)
	}

	areas, err := repos.AreaRepository.ListByZone(ctx, s.zone.ID)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Nil(t, areas[0].SupervisorID)

	bal, err := assignments.BalanceWorkload(ctx, s.zone.ID)
	require.NoError(t, err)
	require.Len(t, bal.Allocations, 1)
	assert.Equal(t, s.supervisors[1].ID, bal.Allocations[0].SupervisorID)
	assert.Equal(t, 6, bal.Allocations[0].Count)
}

func TestVisitRepositoryAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repos := repositories.NewRepositories(pool)
	s := seedZone(t, ctx, repos, 1, 1)

	company := &models.Company{Name: "Tema Oil Refinery"}
	require.NoError(t, repos.InternshipRepository.CreateCompany(ctx, company))
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	internship := &models.Internship{CompanyID: company.ID, Title: "Process intern", StartDate: start, EndDate: start.AddDate(0, 3, 0)}
	require.NoError(t, repos.InternshipRepository.CreateInternship(ctx, internship))

	visit := &models.VisitLocation{
		SupervisorID: s.supervisors[0].ID,
		StudentID:    s.students[0].ID,
		InternshipID: internship.ID,
		CompanyID:    company.ID,
		VisitDate:    start.AddDate(0, 1, 0),
	}
	require.NoError(t, repos.SupervisionRepository.CreateVisit(ctx, visit))
	assert.Equal(t, models.VisitPending, visit.Status)

	visit.Status = models.VisitCompleted
	require.NoError(t, repos.SupervisionRepository.UpdateVisit(ctx, visit))

	got, err := repos.SupervisionRepository.GetVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCompleted, got.Status)

	latest, err := repos.SupervisionRepository.LatestCompletedVisit(ctx, s.students[0].ID, internship.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, visit.ID, latest.ID)

	list, err := repos.SupervisionRepository.ListVisitsBySupervisor(ctx, s.supervisors[0].ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repos.SupervisionRepository.DeleteVisit(ctx, visit.ID))
	_, err = repos.SupervisionRepository.GetVisit(ctx, visit.ID)
	assert.ErrorIs(t, err, apperrors.ErrVisitNotFound)
	assert.ErrorIs(t, repos.SupervisionRepository.DeleteVisit(ctx, visit.ID), apperrors.ErrVisitNotFound)
}
