package repositories

import (
	"context"
	"time"

	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/pkg/geo"
)

// IUserRepository defines user account persistence
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateName(ctx context.Context, id int64, firstName, lastName string) error
	Delete(ctx context.Context, id int64) error
}

// IAppCredentialRepository defines client application credential persistence
type IAppCredentialRepository interface {
	Create(ctx context.Context, cred *models.AppCredential) error
	GetByAppID(ctx context.Context, appID string) (*models.AppCredential, error)
	TouchLastUsed(ctx context.Context, id int64, at time.Time) error
}

// ITokenBlacklistRepository defines the revoked token list
type ITokenBlacklistRepository interface {
	Add(ctx context.Context, entry models.BlacklistedToken) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// IZoneRepository defines zone lookups
type IZoneRepository interface {
	Create(ctx context.Context, zone *models.Zone) error
	GetByID(ctx context.Context, id int64) (*models.Zone, error)
}

// IAreaRepository defines area persistence
type IAreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	ListByZone(ctx context.Context, zoneID int64) ([]*models.Area, error)
}

// ISupervisorRepository defines supervisor persistence. Returned supervisors
// carry their assigned student ids in assignment order.
type ISupervisorRepository interface {
	Create(ctx context.Context, supervisor *models.Supervisor) error
	GetByID(ctx context.Context, id int64) (*models.Supervisor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Supervisor, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*models.Supervisor, error)
	SetArea(ctx context.Context, supervisorID, areaID int64) error
	UpdatePosition(ctx context.Context, supervisorID int64, position string) error
	// Delete removes the profile, its assignment rows and the students' back references
	Delete(ctx context.Context, supervisorID int64) error
}

// IStudentRepository defines student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Student, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*models.Student, error)
	ListUnassignedInZone(ctx context.Context, zoneID int64, limit int) ([]*models.Student, error)
	UpdateLocation(ctx context.Context, studentID int64, loc geo.Coordinate, at time.Time) error
}

// IAssignmentRepository maintains both sides of the supervisor/student link
type IAssignmentRepository interface {
	// Assign appends studentIDs to the supervisor's list and points each
	// student back at the supervisor. A non-nil areaID is also stamped on the students.
	Assign(ctx context.Context, supervisorID int64, studentIDs []int64, areaID *int64) error
	// ClearZone removes every assignment held by students of the zone.
	ClearZone(ctx context.Context, zoneID int64) error
	ListStudentIDs(ctx context.Context, supervisorID int64) ([]int64, error)
}

// IInternshipRepository defines internship and application lookups
type IInternshipRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	CreateInternship(ctx context.Context, internship *models.Internship) error
	CreateApplication(ctx context.Context, app *models.Application) error
	// GetActiveApplication returns the student's most recent accepted
	// application with its internship and company populated.
	GetActiveApplication(ctx context.Context, studentID int64) (*models.Application, error)
}

// ISupervisionRepository defines visit and evaluation lookups
type ISupervisionRepository interface {
	CreateVisit(ctx context.Context, visit *models.VisitLocation) error
	GetVisit(ctx context.Context, id int64) (*models.VisitLocation, error)
	ListVisitsBySupervisor(ctx context.Context, supervisorID int64) ([]*models.VisitLocation, error)
	UpdateVisit(ctx context.Context, visit *models.VisitLocation) error
	DeleteVisit(ctx context.Context, id int64) error
	CreateEvaluation(ctx context.Context, eval *models.Evaluation) error
	// LatestCompletedVisit returns nil when no completed visit exists
	LatestCompletedVisit(ctx context.Context, studentID, internshipID int64) (*models.VisitLocation, error)
	// LatestEvaluation returns nil when no evaluation exists
	LatestEvaluation(ctx context.Context, supervisorID, applicationID int64) (*models.Evaluation, error)
	CountEvaluationsBySupervisor(ctx context.Context, supervisorID int64) (int, error)
}

// ZoneScope groups the repositories a zone-wide write goes through.
// Inside InZone every member shares one transaction.
type ZoneScope struct {
	Zones       IZoneRepository
	Areas       IAreaRepository
	Supervisors ISupervisorRepository
	Students    IStudentRepository
	Assignments IAssignmentRepository
	Users       IUserRepository
}

// ZoneLocker runs fn atomically with exclusive access to a zone's assignments
type ZoneLocker interface {
	InZone(ctx context.Context, zoneID int64, fn func(ctx context.Context, scope ZoneScope) error) error
}
