package services

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/geo"
)

// memStore is an in-memory record store. InZone serializes callers and
// restores users and assignment state when fn fails, mirroring a rolled back transaction.
type memStore struct {
	mu     sync.Mutex
	zoneMu sync.Mutex
	nextID int64

	users       map[int64]*models.User
	creds       map[string]*models.AppCredential
	blacklist   map[string]models.BlacklistedToken
	zones       map[int64]*models.Zone
	areas       map[int64]*models.Area
	supervisors map[int64]*models.Supervisor
	students    map[int64]*models.Student
	companies   map[int64]*models.Company
	internships map[int64]*models.Internship
	apps        []*models.Application
	visits      []*models.VisitLocation
	evals       []*models.Evaluation

	// assignErr, when set, fails the next Assign call after it has written
	assignErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[int64]*models.User{},
		creds:       map[string]*models.AppCredential{},
		blacklist:   map[string]models.BlacklistedToken{},
		zones:       map[int64]*models.Zone{},
		areas:       map[int64]*models.Area{},
		supervisors: map[int64]*models.Supervisor{},
		students:    map[int64]*models.Student{},
		companies:   map[int64]*models.Company{},
		internships: map[int64]*models.Internship{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type snapshot struct {
	users       map[int64]models.User
	areas       map[int64]models.Area
	supervisors map[int64]models.Supervisor
	students    map[int64]models.Student
	visits      []models.VisitLocation
	evals       []models.Evaluation
}

func (m *memStore) snapshot() snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := snapshot{
		users:       map[int64]models.User{},
		areas:       map[int64]models.Area{},
		supervisors: map[int64]models.Supervisor{},
		students:    map[int64]models.Student{},
	}
	for id, u := range m.users {
		s.users[id] = *u
	}
	for id, a := range m.areas {
		s.areas[id] = *a
	}
	for id, sup := range m.supervisors {
		c := *sup
		c.AssignedStudents = slices.Clone(sup.AssignedStudents)
		s.supervisors[id] = c
	}
	for id, st := range m.students {
		s.students[id] = *st
	}
	for _, v := range m.visits {
		s.visits = append(s.visits, *v)
	}
	for _, e := range m.evals {
		s.evals = append(s.evals, *e)
	}
	return s
}

func (m *memStore) restore(s snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = map[int64]*models.User{}
	for id, u := range s.users {
		u := u
		m.users[id] = &u
	}
	m.areas = map[int64]*models.Area{}
	for id, a := range s.areas {
		a := a
		m.areas[id] = &a
	}
	m.supervisors = map[int64]*models.Supervisor{}
	for id, sup := range s.supervisors {
		sup := sup
		m.supervisors[id] = &sup
	}
	m.students = map[int64]*models.Student{}
	for id, st := range s.students {
		st := st
		m.students[id] = &st
	}
	m.visits = nil
	for _, v := range s.visits {
		v := v
		m.visits = append(m.visits, &v)
	}
	m.evals = nil
	for _, e := range s.evals {
		e := e
		m.evals = append(m.evals, &e)
	}
}

func (m *memStore) InZone(ctx context.Context, zoneID int64, fn func(ctx context.Context, scope repositories.ZoneScope) error) error {
	m.zoneMu.Lock()
	defer m.zoneMu.Unlock()

	snap := m.snapshot()
	if err := fn(ctx, m.scope()); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) scope() repositories.ZoneScope {
	return repositories.ZoneScope{
		Zones:       memZones{m},
		Areas:       memAreas{m},
		Supervisors: memSupervisors{m},
		Students:    memStudents{m},
		Assignments: memAssignments{m},
		Users:       memUsers{m},
	}
}

// --- users ---

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	u.ID = r.id()
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r memUsers) UpdateName(_ context.Context, id int64, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- app credentials ---

type memCreds struct{ *memStore }

func (r memCreds) Create(_ context.Context, c *models.AppCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	cp := *c
	r.creds[c.AppID] = &cp
	return nil
}

func (r memCreds) GetByAppID(_ context.Context, appID string) (*models.AppCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[appID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("app credential not found")
	}
	cp := *c
	return &cp, nil
}

func (r memCreds) TouchLastUsed(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.creds {
		if c.ID == id {
			c.LastUsed = &at
		}
	}
	return nil
}

// --- blacklist ---

type memBlacklist struct{ *memStore }

func (r memBlacklist) Add(_ context.Context, e models.BlacklistedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blacklist[e.Token]; !ok {
		r.blacklist[e.Token] = e
	}
	return nil
}

func (r memBlacklist) Exists(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.blacklist[token]
	return ok, nil
}

func (r memBlacklist) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for tok, e := range r.blacklist {
		if e.ExpiresAt.Before(now) {
			delete(r.blacklist, tok)
			n++
		}
	}
	return n, nil
}

// --- zones and areas ---

type memZones struct{ *memStore }

func (r memZones) Create(_ context.Context, z *models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	z.ID = r.id()
	c := *z
	r.zones[z.ID] = &c
	return nil
}

func (r memZones) GetByID(_ context.Context, id int64) (*models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	z, ok := r.zones[id]
	if !ok {
		return nil, apperrors.ErrZoneNotFound
	}
	c := *z
	return &c, nil
}

type memAreas struct{ *memStore }

func (r memAreas) Create(_ context.Context, a *models.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.areas {
		if existing.ZoneID == a.ZoneID && existing.Name == a.Name {
			return apperrors.NewConflictError("area with this name already exists in zone")
		}
	}
	a.ID = r.id()
	c := *a
	r.areas[a.ID] = &c
	return nil
}

func (r memAreas) ListByZone(_ context.Context, zoneID int64) ([]*models.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Area{}
	for _, a := range r.areas {
		if a.ZoneID == zoneID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- supervisors ---

type memSupervisors struct{ *memStore }

func copySupervisor(s *models.Supervisor) *models.Supervisor {
	c := *s
	c.AssignedStudents = slices.Clone(s.AssignedStudents)
	if c.AssignedStudents == nil {
		c.AssignedStudents = []int64{}
	}
	return &c
}

func (r memSupervisors) Create(_ context.Context, s *models.Supervisor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	s.AssignedStudents = []int64{}
	r.supervisors[s.ID] = copySupervisor(s)
	return nil
}

func (r memSupervisors) GetByID(_ context.Context, id int64) (*models.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.supervisors[id]
	if !ok {
		return nil, apperrors.ErrSupervisorNotFound
	}
	return copySupervisor(s), nil
}

func (r memSupervisors) GetByUserID(_ context.Context, userID int64) (*models.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.supervisors {
		if s.UserID == userID {
			return copySupervisor(s), nil
		}
	}
	return nil, apperrors.ErrSupervisorNotFound
}

func (r memSupervisors) ListByZone(_ context.Context, zoneID int64) ([]*models.Supervisor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Supervisor{}
	for _, s := range r.supervisors {
		if s.ZoneID == zoneID {
			out = append(out, copySupervisor(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSupervisors) SetArea(_ context.Context, supervisorID, areaID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.supervisors[supervisorID]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	s.AreaID = &areaID
	return nil
}

func (r memSupervisors) UpdatePosition(_ context.Context, supervisorID int64, position string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.supervisors[supervisorID]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	s.Position = position
	return nil
}

// Delete applies the same cascades as the schema
func (r memSupervisors) Delete(_ context.Context, supervisorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.supervisors[supervisorID]; !ok {
		return apperrors.ErrSupervisorNotFound
	}
	delete(r.supervisors, supervisorID)
	for _, st := range r.students {
		if st.AssignedSupervisorID != nil && *st.AssignedSupervisorID == supervisorID {
			st.AssignedSupervisorID = nil
		}
	}
	for _, a := range r.areas {
		if a.SupervisorID != nil && *a.SupervisorID == supervisorID {
			a.SupervisorID = nil
		}
	}
	r.visits = slices.DeleteFunc(r.visits, func(v *models.VisitLocation) bool { return v.SupervisorID == supervisorID })
	r.evals = slices.DeleteFunc(r.evals, func(e *models.Evaluation) bool { return e.SupervisorID == supervisorID })
	return nil
}

// --- students ---

type memStudents struct{ *memStore }

func (r memStudents) copy(s *models.Student) *models.Student {
	c := *s
	if u, ok := r.users[s.UserID]; ok {
		uc := *u
		c.User = &uc
	}
	return &c
}

func (r memStudents) Create(_ context.Context, s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	c := *s
	r.students[s.ID] = &c
	return nil
}

func (r memStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.copy(s), nil
}

func (r memStudents) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.UserID == userID {
			return r.copy(s), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r memStudents) filter(keep func(*models.Student) bool) []*models.Student {
	out := []*models.Student{}
	for _, s := range r.students {
		if keep(s) {
			out = append(out, r.copy(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memStudents) ListByIDs(_ context.Context, ids []int64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(s *models.Student) bool { return slices.Contains(ids, s.ID) }), nil
}

func (r memStudents) ListByZone(_ context.Context, zoneID int64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(s *models.Student) bool { return s.ZoneID == zoneID }), nil
}

func (r memStudents) ListUnassignedInZone(_ context.Context, zoneID int64, limit int) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filter(func(s *models.Student) bool {
		return s.ZoneID == zoneID && s.AreaID == nil && s.AssignedSupervisorID == nil
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memStudents) UpdateLocation(_ context.Context, studentID int64, loc geo.Coordinate, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.CurrentLocation = &loc
	s.LocationUpdatedAt = &at
	return nil
}

// --- assignments ---

type memAssignments struct{ *memStore }

func (r memAssignments) Assign(_ context.Context, supervisorID int64, studentIDs []int64, areaID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sup, ok := r.supervisors[supervisorID]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	for _, id := range studentIDs {
		st, ok := r.students[id]
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		sup.AssignedStudents = append(sup.AssignedStudents, id)
		st.AssignedSupervisorID = &supervisorID
		if areaID != nil {
			a := *areaID
			st.AreaID = &a
		}
	}
	if err := r.assignErr; err != nil {
		r.assignErr = nil
		return err
	}
	return nil
}

func (r memAssignments) ClearZone(_ context.Context, zoneID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.students {
		if st.ZoneID != zoneID || st.AssignedSupervisorID == nil {
			continue
		}
		if sup, ok := r.supervisors[*st.AssignedSupervisorID]; ok {
			sup.AssignedStudents = slices.DeleteFunc(sup.AssignedStudents, func(id int64) bool { return id == st.ID })
		}
		st.AssignedSupervisorID = nil
	}
	return nil
}

func (r memAssignments) ListStudentIDs(_ context.Context, supervisorID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sup, ok := r.supervisors[supervisorID]
	if !ok {
		return nil, apperrors.ErrSupervisorNotFound
	}
	return slices.Clone(sup.AssignedStudents), nil
}

// --- internships ---

type memInternships struct{ *memStore }

func (r memInternships) CreateCompany(_ context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r memInternships) CreateInternship(_ context.Context, in *models.Internship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	in.ID = r.id()
	cp := *in
	r.internships[in.ID] = &cp
	return nil
}

func (r memInternships) CreateApplication(_ context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	cp := *a
	r.apps = append(r.apps, &cp)
	return nil
}

func (r memInternships) GetActiveApplication(_ context.Context, studentID int64) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.apps) - 1; i >= 0; i-- {
		a := r.apps[i]
		if a.StudentID != studentID || !a.IsActive() {
			continue
		}
		cp := *a
		in := *r.internships[a.InternshipID]
		if c, ok := r.companies[in.CompanyID]; ok {
			cc := *c
			in.Company = &cc
		}
		cp.Internship = &in
		return &cp, nil
	}
	return nil, apperrors.ErrNoActiveInternship
}

// --- visits and evaluations ---

type memSupervision struct{ *memStore }

func (r memSupervision) CreateVisit(_ context.Context, v *models.VisitLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.Status == "" {
		v.Status = models.VisitPending
	}
	v.ID = r.id()
	cp := *v
	r.visits = append(r.visits, &cp)
	return nil
}

func (r memSupervision) GetVisit(_ context.Context, id int64) (*models.VisitLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.visits {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, apperrors.ErrVisitNotFound
}

func (r memSupervision) ListVisitsBySupervisor(_ context.Context, supervisorID int64) ([]*models.VisitLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.VisitLocation{}
	for _, v := range r.visits {
		if v.SupervisorID == supervisorID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VisitDate.Before(out[j].VisitDate) })
	return out, nil
}

func (r memSupervision) UpdateVisit(_ context.Context, v *models.VisitLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.visits {
		if existing.ID == v.ID {
			existing.VisitDate = v.VisitDate
			existing.Status = v.Status
			return nil
		}
	}
	return apperrors.ErrVisitNotFound
}

func (r memSupervision) DeleteVisit(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.visits)
	r.visits = slices.DeleteFunc(r.visits, func(v *models.VisitLocation) bool { return v.ID == id })
	if len(r.visits) == n {
		return apperrors.ErrVisitNotFound
	}
	return nil
}

func (r memSupervision) CreateEvaluation(_ context.Context, e *models.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	cp := *e
	r.evals = append(r.evals, &cp)
	return nil
}

func (r memSupervision) LatestCompletedVisit(_ context.Context, studentID, internshipID int64) (*models.VisitLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.VisitLocation
	for _, v := range r.visits {
		if v.StudentID == studentID && v.InternshipID == internshipID && v.Status == models.VisitCompleted {
			if latest == nil || !v.VisitDate.Before(latest.VisitDate) {
				latest = v
			}
		}
	}
	return latest, nil
}

func (r memSupervision) LatestEvaluation(_ context.Context, supervisorID, applicationID int64) (*models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Evaluation
	for _, e := range r.evals {
		if e.SupervisorID == supervisorID && e.ApplicationID == applicationID {
			latest = e
		}
	}
	return latest, nil
}

func (r memSupervision) CountEvaluationsBySupervisor(_ context.Context, supervisorID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.evals {
		if e.SupervisorID == supervisorID {
			n++
		}
	}
	return n, nil
}

var (
	_ repositories.IUserRepository           = memUsers{}
	_ repositories.IAppCredentialRepository  = memCreds{}
	_ repositories.ITokenBlacklistRepository = memBlacklist{}
	_ repositories.IZoneRepository           = memZones{}
	_ repositories.IAreaRepository           = memAreas{}
	_ repositories.ISupervisorRepository     = memSupervisors{}
	_ repositories.IStudentRepository        = memStudents{}
	_ repositories.IAssignmentRepository     = memAssignments{}
	_ repositories.IInternshipRepository     = memInternships{}
	_ repositories.ISupervisionRepository    = memSupervision{}
	_ repositories.ZoneLocker                = (*memStore)(nil)
)
