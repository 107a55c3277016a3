package models

import (
	"time"

	"github.com/yigit/supervision/internal/pkg/geo"
)

// Company hosts internships at a physical address
type Company struct {
	ID        int64     `json:"id" db:"id"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Latitude  *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64  `json:"longitude,omitempty" db:"longitude"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Location returns the company's coordinate, or nil when it is not recorded
func (c *Company) Location() *geo.Coordinate {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &geo.Coordinate{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

// Internship is a placement offered by a company
type Internship struct {
	ID        int64     `json:"id" db:"id"`
	CompanyID int64     `json:"companyId" db:"company_id"`
	Title     string    `json:"title" db:"title"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`

	Company *Company `json:"company,omitempty"`
}

// ApplicationStatus tracks a student's application to an internship
type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "Applied"
	ApplicationAccepted  ApplicationStatus = "Accepted"
	ApplicationRejected  ApplicationStatus = "Rejected"
	ApplicationWithdrawn ApplicationStatus = "Withdrawn"
)

// Application links a student to an internship
type Application struct {
	ID           int64             `json:"id" db:"id"`
	StudentID    int64             `json:"studentId" db:"student_id"`
	InternshipID int64             `json:"internshipId" db:"internship_id"`
	Status       ApplicationStatus `json:"status" db:"status"`
	AppliedAt    time.Time         `json:"appliedAt" db:"applied_at"`

	Internship *Internship `json:"internship,omitempty"`
}

// IsActive reports whether the application makes its internship the student's current one
func (a *Application) IsActive() bool {
	return a != nil && a.Status == ApplicationAccepted
}
