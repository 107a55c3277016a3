package models

import (
	"fmt"
	"time"
)

// VisitStatus is the state of a planned supervisor visit
type VisitStatus string

const (
	VisitPending   VisitStatus = "Pending"
	VisitCompleted VisitStatus = "Completed"
)

// ParseVisitStatus accepts the two stored status spellings
func ParseVisitStatus(s string) (VisitStatus, error) {
	switch st := VisitStatus(s); st {
	case VisitPending, VisitCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown visit status %q", s)
}

// CanMoveTo reports whether a visit may go from s to next. Visits only ever
// move forward; a completed visit stays completed.
func (s VisitStatus) CanMoveTo(next VisitStatus) bool {
	return s == next || (s == VisitPending && next == VisitCompleted)
}

// VisitLocation records a supervisor's visit to a student at a company
type VisitLocation struct {
	ID           int64       `json:"id" db:"id"`
	SupervisorID int64       `json:"supervisorId" db:"supervisor_id"`
	StudentID    int64       `json:"studentId" db:"student_id"`
	InternshipID int64       `json:"internshipId" db:"internship_id"`
	CompanyID    int64       `json:"companyId" db:"company_id"`
	VisitDate    time.Time   `json:"visitDate" db:"visit_date"`
	Status       VisitStatus `json:"status" db:"status"`
}

// Evaluation is a supervisor's assessment of an application
type Evaluation struct {
	ID             int64     `json:"id" db:"id"`
	SupervisorID   int64     `json:"supervisorId" db:"supervisor_id"`
	ApplicationID  int64     `json:"applicationId" db:"application_id"`
	EvaluationType string    `json:"evaluationType" db:"evaluation_type"`
	TotalScore     float64   `json:"totalScore" db:"total_score"`
	EvaluationDate time.Time `json:"evaluationDate" db:"evaluation_date"`
}
