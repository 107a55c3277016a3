package models

import "time"

// Supervisor is a school supervisor bound to a zone and optionally to one area
type Supervisor struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	UserID    int64     `json:"userId" db:"user_id" example:"3"`
	ZoneID    int64     `json:"zoneId" db:"zone_id" example:"1"`
	AreaID    *int64    `json:"areaId,omitempty" db:"area_id"`
	Position  string    `json:"position" db:"position" example:"Lecturer"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// AssignedStudents holds student ids in assignment order
	AssignedStudents []int64 `json:"assignedStudents"`

	User *User `json:"user,omitempty"`
}

// Assignment links a supervisor to a student
type Assignment struct {
	SupervisorID int64 `json:"supervisorId"`
	StudentID    int64 `json:"studentId"`
}
