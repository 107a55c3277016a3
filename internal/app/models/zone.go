package models

import "time"

// Zone groups areas, supervisors and students
type Zone struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Greater Accra"`
	Description  string    `json:"description" db:"description"`
	LeaderUserID *int64    `json:"leaderUserId,omitempty" db:"leader_user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsLeader reports whether userID is the zone's designated leader
func (z *Zone) IsLeader(userID int64) bool {
	return z.LeaderUserID != nil && *z.LeaderUserID == userID
}

// Area is a subdivision of a zone handled by one supervisor
type Area struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	ZoneID       int64     `json:"zoneId" db:"zone_id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Tema North"`
	Description  string    `json:"description" db:"description"`
	SupervisorID *int64    `json:"supervisorId,omitempty" db:"supervisor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
