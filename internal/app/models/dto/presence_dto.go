package dto

import (
	"time"

	"github.com/yigit/supervision/internal/pkg/geo"
)

// PresenceCheckRequest compares two raw coordinates. Either side may be
// null; a missing coordinate is answered with within=false, not an error.
type PresenceCheckRequest struct {
	Student   *geo.Coordinate `json:"student"`
	Company   *geo.Coordinate `json:"company"`
	MaxMeters *float64        `json:"maxMeters,omitempty" binding:"omitempty,gte=0" example:"200"`
}

// PresenceResult reports whether a student is at the company
type PresenceResult struct {
	StudentID      int64    `json:"studentId,omitempty" example:"12"`
	CompanyID      int64    `json:"companyId,omitempty" example:"4"`
	Within         bool     `json:"within" example:"true"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty" example:"84.2"`
	MaxMeters      float64  `json:"maxMeters" example:"200"`
	Reason         string   `json:"reason,omitempty" example:"student location unknown"`
}

// UpdateLocationRequest records a student's current position
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90" example:"5.6037"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180" example:"-0.1870"`
}

// LocationResponse echoes a stored student location
type LocationResponse struct {
	StudentID int64          `json:"studentId" example:"12"`
	Location  geo.Coordinate `json:"location"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
