package models

// ProfileFilter represents filter parameters for querying profile rows
type ProfileFilter struct {
	Pattern   string  `form:"pattern"`
	RigSerial string  `form:"rigSerial"`
	HoleID    int64   `form:"holeId"`
	MinDepth  float64 `form:"minDepth"` // Meters
	MaxDepth  float64 `form:"maxDepth"` // Meters
	Page      int     `form:"page"`
	PageSize  int     `form:"pageSize"`
}

// CycleFilter represents filter parameters for querying cycle-time rows
type CycleFilter struct {
	Pattern   string `form:"pattern"`
	RigSerial string `form:"rigSerial"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// RunRequest represents the body of a pipeline run request
type RunRequest struct {
	Pattern   string `json:"pattern" binding:"required"`
	StartTime int64  `json:"startTime"` // Unix timestamp, 0 = unbounded
	EndTime   int64  `json:"endTime"`   // Unix timestamp, 0 = unbounded
}
