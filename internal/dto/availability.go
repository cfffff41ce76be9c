package dto

// CarAvailabilityResponse answers "is this car free for [start, end]?".
type CarAvailabilityResponse struct {
	CarID     int64  `json:"carID"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Available bool   `json:"available"`
}

// AvailableCarsResponse lists the cars free for [start, end].
type AvailableCarsResponse struct {
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Category  string        `json:"category,omitempty"`
	Cars      []CarResponse `json:"cars"`
}
