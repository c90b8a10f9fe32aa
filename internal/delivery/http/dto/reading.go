package dto

type ReadingRequest struct {
	Name        string `json:"name"`
	DOB         string `json:"dob"`
	UnlockToken string `json:"unlock_token"`
}

type FreeReportRequest struct {
	DOB string `json:"dob"`
}
