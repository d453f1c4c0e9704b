package dto

import "github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"

type CandidateRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type CandidateData struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type RegisterCandidateResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    CandidateData `json:"data"`
}

type CandidateListResponse struct {
	Success    bool               `json:"success"`
	Count      int64              `json:"count"`
	Candidates []models.Candidate `json:"candidates"`
}

// ErrorResponse is the body of every non-2xx API response. Details carries a
// short operator hint on 5xx and never raw store output.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	DB              string `json:"db"`
	StoreConfigured bool   `json:"store_configured"`
}
