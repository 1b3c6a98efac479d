package dto

// Candidate is null when the viewer has already seen everyone.
type CandidateResponse struct {
	Candidate *ProfileResponse `json:"candidate"`
}
