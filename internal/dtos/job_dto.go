package dtos

// JobRequest is the body of POST /jobs and PUT /jobs/{id}.
type JobRequest struct {
	Company  string `json:"company" binding:"required,min=2" msg:"Company name is required"`
	Position string `json:"position" binding:"required,min=2" msg:"Position is required"`

	// Optional Fields
	Email       string `json:"email,omitempty" binding:"omitempty,email" msg:"Enter a valid email"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=applied interviewing rejected offer" msg:"Status must be one of applied, interviewing, rejected, offer"`
	AppliedDate string `json:"applied_date,omitempty" binding:"omitempty,datetime=2006-01-02" msg:"Applied date must look like 2024-01-31"`
}

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required" msg:"Posting content is required"`
	URL     string `json:"url"`
}

// JobExtraction is what the LLM pulls out of a posting. It maps onto a
// JobRequest so the client can prefill the job form with it.
type JobExtraction struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

func (e JobExtraction) JobRequest() JobRequest {
	return JobRequest{Company: e.Company, Position: e.Position, Email: e.Email}
}
