package models

// ResumeFieldKeys are the keys of a parsed resume, in prompt order.
var ResumeFieldKeys = []string{
	"education",
	"field",
	"experience_years",
	"current_status",
	"country",
	"achievements",
	"has_offer",
	"job_details",
}

type ResumeResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type AnalysisResponse struct {
	Success  bool           `json:"success"`
	Analysis map[string]any `json:"analysis,omitempty"`
	Error    string         `json:"error,omitempty"`
	Details  string         `json:"details,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Time     string `json:"time"`
}
