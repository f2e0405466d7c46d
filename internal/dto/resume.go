package dto

// UploadResumeResponse reports the categories extracted from a resume.
type UploadResumeResponse struct {
	Message         string   `json:"message"`
	Filename        string   `json:"filename"`
	Categories      []string `json:"extracted_categories"`
	TotalCategories int      `json:"total_categories"`
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status  string                 `json:"status"`
	Metrics map[string]interface{} `json:"metrics"`
}
