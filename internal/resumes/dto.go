package resumes

import "time"

// ResumeResponse is the outward-facing representation of a stored resume.
type ResumeResponse struct {
	ID         string       `json:"_id"`
	Name       *string      `json:"name,omitempty"`
	Email      *string      `json:"email,omitempty"`
	Phone      *string      `json:"phone,omitempty"`
	Summary    *string      `json:"summary,omitempty"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func toResponse(r Resume) ResumeResponse {
	r.normalize()
	return ResumeResponse{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Summary:    r.Summary,
		Experience: r.Experience,
		Education:  r.Education,
		Skills:     r.Skills,
		CreatedAt:  r.CreatedAt,
	}
}
