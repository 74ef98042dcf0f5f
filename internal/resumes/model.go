package resumes

import "time"

// Resume is the single persisted entity: one person's profile data.
// Text fields are nil when absent and point at "" when sent empty.
type Resume struct {
	ID         string
	Name       *string
	Email      *string
	Phone      *string
	Summary    *string
	Experience []Experience
	Education  []Education
	Skills     []string
	CreatedAt  time.Time
}

// Experience is one position held.
type Experience struct {
	Title   *string `json:"title,omitempty" bson:"title,omitempty"`
	Company *string `json:"company,omitempty" bson:"company,omitempty"`
	From    *string `json:"from,omitempty" bson:"from,omitempty"`
	To      *string `json:"to,omitempty" bson:"to,omitempty"`
	Details *string `json:"details,omitempty" bson:"details,omitempty"`
}

// Education is one degree or course of study.
type Education struct {
	School *string `json:"school,omitempty" bson:"school,omitempty"`
	Degree *string `json:"degree,omitempty" bson:"degree,omitempty"`
	Year   *string `json:"year,omitempty" bson:"year,omitempty"`
}

// normalize replaces nil lists with empty ones so stored documents never hold null lists.
func (r *Resume) normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
}
