package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. List fields are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

// Insert writes a new row and returns the stored resume.
func (r *PGRepo) Insert(ctx context.Context, doc Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
    id,
    name,
    email,
    phone,
    summary,
    experience,
    education,
    skills,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	doc.ID = uuid.NewString()
	doc.normalize()

	experience, err := json.Marshal(doc.Experience)
	if err != nil {
		return Resume{}, fmt.Errorf("encode experience: %w", err)
	}
	education, err := json.Marshal(doc.Education)
	if err != nil {
		return Resume{}, fmt.Errorf("encode education: %w", err)
	}
	skills, err := json.Marshal(doc.Skills)
	if err != nil {
		return Resume{}, fmt.Errorf("encode skills: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		nullText(doc.Name),
		nullText(doc.Email),
		nullText(doc.Phone),
		nullText(doc.Summary),
		string(experience),
		string(education),
		string(skills),
		doc.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	return doc, nil
}

// nullText maps an absent field to NULL and keeps an empty one as ''.
func nullText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
