package resumes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var resumeSchema = mustLoadSchema(schemaJSON)

// FieldError is a single schema violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation found in a payload.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, strings.Join(parts, ", "))
}

func (ve *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

// payload is the accepted input shape. Identifier and timestamp are owned by the
// store, so client-supplied _id and createdAt never reach it.
type payload struct {
	Name       *string      `json:"name"`
	Email      *string      `json:"email"`
	Phone      *string      `json:"phone"`
	Summary    *string      `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
}

// Decode casts raw toward the resume shape, validates it against the resume
// schema and returns the typed document. Unknown fields are dropped; absent lists
// become empty lists.
func Decode(raw []byte) (Resume, error) {
	doc, err := coerce(raw)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	cast, err := json.Marshal(doc)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result, err := resumeSchema.Validate(gojsonschema.NewBytesLoader(cast))
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !result.Valid() {
		verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return Resume{}, verr
	}

	var p payload
	if err := json.Unmarshal(cast, &p); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	r := Resume{
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Summary:    p.Summary,
		Experience: p.Experience,
		Education:  p.Education,
		Skills:     p.Skills,
	}
	r.normalize()
	return r, nil
}

func mustLoadSchema(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("load resume schema: %v", err))
	}
	return schema
}
