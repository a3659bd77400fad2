package domain

import "encoding/json"

// Registration states of a pre-registered student.
const (
	StudentPending    = "Pendiente"
	StudentRegistered = "Registrado"
)

// Student is a roster entry created by a coordinator. Only students on the
// roster may complete a registration with their code.
type Student struct {
	ID                 int    `json:"id"`
	CodigoEstudiante   string `json:"codigo_estudiante"`
	Nombre             string `json:"nombre"`
	Apellidos          string `json:"apellidos"`
	EmailInstitucional string `json:"email_institucional"`
	DocumentoNumero    string `json:"documento_numero"`
	ProgramaAcademico  string `json:"programa_academico"`
	Semestre           int    `json:"semestre"`
	Estado             string `json:"estado"`
	Activo             bool   `json:"activo"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// StudentInput is the coordinator-side payload for creating or updating a
// roster entry.
type StudentInput struct {
	Nombre             string `json:"nombre" validate:"required"`
	Apellidos          string `json:"apellidos" validate:"required"`
	EmailInstitucional string `json:"email_institucional" validate:"required"`
	DocumentoNumero    string `json:"documento_numero" validate:"required"`
	Semestre           int    `json:"semestre" validate:"required"`
}

// CodeValidation is the answer of the student-code and personal-data checks.
type CodeValidation struct {
	Valido     bool           `json:"valido"`
	Estudiante map[string]any `json:"estudiante,omitempty"`
	Mensaje    string         `json:"mensaje,omitempty"`
}

// CaseRecord is a "Control Operativo" intake form. Its many sections are
// owned by the UI shell and the backend, so the body travels as raw JSON.
type CaseRecord struct {
	ID   int             `json:"id"`
	Body json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the full document while exposing its id.
func (r *CaseRecord) UnmarshalJSON(data []byte) error {
	var head struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	r.ID = head.ID
	r.Body = append(r.Body[:0], data...)
	return nil
}

// MarshalJSON writes the document back unchanged.
func (r CaseRecord) MarshalJSON() ([]byte, error) {
	if len(r.Body) == 0 {
		return json.Marshal(struct {
			ID int `json:"id"`
		}{r.ID})
	}
	return r.Body, nil
}

// Document is a binary download produced by the backend.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}
