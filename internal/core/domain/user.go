package domain

const (
	RoleCoordinator = "coordinador"
	RoleStudent     = "estudiante"
)

// User models the authenticated portal account as returned by /auth/me.
type User struct {
	ID                int    `json:"id"`
	Nombre            string `json:"nombre"`
	Apellidos         string `json:"apellidos"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	CodigoEstudiante  string `json:"codigo_estudiante,omitempty"`
	ProgramaAcademico string `json:"programa_academico,omitempty"`
	Semestre          int    `json:"semestre,omitempty"`
	Telefono          string `json:"telefono,omitempty"`
	Activo            bool   `json:"activo"`
	CreatedAt         string `json:"created_at,omitempty"`
}

// IsCoordinator reports whether the account may manage the student roster.
func (u *User) IsCoordinator() bool {
	return u != nil && u.Role == RoleCoordinator
}

// FullName joins first name and surnames the way the portal displays them.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.Apellidos == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellidos
}

// RegisterInput is the profile submitted to /auth/register.
type RegisterInput struct {
	Nombre        string `json:"nombre" validate:"required"`
	Apellidos     string `json:"apellidos" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Telefono      string `json:"telefono,omitempty"`
	LicenseNumber string `json:"numero_licencia,omitempty"`
}

// StudentRegistration completes a pre-registered student's account using
// the code issued by a coordinator.
type StudentRegistration struct {
	CodigoEstudiante string `json:"codigo_estudiante" validate:"required"`
	Nombre           string `json:"nombre" validate:"required"`
	Apellidos        string `json:"apellidos" validate:"required"`
	Password         string `json:"password" validate:"required"`
	Telefono         string `json:"telefono,omitempty"`
}

// ProfileUpdate carries the editable subset of a profile. Nil fields are
// left untouched by the backend.
type ProfileUpdate struct {
	Nombre    *string `json:"nombre,omitempty"`
	Apellidos *string `json:"apellidos,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Semestre  *int    `json:"semestre,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Nombre == nil && p.Apellidos == nil && p.Telefono == nil && p.Direccion == nil && p.Semestre == nil
}
