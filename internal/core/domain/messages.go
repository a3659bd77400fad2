package domain

import (
	"errors"
	"net/http"
	"strings"
)

// Operation identifies which command a failure belongs to; each command has
// its own fixed set of user-facing messages.
type Operation string

const (
	OpLogin           Operation = "login"
	OpRegister        Operation = "register"
	OpRegisterStudent Operation = "register_student"
	OpForgotPassword  Operation = "forgot_password"
	OpResetPassword   Operation = "reset_password"
)

// Detail texts the backend uses for the failures that get a dedicated message.
const (
	DetailInvalidCredentials   = "Invalid credentials"
	DetailInvalidCredentialsES = "Credenciales inválidas"
	DetailEmailRegistered      = "Email already registered"
	DetailLicenseRegistered    = "License number already registered"
	DetailWeakPassword         = "Password does not meet security requirements"
)

const (
	MsgInvalidCredentials = "❌ Credenciales incorrectas. Verifica tu correo electrónico y contraseña."
	MsgUnauthorized       = "❌ No tienes autorización para acceder. Verifica tus credenciales."
	MsgUserNotFound       = "❌ Usuario no encontrado. Verifica tu correo electrónico o regístrate."
	MsgLoginInvalidData   = "❌ Datos inválidos. Verifica el formato del correo y la contraseña."
	MsgServerError        = "❌ Error interno del servidor. Inténtalo nuevamente más tarde."
	MsgLoginFailed        = "❌ Error de autenticación"
	MsgLoginNoResponse    = "❌ Error de conexión. Verifica que el servidor esté funcionando o inténtalo más tarde."
	MsgUnexpected         = "❌ Error inesperado. Inténtalo nuevamente."
	MsgNoConnection       = "❌ No se pudo conectar al servidor. Verifica tu conexión a internet."
	MsgSessionChanged     = "❌ La sesión cambió mientras se procesaba la solicitud. Inténtalo nuevamente."

	MsgEmailRegistered      = "⚠️ Este correo electrónico ya está registrado. Utiliza otro correo o inicia sesión."
	MsgLicenseRegistered    = "⚠️ Este número de licencia ya está registrado."
	MsgWeakPassword         = "⚠️ La contraseña no cumple con los requisitos de seguridad."
	MsgRegisterInvalidData  = "⚠️ Datos inválidos. Verifica la información ingresada."
	MsgRegisterInvalidForm  = "⚠️ Datos inválidos. Verifica el formato del correo y otros campos."
	MsgRegisterServerError  = "⚠️ Error interno del servidor. Inténtalo nuevamente más tarde."
	MsgRegisterFailed       = "⚠️ Error en el registro"
	MsgRegisterNoConnection = "⚠️ No se pudo conectar al servidor. Verifica tu conexión a internet."
	MsgRegisterUnexpected   = "⚠️ Error inesperado. Inténtalo nuevamente."

	MsgInvalidStudentCode   = "❌ Código no válido o ya utilizado"
	MsgStudentValidation    = "Error de validación"
	MsgStudentRegisterError = "❌ Error completando el registro"
	MsgStudentUnexpected    = "Error completando el registro"

	MsgAccountNotFound   = "❌ No se encontró una cuenta con este correo electrónico."
	MsgTooManyAttempts   = "❌ Demasiados intentos. Espera unos minutos antes de intentar nuevamente."
	MsgForgotFailed      = "❌ Error al enviar el correo de recuperación"
	MsgInvalidResetCode  = "❌ El código de verificación es inválido o ha expirado."
	MsgResetNotFound     = "❌ No se encontró la solicitud de recuperación de contraseña."
	MsgResetWeakPassword = "❌ La nueva contraseña no cumple con los requisitos de seguridad."
	MsgResetFailed       = "❌ Error al cambiar la contraseña"

	MsgProfileUpdateFailed  = "Error actualizando perfil"
	MsgListStudentsFailed   = "❌ Error obteniendo lista de estudiantes"
	MsgCreateStudentFailed  = "❌ Error registrando estudiante"
	MsgUpdateStudentFailed  = "❌ Error actualizando estudiante"
	MsgDeleteStudentFailed  = "❌ Error eliminando estudiante"
	MsgValidateCodeFailed   = "❌ Error validando código de estudiante"
	MsgPersonalDataNotFound = "❌ No se encontró un estudiante pre-registrado con estos datos"
	MsgCaseRecordFailed     = "❌ Error procesando el control operativo"
)

// Classify turns a failed command into the single message shown to the
// user. Network failures (no response) are told apart from error
// responses; anything else falls through to the unexpected-error message.
func Classify(op Operation, err error) string {
	apiErr, ok := AsAPIError(err)
	if !ok {
		if errors.Is(err, ErrNoResponse) {
			return noResponseMessage(op)
		}
		if errors.Is(err, ErrSessionChanged) {
			return MsgSessionChanged
		}
		if errors.Is(err, ErrInvalidInput) {
			return invalidInputMessage(op)
		}
		return unexpectedMessage(op)
	}

	switch op {
	case OpLogin:
		return classifyLogin(apiErr)
	case OpRegister:
		return classifyRegister(apiErr)
	case OpRegisterStudent:
		return classifyStudentRegistration(apiErr)
	case OpForgotPassword:
		return classifyForgotPassword(apiErr)
	case OpResetPassword:
		return classifyResetPassword(apiErr)
	}
	return orDefault(apiErr.Text(), MsgUnexpected)
}

// Passthrough is the message policy of plain REST calls: the backend's own
// detail text when there is one, the fallback otherwise.
func Passthrough(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok {
		return orDefault(apiErr.Text(), fallback)
	}
	if errors.Is(err, ErrSessionChanged) {
		return MsgSessionChanged
	}
	return fallback
}

func classifyLogin(e *APIError) string {
	switch e.Status {
	case http.StatusUnauthorized:
		if e.Detail == DetailInvalidCredentials || e.Detail == DetailInvalidCredentialsES {
			return MsgInvalidCredentials
		}
		return MsgUnauthorized
	case http.StatusNotFound:
		return MsgUserNotFound
	case http.StatusUnprocessableEntity:
		return MsgLoginInvalidData
	case http.StatusInternalServerError:
		return MsgServerError
	}
	return orDefault(e.Text(), MsgLoginFailed)
}

func classifyRegister(e *APIError) string {
	switch e.Status {
	case http.StatusBadRequest:
		switch {
		case e.Detail == DetailEmailRegistered:
			return MsgEmailRegistered
		case e.Detail == DetailLicenseRegistered:
			return MsgLicenseRegistered
		case isWeakPassword(e):
			return MsgWeakPassword
		}
		return orDefault(e.Text(), MsgRegisterInvalidData)
	case http.StatusUnprocessableEntity:
		return MsgRegisterInvalidForm
	case http.StatusInternalServerError:
		return MsgRegisterServerError
	}
	return orDefault(e.Text(), MsgRegisterFailed)
}

func classifyStudentRegistration(e *APIError) string {
	switch e.Status {
	case http.StatusBadRequest:
		return orDefault(e.Text(), MsgInvalidStudentCode)
	case http.StatusUnprocessableEntity:
		return orDefault(e.DetailMessage, orDefault(e.Detail, MsgStudentValidation))
	case http.StatusInternalServerError:
		return MsgServerError
	}
	return orDefault(e.Text(), MsgStudentRegisterError)
}

func classifyForgotPassword(e *APIError) string {
	switch e.Status {
	case http.StatusNotFound:
		return MsgAccountNotFound
	case http.StatusTooManyRequests:
		return MsgTooManyAttempts
	case http.StatusInternalServerError:
		return MsgServerError
	}
	return orDefault(e.Text(), MsgForgotFailed)
}

func classifyResetPassword(e *APIError) string {
	switch e.Status {
	case http.StatusBadRequest:
		return MsgInvalidResetCode
	case http.StatusNotFound:
		return MsgResetNotFound
	case http.StatusUnprocessableEntity:
		return MsgResetWeakPassword
	case http.StatusInternalServerError:
		return MsgServerError
	}
	return orDefault(e.Text(), MsgResetFailed)
}

func noResponseMessage(op Operation) string {
	switch op {
	case OpLogin:
		return MsgLoginNoResponse
	case OpRegister:
		return MsgRegisterNoConnection
	}
	return MsgNoConnection
}

func invalidInputMessage(op Operation) string {
	switch op {
	case OpRegister:
		return MsgRegisterInvalidData
	case OpRegisterStudent:
		return MsgStudentValidation
	case OpResetPassword:
		return MsgResetFailed
	case OpForgotPassword:
		return MsgForgotFailed
	}
	return MsgLoginInvalidData
}

func unexpectedMessage(op Operation) string {
	switch op {
	case OpRegister:
		return MsgRegisterUnexpected
	case OpRegisterStudent:
		return MsgStudentUnexpected
	case OpResetPassword:
		return MsgResetFailed
	}
	return MsgUnexpected
}

func isWeakPassword(e *APIError) bool {
	return strings.Contains(e.DetailMessage, DetailWeakPassword) || strings.Contains(e.Detail, DetailWeakPassword)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
