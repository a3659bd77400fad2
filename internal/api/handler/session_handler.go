package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

// ActivityQueue accepts interaction signals without blocking the request.
type ActivityQueue interface {
	Enqueue(signal domain.ActivitySignal) bool
}

type SessionHandler struct {
	session  ports.SessionService
	activity ActivityQueue
}

func NewSessionHandler(session ports.SessionService, activity ActivityQueue) *SessionHandler {
	return &SessionHandler{session: session, activity: activity}
}

type sessionResponse struct {
	domain.Session
	Status   domain.Status `json:"status"`
	FullName string        `json:"full_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type activityRequest struct {
	Signal domain.ActivitySignal `json:"signal" validate:"required,oneof=pointerdown pointermove keypress scroll touchstart click"`
}

type activityResponse struct {
	Accepted bool `json:"accepted"`
}

type validateCodeRequest struct {
	Code string `json:"codigo_estudiante"`
}

type validatePersonalDataRequest struct {
	DocumentNumber string `json:"documento_numero"`
}

// Get handles GET /session.
//
// @Summary      Current session state
// @Description  Tokens are never included.
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	s := h.session.Snapshot()
	return c.JSON(http.StatusOK, sessionResponse{Session: s, Status: s.Status(), FullName: s.User.FullName()})
}

// Login handles POST /session/login.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  ports.Result
// @Failure      400   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.Login(c.Request().Context(), req.Email, req.Password))
}

// Logout handles POST /session/logout. It always succeeds.
//
// @Summary      Log out
// @Tags         session
// @Success      204
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Register handles POST /session/register.
//
// @Summary      Register an account and log it in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterInput  true  "Profile"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req domain.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.Register(c.Request().Context(), req))
}

// RegisterStudent handles POST /session/register-student.
//
// @Summary      Complete a pre-registered student account and log it in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.StudentRegistration  true  "Student registration"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/register-student [post]
func (h *SessionHandler) RegisterStudent(c echo.Context) error {
	var req domain.StudentRegistration
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.RegisterStudent(c.Request().Context(), req))
}

// UpdateProfile handles PUT /session/profile.
//
// @Summary      Update the profile of the session user
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileUpdate  true  "Fields to change"
// @Success      200   {object}  ports.Result
// @Failure      401   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/profile [put]
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var req domain.ProfileUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.UpdateProfile(c.Request().Context(), req))
}

// ForgotPassword handles POST /session/forgot-password.
//
// @Summary      Request a password reset code
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/forgot-password [post]
func (h *SessionHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.ForgotPassword(c.Request().Context(), req.Email))
}

// ResetPassword handles POST /session/reset-password.
//
// @Summary      Set a new password with a reset code
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset data"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/reset-password [post]
func (h *SessionHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.ResetPassword(c.Request().Context(), req.Email, req.Token, req.NewPassword))
}

// ClearError handles POST /session/clear-error.
func (h *SessionHandler) ClearError(c echo.Context) error {
	h.session.ClearError()
	return c.NoContent(http.StatusNoContent)
}

// Activity handles POST /session/activity.
//
// @Summary      Report a user interaction
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      activityRequest  true  "Interaction signal"
// @Success      202   {object}  activityResponse
// @Failure      400   {object}  ports.Result
// @Router       /session/activity [post]
func (h *SessionHandler) Activity(c echo.Context) error {
	var req activityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, activityResponse{Accepted: h.activity.Enqueue(req.Signal)})
}

// ValidateCode handles POST /session/validate-code.
//
// @Summary      Check a student code before registration
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      validateCodeRequest  true  "Student code"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/validate-code [post]
func (h *SessionHandler) ValidateCode(c echo.Context) error {
	var req validateCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.ValidateStudentCode(c.Request().Context(), req.Code))
}

// ValidatePersonalData handles POST /session/validate-personal-data.
//
// @Summary      Look up a pre-registered student by document number
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      validatePersonalDataRequest  true  "Document number"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /session/validate-personal-data [post]
func (h *SessionHandler) ValidatePersonalData(c echo.Context) error {
	var req validatePersonalDataRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.session.ValidatePersonalData(c.Request().Context(), req.DocumentNumber))
}
