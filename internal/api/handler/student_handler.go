package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

// StudentHandler serves the coordinator's student roster.
type StudentHandler struct {
	roster ports.RosterService
}

func NewStudentHandler(roster ports.RosterService) *StudentHandler {
	return &StudentHandler{roster: roster}
}

// List handles GET /coordinator/students.
//
// @Summary      List the student roster
// @Tags         coordinator
// @Produce      json
// @Success      200  {object}  ports.Result
// @Failure      401  {object}  ports.Result
// @Failure      403  {object}  ports.Result
// @Router       /coordinator/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	return writeResult(c, h.roster.ListStudents(c.Request().Context()))
}

// Create handles POST /coordinator/students.
//
// @Summary      Pre-register a student
// @Tags         coordinator
// @Accept       json
// @Produce      json
// @Param        body  body      domain.StudentInput  true  "Student"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /coordinator/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req domain.StudentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.roster.CreateStudent(c.Request().Context(), req))
}

// Update handles PUT /coordinator/students/:id.
//
// @Summary      Update a roster entry
// @Tags         coordinator
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Student id"
// @Param        body  body      domain.StudentInput  true  "Student"
// @Success      200   {object}  ports.Result
// @Failure      422   {object}  ports.Result
// @Router       /coordinator/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req domain.StudentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	return writeResult(c, h.roster.UpdateStudent(c.Request().Context(), id, req))
}

// Delete handles DELETE /coordinator/students/:id.
//
// @Summary      Remove a roster entry
// @Tags         coordinator
// @Produce      json
// @Param        id   path      int  true  "Student id"
// @Success      200  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /coordinator/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.roster.DeleteStudent(c.Request().Context(), id))
}
