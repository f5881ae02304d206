package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/college-roster/internal/api/metrics"
	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
)

// UserHandler handles HTTP requests for roster operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/v1/create-user.
//
// @Summary      Create a user record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/create-user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), toCreateInput(req, gender, roles))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List handles GET /api/v1/read-all-users.
//
// @Summary      List all user records
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/read-all-users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// Records handles GET /api/v1/read-all-users-dataframe, the record-oriented
// flat-row view of the roster.
//
// @Summary      List all users as flat records
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.UserRecord
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/read-all-users-dataframe [get]
func (h *UserHandler) Records(c echo.Context) error {
	records, err := h.service.Records(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// ExportCSV handles GET /api/v1/users-csv, a CSV file download.
//
// @Summary      Download all users as CSV
// @Tags         users
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/users-csv [get]
func (h *UserHandler) ExportCSV(c echo.Context) error {
	data, err := h.service.ExportCSV(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// GetByEmail handles GET /api/v1/read-user/:email_address.
//
// @Summary      Get a user by email address
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email_address  path      string  true  "Email address"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/read-user/{email_address} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.service.GetByEmail(c.Request().Context(), c.Param("email_address"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PUT /api/v1/update-user/:email_address. Absent fields keep
// their stored values; a no-op update reports 404 like the original.
//
// @Summary      Update a user by email address
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email_address  path      string             true  "Email address"
// @Param        body           body      updateUserRequest  true  "Fields to update"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/update-user/{email_address} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	fields, err := toUpdateFields(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.UpdateByEmail(c.Request().Context(), c.Param("email_address"), fields)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found or no update needed"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/v1/delete-user/:email_address.
//
// @Summary      Delete a user by email address
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email_address  path      string  true  "Email address"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/delete-user/{email_address} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteByEmail(c.Request().Context(), c.Param("email_address")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// Me handles GET /api/v1/users/me, the authenticated principal's own record.
//
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByUsername(c.Request().Context(), principal.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The record vanished between token verification and now.
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "could not validate credentials"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
