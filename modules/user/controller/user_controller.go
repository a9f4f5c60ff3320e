package controller

import (
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/middleware"
	"group-scheduler/core/storage"
	"group-scheduler/core/utils"
	"group-scheduler/modules/user/dto"
	"group-scheduler/modules/user/service"
	"group-scheduler/modules/user/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

func (c *UserController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

// CreateUser handles POST /users
// @Summary Register a user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.CreateUserResponse
// @Failure 400 {object} controller.ValidationResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /users [post]
func (c *UserController) CreateUser(ctx echo.Context) error {
	req := new(dto.CreateUserRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCreateUserRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	resp, err := c.UserService.CreateUser(ctx.Request().Context(), req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.CreatedResponse(ctx, resp, "create user success")
}

// GetUsers handles GET /users
// @Summary List users
// @Tags User
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (c *UserController) GetUsers(ctx echo.Context) error {
	users, err := c.UserService.GetUsers(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, users, "get users success")
}

// GetUserByID handles GET /users/:id
// @Summary Get a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx echo.Context) error {
	user, err := c.UserService.GetUserByID(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, user, "get user success")
}

// GetUserByEmail handles GET /users/by-email/:email
// @Summary Find a user by email
// @Tags User
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /users/by-email/{email} [get]
func (c *UserController) GetUserByEmail(ctx echo.Context) error {
	user, err := c.UserService.GetUserByEmail(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, user, "get user success")
}

// GetMe handles GET /users/me
// @Summary Current user
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /users/me [get]
func (c *UserController) GetMe(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	user, err := c.UserService.GetUserByID(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, user, "get user success")
}

// UpdateMe handles PUT /users/me
// @Summary Update the current user's profile
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "Profile"
// @Success 200 {object} dto.UserResponse
// @Router /users/me [put]
func (c *UserController) UpdateMe(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.UpdateUserRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateUpdateUserRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	user, err := c.UserService.UpdateUser(ctx.Request().Context(), userID, req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, user, "update user success")
}

// DeleteMe handles DELETE /users/me
// @Summary Delete the current user
// @Tags User
// @Security BearerAuth
// @Success 204
// @Failure 403 {object} controller.ErrorResponse
// @Router /users/me [delete]
func (c *UserController) DeleteMe(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if err := c.UserService.DeleteUser(ctx.Request().Context(), userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}

// UploadPhoto handles POST /users/me/photo
// @Summary Upload a profile photo
// @Tags User
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /users/me/photo [post]
func (c *UserController) UploadPhoto(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "photo file is required", err))
	}
	if file.Size > storage.MaxUploadSize {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidInput, "photo is too large", nil))
	}

	src, err := file.Open()
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "cannot read photo", err))
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("UserController:UploadPhoto:Close", "error", err)
		}
	}()

	user, appErr := c.UserService.UploadPhoto(ctx.Request().Context(), userID, file.Filename, file.Header.Get(echo.HeaderContentType), src)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, user, "upload photo success")
}
