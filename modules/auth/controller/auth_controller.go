package controller

import (
	"meetsync/core/controller"
	"meetsync/core/errors"
	"meetsync/modules/auth/dto"
	"meetsync/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// AuthController handles token issuance requests
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

// NewAuthController creates a new controller
func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// IssueToken handles POST /auth/token
// @Summary Issue an access token
// @Description Exchanges client credentials for a short-lived bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Client credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /auth/token [post]
func (c *AuthController) IssueToken(ctx echo.Context) error {
	requestData := new(dto.TokenRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if requestData.ClientID == "" || requestData.APIKey == "" {
		return c.BadRequest(errors.ErrInvalidInput, "client_id and api_key are required")
	}

	tokenResponse, appErr := c.AuthService.IssueToken(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, tokenResponse, "Token issued")
}
