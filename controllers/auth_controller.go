package controllers

import (
	"abchotels/dto"
	"abchotels/response"
	"abchotels/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login godoc
// @Summary  Staff login
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.LoginInput  true  "Credentials"
// @Success  200  {object}  response.Response
// @Failure  401  {object}  response.Response
// @Router   /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := ctrl.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// GoogleLogin godoc
// @Summary  Staff login with a Google ID token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.GoogleLoginInput  true  "ID token"
// @Success  200  {object}  response.Response
// @Failure  401  {object}  response.Response
// @Router   /auth/google [post]
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var input dto.GoogleLoginInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := ctrl.auth.GoogleLogin(c.Request.Context(), input.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// CreateStaff godoc
// @Summary   Create a staff or admin account
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body  dto.CreateStaffInput  true  "Account"
// @Success   201  {object}  response.Response
// @Failure   409  {object}  response.Response
// @Router    /admin/users [post]
func (ctrl *AuthController) CreateStaff(c *gin.Context) {
	var input dto.CreateStaffInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := ctrl.auth.CreateStaff(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, user)
}
