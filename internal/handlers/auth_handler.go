package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/middleware"
	"tfl_backend/internal/models"
	"tfl_backend/internal/services"
	"tfl_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes registers sign-in, sign-up and account recovery routes
func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.POST("/logout", h.Logout)

	r.GET("/forgot-password", h.ForgotPasswordPage)
	r.POST("/forgot-password", h.ForgotPassword)
	r.GET("/reset-password", h.ResetPasswordPage)
	r.POST("/reset-password", h.ResetPassword)

	r.GET("/verify-email", h.VerifyEmailPage)
	authenticated := r.Group("/verify-email", middleware.RequireCapability(auth.Authenticated))
	{
		authenticated.POST("", h.DevVerify)
		authenticated.POST("/resend", h.ResendVerification)
	}
}

func (h *AuthHandler) Home(c *gin.Context) {
	if h.Viewer(c).IsAuthenticated() {
		SeeOther(c, "/events")
		return
	}
	SeeOther(c, "/login")
}

// LoginPage godoc
// @Summary Login page
// @Tags auth
// @Produce json
// @Param verified query string false "set after email verification"
// @Param reset query string false "set after a password reset"
// @Success 200 {object} dto.LoginPage
// @Success 303 "already signed in"
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.Viewer(c).IsAuthenticated() {
		SeeOther(c, "/events")
		return
	}
	c.JSON(http.StatusOK, dto.LoginPage{
		Verified: QueryFlag(c, "verified"),
		Reset:    QueryFlag(c, "reset"),
	})
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "username (any case)"
// @Param password formData string true "password"
// @Success 303 "session cookie set, redirect to /events"
// @Failure 200 {object} apperrors.FormErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleFormError(c, err)
		return
	}
	if err := h.sessions.Create(c.Writer, c.Request, user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "user signed in", "user_id", user.ID)
	SeeOther(c, "/events")
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	switch h.Viewer(c).Capability {
	case auth.Verified, auth.Admin:
		SeeOther(c, "/events")
		return
	case auth.Authenticated:
		SeeOther(c, "/verify-email")
		return
	}
	c.JSON(http.StatusOK, dto.SignupPage{
		Emojis:       models.ProfileEmojis,
		DefaultEmoji: models.DefaultProfileEmoji,
	})
}

// Signup godoc
// @Summary Create an account
// @Description Creates an unverified account and emails a verification link. No session is started.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "at least 2 characters"
// @Param firstName formData string true "first name"
// @Param lastName formData string true "last name"
// @Param email formData string true "email"
// @Param password formData string true "at least 8 characters"
// @Param confirmPassword formData string true "repeat password"
// @Param profileEmoji formData string false "profile emoji"
// @Success 303 "redirect to /verify-email?sent=1"
// @Failure 200 {object} apperrors.FormErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleFormError(c, err)
		return
	}
	SeeOther(c, "/verify-email?sent=1")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Writer, c.Request); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to clear session", err)
	}
	SeeOther(c, "/login")
}

// ForgotPasswordPage godoc
// @Summary Forgot password page
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ForgotPasswordPage
// @Router /forgot-password [get]
func (h *AuthHandler) ForgotPasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ForgotPasswordPage{
		LinkExpiryMinutes: int(auth.ResetTTL.Minutes()),
	})
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Answers the same whether or not an account uses the address.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "email"
// @Success 200 {object} map[string]bool
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) ResetPasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ResetPasswordPage{Token: c.Query("token")})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidate(c, &req) {
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleFormError(c, err)
		return
	}
	SeeOther(c, "/login?reset=1")
}

// VerifyEmailPage consumes ?token= when present. Without a valid token it
// shows the "check your email" page.
func (h *AuthHandler) VerifyEmailPage(c *gin.Context) {
	viewer := h.Viewer(c)
	token := c.Query("token")

	if token == "" && viewer.Capability >= auth.Verified {
		SeeOther(c, "/events")
		return
	}

	if token != "" {
		ok, err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), token)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		if ok {
			SeeOther(c, "/login?verified=1")
			return
		}
	}

	c.JSON(http.StatusOK, dto.VerifyEmailPage{
		Sent:      QueryFlag(c, "sent"),
		HasUserID: viewer.IsAuthenticated(),
		DevVerify: !h.production && viewer.IsAuthenticated(),
	})
}

// DevVerify marks the caller verified. Outside development it just returns
// to the verify page.
func (h *AuthHandler) DevVerify(c *gin.Context) {
	if h.production {
		SeeOther(c, "/verify-email")
		return
	}
	if err := h.authService.DevVerify(c.Request.Context(), h.GetDB(c), h.Viewer(c).UserID); err != nil {
		h.HandleFormError(c, err)
		return
	}
	SeeOther(c, "/events")
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	if err := h.authService.ResendVerification(c.Request.Context(), h.GetDB(c), h.Viewer(c).UserID); err != nil {
		h.HandleFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResendResponse{Sent: true})
}
