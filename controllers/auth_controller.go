package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/models"
	"github.com/farhat-is-coding/blog/utils"
)

// sessionLifetime bounds how long a login cookie stays valid.
const sessionLifetime = 72 * time.Hour

// AuthController handles registration, login, and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type registerForm struct {
	Name     string `form:"name" binding:"required,max=100"`
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,min=6,max=72"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", pageData(ctx, gin.H{"Name": "", "Email": ""}))
}

// Register creates an account from a valid submission. A duplicate email never
// creates a second record; the visitor is sent to the login page instead.
func (a *AuthController) Register(ctx *gin.Context) {
	var form registerForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.SetFlash(ctx, "Please fill in a name, a valid email, and a password of at least 6 characters.")
		ctx.HTML(http.StatusOK, "register.html", pageData(ctx, gin.H{
			"Name":  ctx.PostForm("name"),
			"Email": ctx.PostForm("email"),
		}))
		return
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.SetFlash(ctx, "User Already Exists, Please Login!")
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	} else if err != gorm.ErrRecordNotFound {
		renderServerError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		renderServerError(ctx, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(form.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.db.Create(&user).Error; err != nil {
		renderServerError(ctx, err)
		return
	}

	utils.Sugar.Infow("user registered", "user_id", user.ID, "email", user.Email)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", pageData(ctx, gin.H{"Email": ""}))
}

// Login verifies credentials and establishes the session cookie. Failures
// re-render the form; the message never reveals which half was wrong.
func (a *AuthController) Login(ctx *gin.Context) {
	var form loginForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.SetFlash(ctx, "Invalid email or password.")
		ctx.HTML(http.StatusOK, "login.html", pageData(ctx, gin.H{
			"Email": ctx.PostForm("email"),
		}))
		return
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	var user models.User
	err := a.db.Where("email = ?", email).First(&user).Error
	if err != nil || !utils.CheckPassword(user.PasswordHash, form.Password) {
		utils.SetFlash(ctx, "Invalid email or password.")
		ctx.HTML(http.StatusOK, "login.html", pageData(ctx, gin.H{"Email": email}))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, sessionLifetime)
	if err != nil {
		renderServerError(ctx, err)
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, int(sessionLifetime.Seconds()), "/", "", false, true)
	utils.Sugar.Infow("user logged in", "user_id", user.ID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// Logout revokes the session token and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	token, err := ctx.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		expiresAt := time.Now().Add(sessionLifetime)
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		utils.BlacklistToken(token, expiresAt)
	}

	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/")
}
