package routes

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farhat-is-coding/blog/config"
	"github.com/farhat-is-coding/blog/controllers"
	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Every request resolves its session cookie to an identity before dispatch.
	r.Use(middleware.SessionLoader())

	r.SetFuncMap(TemplateFuncs())
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	pageController := controllers.NewPageController()

	r.GET("/", postController.List)
	r.GET("/about", pageController.About)
	r.GET("/contact", pageController.Contact)

	authGroup := r.Group("")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.GET("/register", authController.ShowRegister)
	authGroup.POST("/register", authController.Register)
	authGroup.GET("/login", authController.ShowLogin)
	authGroup.POST("/login", authController.Login)

	r.GET("/logout", middleware.AuthRequired(), authController.Logout)

	r.GET("/post/:id", postController.Show)
	r.POST("/post/:id", middleware.AuthRequired(), postController.CreateComment)

	admin := r.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("/new-post", postController.ShowNew)
	admin.POST("/new-post", postController.CreateNew)
	admin.GET("/edit-post/:id", postController.ShowEdit)
	admin.POST("/edit-post/:id", postController.Edit)
	admin.GET("/delete/:id", postController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{
			"Status":  http.StatusNotFound,
			"Message": "That page does not exist.",
		})
	})

	return r
}

// TemplateFuncs exposes the helpers the page templates rely on.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Bodies are sanitized before persistence, so rendering them raw is safe.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"gravatar": utils.GravatarURL,
	}
}
