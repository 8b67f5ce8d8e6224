package controllers_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farhat-is-coding/blog/config"
	"github.com/farhat-is-coding/blog/controllers"
	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/models"
	"github.com/farhat-is-coding/blog/routes"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass-123"
)

func init() {
	gin.SetMode(gin.TestMode)
	// RedisPort points at nothing so caching degrades to direct reads in tests.
	config.SetForTesting(config.AppConfig{
		SessionSecret:      "test-secret",
		AdminName:          "Farhat",
		AdminEmail:         adminEmail,
		AdminPassword:      adminPassword,
		RateLimitPerMinute: 1000,
		RedisHost:          "127.0.0.1",
		RedisPort:          16379,
	})
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

// stubTemplates stands in for templates/ so handlers can render without the
// working-directory dependency.
func stubTemplates() *template.Template {
	t := template.New("").Funcs(routes.TemplateFuncs())
	return template.Must(t.Parse(`
{{define "index.html"}}index posts={{len .Posts}}{{end}}
{{define "register.html"}}register{{end}}
{{define "login.html"}}login flash={{.Flash}}{{end}}
{{define "post.html"}}post {{.Post.Title}} comments={{len .Post.Comments}}{{end}}
{{define "make-post.html"}}make-post flash={{.Flash}}{{end}}
{{define "about.html"}}about{{end}}
{{define "contact.html"}}contact{{end}}
{{define "error.html"}}error {{.Status}}{{end}}
`))
}

// setupTestApp wires the route table the way routes.SetupRouter does, minus
// the file-backed pieces (templates glob, static dir, access log).
func setupTestApp(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	r := gin.New()
	r.SetHTMLTemplate(stubTemplates())
	r.Use(middleware.SessionLoader())

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	pageController := controllers.NewPageController()

	r.GET("/", postController.List)
	r.GET("/about", pageController.About)
	r.GET("/contact", pageController.Contact)

	r.GET("/register", authController.ShowRegister)
	r.POST("/register", authController.Register)
	r.GET("/login", authController.ShowLogin)
	r.POST("/login", authController.Login)
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

	return r
}

func postForm(app *gin.Engine, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func get(app *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, app *gin.Engine, name, email, password string) {
	t.Helper()
	w := postForm(app, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

// loginUser authenticates and returns the session cookie.
func loginUser(t *testing.T, app *gin.Engine, email, password string) *http.Cookie {
	t.Helper()
	w := postForm(app, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

// loginAdmin seeds the configured admin account and logs it in.
func loginAdmin(t *testing.T, app *gin.Engine, db *gorm.DB) *http.Cookie {
	t.Helper()
	require.NoError(t, config.SeedAdmin(db))
	return loginUser(t, app, adminEmail, adminPassword)
}
