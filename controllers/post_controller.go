package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/models"
	"github.com/farhat-is-coding/blog/utils"
)

const (
	cacheKeyIndex      = "cache:page:index"
	cacheKeyPostPrefix = "cache:post:detail:"
)

// PostController manages posts and their comments.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type postForm struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" binding:"required"`
}

type commentForm struct {
	Body string `form:"body" binding:"required"`
}

// List renders the home page with every post, newest first.
func (p *PostController) List(ctx *gin.Context) {
	var posts []models.Post
	if !utils.CacheGetJSON(cacheKeyIndex, &posts) {
		if err := p.db.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
			renderServerError(ctx, err)
			return
		}
		utils.CacheSetJSON(cacheKeyIndex, posts, time.Hour)
	}

	ctx.HTML(http.StatusOK, "index.html", pageData(ctx, gin.H{"Posts": posts}))
}

// Show renders a single post with its comments and the comment form.
func (p *PostController) Show(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var post models.Post
	if !utils.CacheGetJSON(postCacheKey(id), &post) {
		err := p.db.Preload("User").Preload("Comments.User").First(&post, id).Error
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx)
			return
		}
		if err != nil {
			renderServerError(ctx, err)
			return
		}
		utils.CacheSetJSON(postCacheKey(id), post, time.Hour)
	}

	ctx.HTML(http.StatusOK, "post.html", pageData(ctx, gin.H{"Post": post}))
}

// CreateComment attaches a comment from the logged-in user to the post, then
// sends the browser back to the post page.
func (p *PostController) CreateComment(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx)
			return
		}
		renderServerError(ctx, err)
		return
	}

	var form commentForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.SetFlash(ctx, "Comment cannot be empty.")
		ctx.Redirect(http.StatusSeeOther, postPath(id))
		return
	}

	body := utils.Sanitize(strings.TrimSpace(form.Body))
	if body == "" {
		utils.SetFlash(ctx, "Comment cannot be empty.")
		ctx.Redirect(http.StatusSeeOther, postPath(id))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	comment := models.Comment{
		PostID: post.ID,
		UserID: userID,
		Body:   body,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		renderServerError(ctx, err)
		return
	}

	utils.CacheDelete(postCacheKey(id))
	ctx.Redirect(http.StatusSeeOther, postPath(id))
}

// ShowNew renders an empty post form. Admin only.
func (p *PostController) ShowNew(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{
		"Heading": "New Post",
		"Post":    models.Post{},
	}))
}

// CreateNew inserts a post carrying today's display date and the admin's
// identity. Admin only.
func (p *PostController) CreateNew(ctx *gin.Context) {
	form, ok := p.bindPostForm(ctx, "New Post", models.Post{})
	if !ok {
		return
	}

	title := strings.TrimSpace(form.Title)
	var count int64
	if err := p.db.Model(&models.Post{}).Where("title = ?", title).Count(&count).Error; err != nil {
		renderServerError(ctx, err)
		return
	}
	if count > 0 {
		utils.SetFlash(ctx, "A post with that title already exists.")
		ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{
			"Heading": "New Post",
			"Post":    p.formAsPost(form, models.Post{}),
		}))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	post := models.Post{
		UserID:   userID,
		Title:    title,
		Subtitle: strings.TrimSpace(form.Subtitle),
		ImgURL:   strings.TrimSpace(form.ImgURL),
		Body:     utils.Sanitize(form.Body),
		Date:     time.Now().Format(models.DateLayout),
	}
	if err := p.db.Create(&post).Error; err != nil {
		renderServerError(ctx, err)
		return
	}

	utils.CacheDelete(cacheKeyIndex)
	utils.Sugar.Infow("post created", "post_id", post.ID, "title", post.Title)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// ShowEdit renders the post form pre-filled from the stored record. Admin only.
func (p *PostController) ShowEdit(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx)
			return
		}
		renderServerError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{
		"Heading": "Edit Post",
		"Editing": true,
		"Post":    post,
	}))
}

// Edit updates the fields the record owns, then redirects to the post view.
// Admin only.
func (p *PostController) Edit(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx)
			return
		}
		renderServerError(ctx, err)
		return
	}

	form, ok := p.bindPostForm(ctx, "Edit Post", post)
	if !ok {
		return
	}

	title := strings.TrimSpace(form.Title)
	var count int64
	if err := p.db.Model(&models.Post{}).Where("title = ? AND id <> ?", title, post.ID).Count(&count).Error; err != nil {
		renderServerError(ctx, err)
		return
	}
	if count > 0 {
		utils.SetFlash(ctx, "A post with that title already exists.")
		ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{
			"Heading": "Edit Post",
			"Editing": true,
			"Post":    post,
		}))
		return
	}

	post.Title = title
	post.Subtitle = strings.TrimSpace(form.Subtitle)
	post.ImgURL = strings.TrimSpace(form.ImgURL)
	post.Body = utils.Sanitize(form.Body)
	if err := p.db.Save(&post).Error; err != nil {
		renderServerError(ctx, err)
		return
	}

	utils.CacheDelete(cacheKeyIndex, postCacheKey(id))
	ctx.Redirect(http.StatusSeeOther, postPath(id))
}

// Delete removes a post and its comments in one transaction, then redirects
// to the list. Admin only.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx)
			return
		}
		renderServerError(ctx, err)
		return
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		renderServerError(ctx, err)
		return
	}

	utils.CacheDelete(cacheKeyIndex, postCacheKey(id))
	utils.Sugar.Infow("post deleted", "post_id", post.ID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// bindPostForm validates a post submission, re-rendering the form when the
// submission is invalid. base carries the identity of the record being edited
// so the form posts back to the right place. The second return value reports
// whether to continue.
func (p *PostController) bindPostForm(ctx *gin.Context, heading string, base models.Post) (postForm, bool) {
	var form postForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.SetFlash(ctx, "All fields are required and the image must be a valid URL.")
		ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{
			"Heading": heading,
			"Editing": base.ID != 0,
			"Post":    p.formAsPost(form, base),
		}))
		return form, false
	}
	return form, true
}

func (p *PostController) formAsPost(form postForm, base models.Post) models.Post {
	base.Title = form.Title
	base.Subtitle = form.Subtitle
	base.ImgURL = form.ImgURL
	base.Body = form.Body
	return base
}

// parsePostID validates the :id path segment. Anything that is not a positive
// integer is treated as a post that does not exist; the raw string never
// reaches a query.
func parsePostID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postCacheKey(id uint) string {
	return cacheKeyPostPrefix + strconv.FormatUint(uint64(id), 10)
}

func postPath(id uint) string {
	return "/post/" + strconv.FormatUint(uint64(id), 10)
}
