// Package controller binds the blog service to the REST transport.
package controller

import (
	"net/http"

	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/service"
)

// Blog blog controller
type Blog struct {
	logger glog.Logger
	svc    *service.Blog
}

// New create new controller
func New(logger glog.Logger, svc *service.Blog) *Blog {
	return &Blog{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes mounts the blog endpoints on the given router.
func (b *Blog) RegisterRoutes(r gin.IRouter) {
	r.POST("/blogs", b.CreateBlog)
	r.GET("/blogs", b.GetBlogs)
	r.PUT("/blogs/:blogId", b.UpdateBlog)
	r.DELETE("/blogs/:blogId", b.DeleteBlog)
	r.DELETE("/blogs", b.DeleteBlogsByQuery)
}

// envelope is the wire shape of every response.
type envelope struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// blogItem is a blog record plus the rendered body for read responses.
type blogItem struct {
	*model.Blog
	BodyHTML string `json:"bodyHtml,omitempty"`
}

func newBlogItem(b *model.Blog) blogItem {
	return blogItem{
		Blog:     b,
		BodyHTML: service.ParseMarkdown2HTML([]byte(b.Body)),
	}
}

// abortErr writes the failure envelope with the status mapped from err.
func (b *Blog) abortErr(c *gin.Context, err error) {
	status := model.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		b.logger.Error("blog request failed", zap.Error(err),
			zap.String("path", c.FullPath()))
	} else {
		b.logger.Debug("blog request rejected", zap.Error(err),
			zap.String("path", c.FullPath()))
	}

	c.AbortWithStatusJSON(status, envelope{Status: false, Msg: err.Error()})
}

// CreateBlog handles POST /blogs.
func (b *Blog) CreateBlog(c *gin.Context) {
	req := new(dto.CreateBlogRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			envelope{Status: false, Msg: err.Error()})
		return
	}

	blog, err := b.svc.CreateBlog(c.Request.Context(), req)
	if err != nil {
		b.abortErr(c, err)
		return
	}

	msg := "Your blog has been saved in drafts"
	if blog.IsPublished {
		msg = "Your blog has been published"
	}
	c.JSON(http.StatusCreated, envelope{Status: true, Msg: msg, Data: newBlogItem(blog)})
}

// GetBlogs handles GET /blogs.
func (b *Blog) GetBlogs(c *gin.Context) {
	q := dto.BlogQuery{Params: c.Request.URL.Query()}

	blogs, err := b.svc.ListBlogs(c.Request.Context(), q)
	if err != nil {
		b.abortErr(c, err)
		return
	}

	items := make([]blogItem, 0, len(blogs))
	for _, blog := range blogs {
		items = append(items, newBlogItem(blog))
	}
	c.JSON(http.StatusOK, envelope{Status: true, Data: items})
}

// UpdateBlog handles PUT /blogs/:blogId. The authorId query parameter is the
// ownership credential.
func (b *Blog) UpdateBlog(c *gin.Context) {
	req := new(dto.UpdateBlogRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			envelope{Status: false, Msg: err.Error()})
		return
	}

	blog, err := b.svc.UpdateBlog(c.Request.Context(),
		c.Param("blogId"), c.Query("authorId"), req)
	if err != nil {
		b.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope{Status: true, Data: newBlogItem(blog)})
}

// DeleteBlog handles DELETE /blogs/:blogId.
func (b *Blog) DeleteBlog(c *gin.Context) {
	blog, err := b.svc.DeleteBlog(c.Request.Context(),
		c.Param("blogId"), c.Query("authorId"))
	if err != nil {
		b.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope{
		Status: true,
		Msg:    "Your blog has been successfully deleted",
		Data:   newBlogItem(blog),
	})
}

// DeleteBlogsByQuery handles DELETE /blogs.
func (b *Blog) DeleteBlogsByQuery(c *gin.Context) {
	q := dto.BlogQuery{Params: c.Request.URL.Query()}

	ack, err := b.svc.DeleteBlogsByQuery(c.Request.Context(), q)
	if err != nil {
		b.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope{
		Status: true,
		Msg:    "Your blogs have been deleted",
		Data:   ack,
	})
}
