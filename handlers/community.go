package handlers

import (
	"net/http"
	"strconv"

	"coachhub/services/community"

	"github.com/gin-gonic/gin"
)

// CommunityHandler serves the Training Room feed.
type CommunityHandler struct {
	Service community.CommunityService
}

func NewCommunityHandler(svc community.CommunityService) *CommunityHandler {
	return &CommunityHandler{Service: svc}
}

type postBody struct {
	Body string `json:"body" binding:"required"`
}

func (h *CommunityHandler) ListFeedHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		limit = n
	}
	posts, err := h.Service.ListFeed(c.Request.Context(), callerFrom(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *CommunityHandler) CreatePostHandler(c *gin.Context) {
	var input postBody
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.Service.CreatePost(c.Request.Context(), callerFrom(c), input.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *CommunityHandler) LikePostHandler(c *gin.Context) {
	counters, err := h.Service.LikePost(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counters)
}

func (h *CommunityHandler) UnlikePostHandler(c *gin.Context) {
	counters, err := h.Service.UnlikePost(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counters)
}

func (h *CommunityHandler) AddCommentHandler(c *gin.Context) {
	var input postBody
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	counters, err := h.Service.AddComment(c.Request.Context(), callerFrom(c), c.Param("id"), input.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, counters)
}
