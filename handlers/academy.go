package handlers

import (
	"net/http"

	"coachhub/services/academy"

	"github.com/gin-gonic/gin"
)

type AcademyHandler struct {
	Service academy.AcademyService
}

func NewAcademyHandler(svc academy.AcademyService) *AcademyHandler {
	return &AcademyHandler{Service: svc}
}

func (h *AcademyHandler) GetCurriculumHandler(c *gin.Context) {
	view, err := h.Service.GetCurriculum(c.Request.Context(), callerFrom(c), c.Param("courseID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AcademyHandler) CompleteLessonHandler(c *gin.Context) {
	done, err := h.Service.CompleteLesson(c.Request.Context(), callerFrom(c), c.Param("lessonID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, done)
}
