package handler

import (
	"net/http"
	"time"

	"SkinProtocol_Backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CatalogResponse struct {
	SkinTypes []models.SkinTypeInfo `json:"skinTypes"`
	Concerns  []string              `json:"concerns"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Provider string `json:"provider" example:"gemini"`
}

// CreateSession godoc
// @Summary      익명 상담 세션 발급
// @Description  생성 엔드포인트 호출에 필요한 익명 세션 토큰을 발급합니다. (AUTH_REQUIRED=true 일 때만 활성화)
// @Tags         Session
// @Produce      json
// @Success      200 {object} handler.SessionResponse
// @Failure      404 {object} handler.ErrorResponse "세션 기능 비활성화"
// @Failure      500 {object} handler.ErrorResponse "토큰 발급 실패"
// @Router       /api/session [post]
func (h *Handler) CreateSession(c *gin.Context) {
	if h.issuer == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sessions are not enabled"})
		return
	}

	token, claims, err := h.issuer.Issue()
	if err != nil {
		h.logger.Error("CreateSession(): failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time})
}

// Catalog godoc
// @Summary      피부 타입 및 고민 목록
// @Description  온보딩 화면에 표시할 피부 타입과 고민 목록을 반환합니다.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} handler.CatalogResponse
// @Router       /api/catalog [get]
func (h *Handler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		SkinTypes: models.SkinTypes(),
		Concerns:  models.Concerns,
	})
}

// Health godoc
// @Summary      헬스 체크
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Provider: h.service.Provider()})
}
