package handler

import (
	"SkinProtocol_Backend/internal/middleware"
	"SkinProtocol_Backend/internal/models"
	"SkinProtocol_Backend/internal/protocol"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generate godoc
// @Summary      피부 관리 프로토콜 생성
// @Description  상담 입력(피부 타입, 고민, 사용 중인 제품)으로 AM/PM 루틴을 생성합니다.
// @Description  모델 호출은 요청당 한 번이며 재시도하지 않습니다.
// @Tags         Protocol
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body      models.ConsultationInput true "상담 입력"
// @Success      200     {object}  models.ProtocolResult
// @Failure      400     {object}  handler.ErrorResponse "잘못된 요청 (input_malformed)"
// @Failure      401     {object}  handler.ErrorResponse "세션 토큰 누락 또는 만료"
// @Failure      429     {object}  handler.ErrorResponse "요청 한도 초과"
// @Failure      500     {object}  handler.ErrorResponse "생성 실패 (kind 필드로 구분)"
// @Router       /api/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	requestID := middleware.RequestID(c)
	logger := h.logger.With(zap.String("requestID", requestID))

	var in models.ConsultationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		logger.Info("Generate(): malformed body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid consultation input",
			Kind:  string(protocol.KindInputMalformed),
		})
		return
	}
	if err := protocol.ValidateInput(in); err != nil {
		logger.Info("Generate(): invalid input", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}
	if unknown := protocol.UnknownValues(in); len(unknown) > 0 {
		logger.Warn("Generate(): values outside catalog forwarded as-is", zap.Strings("values", unknown))
	}

	result, err := h.service.Generate(c.Request.Context(), in, nil)
	if err != nil {
		logger.Error("Generate(): generation failed",
			zap.String("kind", string(protocol.KindOf(err))),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	c.JSON(http.StatusOK, result)
}
