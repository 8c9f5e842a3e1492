/**
* Name: 			handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러 공통 타입
* Workflow: 		서비스/토큰 발급기/로거 주입, 에러 응답 형식
 */
package handler

import (
	"SkinProtocol_Backend/internal/auth"
	"SkinProtocol_Backend/internal/protocol"

	"go.uber.org/zap"
)

// 생성 실패 시 클라이언트에 노출하는 유일한 메시지
const generationFailedMessage = "Failed to generate valid JSON"

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
	Kind  string `json:"kind,omitempty" example:"generation_parse_error"`
}

type Handler struct {
	service *protocol.Service
	issuer  *auth.TokenIssuer
	logger  *zap.Logger
}

// New wires the handlers. issuer may be nil when sessions are disabled.
func New(service *protocol.Service, issuer *auth.TokenIssuer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, issuer: issuer, logger: logger}
}

func errorBody(err error) ErrorResponse {
	kind := protocol.KindOf(err)
	if kind == protocol.KindInputMalformed {
		return ErrorResponse{Error: "Invalid consultation input", Kind: string(kind)}
	}
	return ErrorResponse{Error: generationFailedMessage, Kind: string(kind)}
}
