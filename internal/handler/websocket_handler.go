package handler

import (
	"SkinProtocol_Backend/internal/middleware"
	"SkinProtocol_Backend/internal/models"
	"SkinProtocol_Backend/internal/protocol"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	inputReadTimeout = 15 * time.Second
	frameWriteWait   = 5 * time.Second
)

// Upgrade HTTP connection to WebSocket (Origin 검사는 CORS 설정에 맡김)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressFrame is one server to client message on /ws/generate.
type ProgressFrame struct {
	Type   string                 `json:"type" example:"state"`
	State  protocol.State         `json:"state,omitempty" example:"PromptBuilt"`
	Result *models.ProtocolResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
	Kind   string                 `json:"kind,omitempty"`
}

// GenerateStream godoc
// @Summary      프로토콜 생성 진행 상황 WebSocket
// @Description  로딩 화면용 WebSocket 변형입니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  연결 후 클라이언트가 상담 입력 JSON 한 개를 텍스트 프레임으로 보내면, 서버는
// @Description  `{"type":"state"}` 프레임을 단계마다 보내고 `result` 또는 `error` 프레임 후 연결을 닫습니다.
// @Description  연결을 먼저 닫으면 진행 중인 모델 호출이 취소됩니다.
// @Description  인증이 필요한 경우 **쿼리 파라미터('token')**를 사용합니다.
// @Tags         WebSocket (Protocol)
// @Param        token    query     string  false  "세션 토큰 (AUTH_REQUIRED=true 일 때)"
// @Success      101      {string}  string  "101 Switching Protocols"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/generate [get]
func (h *Handler) GenerateStream(c *gin.Context) {
	logger := h.logger.With(zap.String("requestID", middleware.RequestID(c)))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("GenerateStream(): failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	send := func(frame ProgressFrame) {
		conn.SetWriteDeadline(time.Now().Add(frameWriteWait))
		if err := conn.WriteJSON(frame); err != nil {
			logger.Debug("GenerateStream(): write failed", zap.String("type", frame.Type), zap.Error(err))
		}
	}

	// 첫 프레임: 상담 입력
	conn.SetReadDeadline(time.Now().Add(inputReadTimeout))
	messageType, message, err := conn.ReadMessage()
	if err != nil {
		logger.Info("GenerateStream(): no consultation input received", zap.Error(err))
		return
	}
	conn.SetReadDeadline(time.Time{})

	var in models.ConsultationInput
	if messageType != websocket.TextMessage {
		err = errors.New("expected a text frame")
	} else if decodeErr := sonic.Unmarshal(message, &in); decodeErr != nil {
		err = decodeErr
	} else {
		err = protocol.ValidateInput(in)
	}
	if err != nil {
		logger.Info("GenerateStream(): malformed input", zap.Error(err))
		send(ProgressFrame{Type: "error", Error: "Invalid consultation input", Kind: string(protocol.KindInputMalformed)})
		closeNormally(conn)
		drainUntilClosed(conn)
		return
	}
	if unknown := protocol.UnknownValues(in); len(unknown) > 0 {
		logger.Warn("GenerateStream(): values outside catalog forwarded as-is", zap.Strings("values", unknown))
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Client -> Server, 연결 종료 감지 전담
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	result, err := h.service.Generate(ctx, in, func(s protocol.State) {
		send(ProgressFrame{Type: "state", State: s})
	})
	send(ProgressFrame{Type: "state", State: protocol.StateResponded})

	if err != nil {
		if ctx.Err() != nil {
			logger.Info("GenerateStream(): client went away", zap.Error(err))
		} else {
			logger.Error("GenerateStream(): generation failed",
				zap.String("kind", string(protocol.KindOf(err))),
				zap.Error(err))
		}
		body := errorBody(err)
		send(ProgressFrame{Type: "error", Error: body.Error, Kind: body.Kind})
	} else {
		send(ProgressFrame{Type: "result", Result: result})
	}

	closeNormally(conn)
	select {
	case <-readDone:
	case <-time.After(frameWriteWait):
		conn.Close()
		<-readDone
	}
}

// 클라이언트의 close 응답을 기다림
func drainUntilClosed(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(frameWriteWait))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func closeNormally(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(frameWriteWait))
}
