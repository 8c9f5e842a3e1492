package main

import (
	_ "SkinProtocol_Backend/docs"
	"SkinProtocol_Backend/internal/auth"
	"SkinProtocol_Backend/internal/config"
	"SkinProtocol_Backend/internal/handler"
	"SkinProtocol_Backend/internal/llm"
	"SkinProtocol_Backend/internal/logger"
	"SkinProtocol_Backend/internal/middleware"
	"SkinProtocol_Backend/internal/protocol"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title                       SkinProtocol API
// @version                     1.0
// @description                 피부 상담 입력을 받아 AM/PM 스킨케어 프로토콜을 생성하는 API
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		zl.Fatal("failed to create generator", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}
	service := protocol.NewService(generator, cfg.LLM.Timeout, zl)

	var issuer *auth.TokenIssuer
	if cfg.Auth.Required {
		issuer, err = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			zl.Fatal("failed to create token issuer", zap.Error(err))
		}
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// 클라이언트 IP 가명화 키 (프로세스마다 새로 생성)
	fingerprintKey := uuid.New()
	router.Use(middleware.RequestLogger(zl, fingerprintKey[:]))
	router.Use(cors.New(corsConfig(cfg.CORS)))

	handler.New(service, issuer, zl).Register(router,
		middleware.RateLimit(cfg.Limit),
		middleware.AuthMiddleware(issuer),
	)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", service.Provider()),
			zap.Bool("authRequired", cfg.Auth.Required))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

func corsConfig(c config.CORSConfig) cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	conf.ExposeHeaders = []string{middleware.RequestIDHeader}

	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			conf.AllowAllOrigins = true
			return conf
		}
	}
	conf.AllowOrigins = c.AllowOrigins
	return conf
}
