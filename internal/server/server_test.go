package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"montage/internal/config"
	"montage/internal/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, Mode: "test"},
		Timeline: config.TimelineConfig{DefaultFPS: 30, BGMFadeMs: 120, OverlayFadeMs: 150, SampleWorkers: 2},
	}
}

func TestServerRoutes(t *testing.T) {
	Convey("未配置任何外部依赖时服务器仍可启动", t, func() {
		srv, err := New(testConfig())
		So(err, ShouldBeNil)

		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)

		w = httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		So(w.Code, ShouldEqual, http.StatusOK)

		w = httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/p1", nil))
		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
	})

	Convey("配置 JWT 密钥后 API 需要认证", t, func() {
		cfg := testConfig()
		cfg.Auth = config.AuthConfig{JWTSecret: "secret", Issuer: "montage", AccessTokenExpiry: time.Hour}
		srv, err := New(cfg)
		So(err, ShouldBeNil)

		body := []byte(`{"document":{"schema_version":"3","settings":{"fps":30},"scenes":[]}}`)

		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/timelines", bytes.NewReader(body)))
		So(w.Code, ShouldEqual, http.StatusUnauthorized)

		token, err := jwt.NewJWT("secret", "montage", time.Hour).GenerateToken("u1", "api")
		So(err, ShouldBeNil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/timelines", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusOK)

		// 健康检查不需要认证
		w = httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		So(w.Code, ShouldEqual, http.StatusOK)
	})
}
