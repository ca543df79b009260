package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/handler"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestPingRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(handler.NewAPI(setupRouterTestDB(t), handler.Options{}), "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "pong") {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(handler.NewAPI(setupRouterTestDB(t), handler.Options{}), "test-secret")

	for _, path := range []string{"/api/today", "/api/entries", "/api/favorites", "/api/settings", "/api/barcode/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusUnauthorized, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected public health route, got %d", rr.Code)
	}
}

func postJSON(t *testing.T, client *http.Client, target string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := client.Post(target, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

type realtimeMessage struct {
	Type string `json:"type"`
	Data struct {
		WaterCups int `json:"water_cups"`
		Totals    struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
	} `json:"data"`
}

func readEvent(t *testing.T, conn *websocket.Conn) realtimeMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var msg realtimeMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read realtime event: %v", err)
	}
	return msg
}

func TestRealtimePushesAfterMutation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(handler.NewAPI(setupRouterTestDB(t), handler.Options{}), "test-secret")
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	resp := postJSON(t, client, srv.URL+"/api/session", map[string]string{"email": "sam@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected session status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	base, _ := url.Parse(srv.URL)
	header := http.Header{}
	for _, c := range jar.Cookies(base) {
		header.Add("Cookie", c.Name+"="+c.Value)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	initial := readEvent(t, conn)
	if initial.Type != "today" || initial.Data.WaterCups != 0 {
		t.Fatalf("unexpected initial event: %+v", initial)
	}

	resp = postJSON(t, client, srv.URL+"/api/water", map[string]int{"delta": 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected water status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	update := readEvent(t, conn)
	if update.Data.WaterCups != 2 {
		t.Fatalf("expected 2 cups in pushed snapshot, got %d", update.Data.WaterCups)
	}

	resp = postJSON(t, client, srv.URL+"/api/entries", map[string]any{"name": "Apple", "calories": 95})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected entry status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	update = readEvent(t, conn)
	if update.Data.Totals.Calories != 95 {
		t.Fatalf("expected 95 kcal in pushed snapshot, got %v", update.Data.Totals.Calories)
	}
}
