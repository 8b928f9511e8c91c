package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"balance/controllers"
	"balance/middlewares"
	"balance/services"
	"balance/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestMealEventsWS(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	hub := services.NewRealtimeHub()
	r := gin.New()
	r.GET("/api/v1/balance/ws", middlewares.AuthMiddleware(), controllers.NewRealtimeController(hub).MealEventsWS)

	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := utils.GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/balance/ws"
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// the handler registers the client just after the handshake
	// completes, so keep notifying until the frame comes through
	done := make(chan struct{})
	defer close(done)
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				hub.NotifyMealsChanged(42)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event map[string]string
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("bad frame %q: %v", msg, err)
	}
	if event["kind"] != "meals.changed" {
		t.Fatalf("event = %v", event)
	}
}

func TestMealEventsWSRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	hub := services.NewRealtimeHub()
	r := gin.New()
	r.GET("/api/v1/balance/ws", middlewares.AuthMiddleware(), controllers.NewRealtimeController(hub).MealEventsWS)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/balance/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial should fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("resp = %+v", resp)
	}
}
