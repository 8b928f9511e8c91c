package controllers

import (
	"net/http"
	"time"

	"balance/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // same-host SPA, tighten behind a proxy if needed
}

const keepAliveInterval = 25 * time.Second

// MealEventsWS keeps a socket open per view; the hub pushes
// meals.changed markers whenever this user's data mutates.
func (rc *RealtimeController) MealEventsWS(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(userID, conn)
	rc.Hub.Register(cl)
	defer rc.Hub.Unregister(cl)

	stop := make(chan struct{})
	defer close(stop)
	go keepAlive(cl, stop)

	cl.WaitClosed()
}

// keepAlive pings through the client's serialized writer so the
// ticker never races a broadcast on the same socket.
func keepAlive(cl *services.WSClient, stop <-chan struct{}) {
	t := time.NewTicker(keepAliveInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := cl.Ping(); err != nil {
				return
			}
		}
	}
}
