package handlers

import (
	"log"
	"net/http"

	"github.com/Jamuna1221/WattLab/natsserver"
	"github.com/Jamuna1221/WattLab/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	feedHub    *services.FeedHub
	natsServer *natsserver.EmbeddedNATS
	upgrader   = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // CORS policy is enforced on the API group
		},
	}
)

// SetFeedHub sets the feed hub for the handlers
func SetFeedHub(hub *services.FeedHub) {
	feedHub = hub
}

// SetEmbeddedNATS sets the NATS server whose stats the feed endpoint reports
func SetEmbeddedNATS(ns *natsserver.EmbeddedNATS) {
	natsServer = ns
}

// HandleFeedWebSocket handles GET /ws/feed - live readings and alerts for
// the authenticated user
func HandleFeedWebSocket(c *gin.Context) {
	if feedHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed hub not initialized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := services.NewFeedClient(feedHub, conn, currentUserID(c), c.ClientIP())

	feedHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// GetFeedStats handles GET /api/feed/stats
func GetFeedStats(c *gin.Context) {
	if feedHub == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	stats := feedHub.Stats()
	resp := gin.H{
		"enabled":       true,
		"clients":       stats.Clients,
		"subscriptions": stats.Subscriptions,
	}
	if natsServer != nil {
		resp["nats"] = natsServer.GetStats()
	}
	c.JSON(http.StatusOK, resp)
}
