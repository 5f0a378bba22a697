package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Ping(context *gin.Context) {
	time := time.Now().Local()
	context.JSON(http.StatusOK, gin.H{"message": "pong", "local_time": time})
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Evol Jewels AI Stylist API"})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339Nano)})
}
