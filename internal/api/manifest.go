package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// webManifest is served at /manifest.webmanifest so the client can be
// installed to a phone home screen.
var webManifest = gin.H{
	"name":             "Gym Tracker",
	"short_name":       "Gym Tracker",
	"description":      "Track workouts, plans and progress with your training partners",
	"start_url":        "/",
	"display":          "standalone",
	"background_color": "#0f172a",
	"theme_color":      "#0f172a",
	"icons": []gin.H{
		{"src": "/icons/icon-192.png", "sizes": "192x192", "type": "image/png"},
		{"src": "/icons/icon-512.png", "sizes": "512x512", "type": "image/png"},
	},
}

// Manifest serves the PWA manifest with its proper content type.
func Manifest(c *gin.Context) {
	c.Header("Content-Type", "application/manifest+json")
	c.JSON(http.StatusOK, webManifest)
}
