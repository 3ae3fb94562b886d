package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// manifest serves the Farcaster mini app manifest: the account association
// triple issued for this domain plus the frame descriptor clients use for
// discovery, splash screens and the notification webhook URL.
func (h *Handler) manifest(c *gin.Context) {
	appURL := h.cfg.AppURL

	manifest := gin.H{
		"accountAssociation": gin.H{
			"header":    h.cfg.FarcasterHeader,
			"payload":   h.cfg.FarcasterPayload,
			"signature": h.cfg.FarcasterSignature,
		},
		"frame": gin.H{
			"version":               "1",
			"name":                  "Neynar Score",
			"iconUrl":               appURL + "/images/icon.png",
			"homeUrl":               appURL,
			"splashImageUrl":        appURL + "/images/splash.png",
			"splashBackgroundColor": "#0f0f1a",
			"webhookUrl":            appURL + "/api/webhook",
			"subtitle":        "Check your Farcaster score",
			"description":     "Discover your Neynar score - a reputation metric based on your Farcaster activity, engagement, and network quality. Share your score with friends!",
			"primaryCategory": "social",
			"tags":            []string{"reputation", "score", "neynar", "analytics", "farcaster"},
			"screenshotUrls": []string{
				appURL + "/images/screenshot-1.png",
				appURL + "/images/screenshot-2.png",
				appURL + "/images/screenshot-3.png",
			},
			"heroImageUrl":  appURL + "/images/hero.png",
			"tagline":       "Know your Farcaster reputation",
			"ogTitle":       "Neynar Score",
			"ogDescription": "Check your Farcaster reputation score powered by Neynar",
			"ogImageUrl":    appURL + "/images/og-image.png",
			"imageUrl":      appURL + "/images/og-image.png",
			"buttonTitle":   "🔮 Check Score",
		},
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, manifest)
}
