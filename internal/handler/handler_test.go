package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"score-server/internal/authutils"
	"score-server/internal/config"
	"score-server/internal/handler"
	"score-server/internal/models"
	"score-server/internal/neynar"
	"score-server/internal/service"
	"score-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testApp bundles the router with the stubs behind it.
type testApp struct {
	router       *gin.Engine
	store        *store.MemoryStore
	gatewayCalls *atomic.Int64
	gatewayURL   string
	lastPush     *models.PushRequest
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		store:        store.NewMemoryStore(zap.NewNop()),
		gatewayCalls: &atomic.Int64{},
		lastPush:     &models.PushRequest{},
	}

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.gatewayCalls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(app.lastPush))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"successfulTokens":["t"]}}`))
	}))
	t.Cleanup(gateway.Close)
	app.gatewayURL = gateway.URL

	neynarStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/user/bulk":
			w.Write([]byte(`{"users":[{"fid":3,"username":"dwr.eth","experimental":{"neynar_user_score":0.97}}]}`))
		case "/user/by_username":
			w.Write([]byte(`{"user":null}`))
		case "/user/search":
			w.Write([]byte(`{"result":{"users":[{"fid":3,"username":"dwr.eth"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(neynarStub.Close)

	cfg := &config.Config{
		AppURL:             "https://app.example.com",
		CORSAllowedOrigins: "*",
	}
	httpClient := &http.Client{Timeout: 5 * time.Second}
	webhookProcessor := service.NewWebhookProcessor(app.store, zap.NewNop())
	dispatcher := service.NewDispatcher(app.store, httpClient, cfg.AppURL, zap.NewNop())
	neynarClient := neynar.NewClient(httpClient, neynarStub.URL, "test-key", zap.NewNop())
	verifier := authutils.NewQuickAuthVerifier(zap.NewNop())

	h := handler.NewHandler(app.store, webhookProcessor, dispatcher, neynarClient, verifier, cfg, zap.NewNop())

	router := gin.New()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))
	h.RegisterRoutes(router)
	app.router = router
	return app
}

func (a *testApp) do(t *testing.T, method, target string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func encodeEnvelope(t *testing.T, payload models.WebhookPayload) map[string]string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return map[string]string{
		"header":    "eyJmaWQiOjF9",
		"payload":   base64.StdEncoding.EncodeToString(raw),
		"signature": "sig",
	}
}

func TestWebhook_DirectReport(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/webhook", map[string]interface{}{
		"event": "frame_added",
		"fid":   42,
		"notificationDetails": map[string]string{
			"url":   "https://api.farcaster.xyz/v1/push",
			"token": "tok",
		},
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Notification details saved"}`, w.Body.String())

	has, err := app.store.Has(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestWebhook_EnvelopeRemove(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Set(context.Background(), 42, models.NotificationDetails{URL: "https://e", Token: "t"}))

	w := app.do(t, http.MethodPost, "/api/webhook",
		encodeEnvelope(t, models.WebhookPayload{Event: "frame_removed", FID: 42}), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	has, err := app.store.Has(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWebhook_EnvelopeUnknownEvent(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Set(context.Background(), 42, models.NotificationDetails{URL: "https://e", Token: "t"}))

	w := app.do(t, http.MethodPost, "/api/webhook",
		encodeEnvelope(t, models.WebhookPayload{Event: "something_else", FID: 42}), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	count, err := app.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWebhook_EnvelopeUndecodablePayload(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/webhook", map[string]string{
		"header":    "eyJmaWQiOjF9",
		"payload":   "%%%not-base64%%%",
		"signature": "sig",
	}, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Webhook processing failed"}`, w.Body.String())

	count, err := app.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestWebhook_InvalidBody(t *testing.T) {
	app := newTestApp(t)

	// Neither variant matches: no event/fid/notificationDetails, no envelope.
	w := app.do(t, http.MethodPost, "/api/webhook", map[string]string{"hello": "world"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	count, err := app.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestWebhook_CORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/webhook", nil)
	req.Header.Set("Origin", "https://client.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestSendNotification_ExplicitDetails(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/notification", map[string]interface{}{
		"fid": 123,
		"notificationDetails": map[string]string{
			"url":   app.gatewayURL,
			"token": "t",
		},
		"title": "Hi",
		"body":  "there",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Result  json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Result)

	assert.Equal(t, int64(1), app.gatewayCalls.Load())
	assert.Equal(t, []string{"t"}, app.lastPush.Tokens)
	assert.Equal(t, "Hi", app.lastPush.Title)
	assert.Equal(t, "there", app.lastPush.Body)
}

func TestSendNotification_NoDetails(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/notification", map[string]interface{}{
		"fid":   123,
		"title": "Hi",
		"body":  "there",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no notification details")
	assert.Equal(t, int64(0), app.gatewayCalls.Load())
}

func TestSendNotification_MissingTitle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/notification", map[string]interface{}{
		"fid":  123,
		"body": "there",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), app.gatewayCalls.Load())
}

func TestNotificationStatus(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.Set(context.Background(), 42, models.NotificationDetails{URL: "https://e", Token: "t"}))

	t.Run("registered fid", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/notification?fid=42", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"fid":42,"notificationsEnabled":true,"totalUsersWithNotifications":1}`, w.Body.String())
	})

	t.Run("unregistered fid", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/notification?fid=7", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"fid":7,"notificationsEnabled":false,"totalUsersWithNotifications":1}`, w.Body.String())
	})

	t.Run("missing fid", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/notification", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)

	t.Run("by fid", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/user?fid=3", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User  models.UserProfile `json:"user"`
			Score struct {
				Level       string   `json:"level"`
				Label       string   `json:"label"`
				Color       string   `json:"color"`
				Description string   `json:"description"`
				Tips        []string `json:"tips"`
			} `json:"score"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.User.FID)
		assert.Equal(t, 0.97, resp.User.NeynarScore)
		assert.Equal(t, "excellent", resp.Score.Level)
		assert.Equal(t, "Excellent", resp.Score.Label)
		assert.Equal(t, "#10b981", resp.Score.Color)
		assert.NotEmpty(t, resp.Score.Description)
		assert.NotEmpty(t, resp.Score.Tips)
	})

	t.Run("unknown username", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/user?username=nobody", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing params", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/user", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchUsers(t *testing.T) {
	app := newTestApp(t)

	t.Run("valid query", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/user", map[string]interface{}{"query": "dwr"}, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Users []models.UserProfile `json:"users"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "dwr.eth", resp.Users[0].Username)
	})

	t.Run("missing query", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/user", map[string]interface{}{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyToken(t *testing.T) {
	app := newTestApp(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "12345",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("any"))
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/verify", nil, map[string]string{
			"Authorization": "Bearer " + signed,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"verified":true`)
		assert.Contains(t, w.Body.String(), `"fid":"12345"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/verify", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestManifest(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/.well-known/farcaster.json", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	var manifest struct {
		AccountAssociation map[string]string      `json:"accountAssociation"`
		Frame              map[string]interface{} `json:"frame"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, "Neynar Score", manifest.Frame["name"])
	assert.Equal(t, "https://app.example.com/api/webhook", manifest.Frame["webhookUrl"])
}
