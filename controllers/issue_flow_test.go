package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcity-be/config"
	"smartcity-be/controllers"
	"smartcity-be/issues"
	"smartcity-be/models"
	"smartcity-be/reference"
	"smartcity-be/routes"
	"smartcity-be/storage"
	"smartcity-be/users"
	authUtils "smartcity-be/utils"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemory()
	log := zerolog.Nop()
	cfg := config.Config{JWTSecret: testSecret}

	issueSvc := issues.NewService(issues.NewRepository(store), nil, log)
	userRepo := users.NewRepository(store)
	refRepo := reference.NewRepository(store)

	r := gin.New()
	routes.AuthRoutes(r, controllers.NewAuthController(userRepo, cfg, log), testSecret)
	routes.IssueRoutes(r, controllers.NewIssueController(issueSvc, log), testSecret, nil, 0)
	routes.AdminRoutes(r, controllers.NewAdminController(issueSvc, log), controllers.NewAuthController(userRepo, cfg, log), testSecret)
	routes.ReferenceRoutes(r, controllers.NewReferenceController(refRepo, log), testSecret)
	return r
}

func tokenFor(t *testing.T, actor models.Actor) string {
	t.Helper()
	token, err := authUtils.GenerateToken(testSecret, actor)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := tokenFor(t, models.Actor{Name: "Alice", Role: models.RoleUser})
	adminToken := tokenFor(t, models.Actor{Name: "City Admin", Role: models.RoleAdmin})

	// Unauthenticated create is rejected.
	w := doJSON(t, r, http.MethodPost, "/api/issue/create", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Alice files an issue and gets a reference code back.
	w = doJSON(t, r, http.MethodPost, "/api/issue/create", aliceToken, gin.H{
		"name":        "Alice",
		"phone":       "5551234567",
		"category":    "pothole",
		"location":    "Main St",
		"description": "Large pothole blocking traffic",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Issue models.Issue `json:"issue"`
		RefID string       `json:"refId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.Pending, created.Issue.Status)
	assert.Contains(t, created.RefID, "SC")
	id := created.Issue.ID

	// Alice cannot use the admin transitions.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/issue/%d/resolve", id), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin attaches a solution and resolves.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/issue/%d/solution", id), adminToken, gin.H{"solution": "Filled and resealed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/issue/%d/resolve", id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Resolving twice is a 403 per the state machine.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/issue/%d/resolve", id), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice's badge shows the unseen update until she lists her issues.
	w = doJSON(t, r, http.MethodGet, "/api/issue/badge", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var badge issues.Badge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badge))
	assert.Equal(t, 1, badge.Count)

	w = doJSON(t, r, http.MethodGet, "/api/issue/mine", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/issue/badge", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badge))
	assert.Equal(t, 0, badge.Count)
	assert.False(t, badge.Show)

	// Rating zero is a validation error, 4 sticks, 5 is rejected.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/issue/%d/rate", id), aliceToken, gin.H{"rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/issue/%d/rate", id), aliceToken, gin.H{"rating": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/issue/%d/rate", id), aliceToken, gin.H{"rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin completes; delete is idempotent at the HTTP layer too.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/issue/%d/complete", id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/issue/%d", id), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/issue/%d", id), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate email is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alice Two",
		"email":    "alice@example.com",
		"password": "hunter23",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string      `json:"token"`
		Role  models.Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleUser, login.Role)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestReferenceEndpoints(t *testing.T) {
	r := newTestRouter(t)
	aliceToken := tokenFor(t, models.Actor{Name: "Alice", Role: models.RoleUser})
	adminToken := tokenFor(t, models.Actor{Name: "City Admin", Role: models.RoleAdmin})

	// Public read of an empty list.
	w := doJSON(t, r, http.MethodGet, "/api/reference/alerts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// Writes are admin-only.
	w = doJSON(t, r, http.MethodPost, "/api/admin/reference/alerts", aliceToken, gin.H{
		"type": "traffic", "message": "Parade downtown on Saturday",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/reference/alerts", adminToken, gin.H{
		"type": "traffic", "message": "Parade downtown on Saturday",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/reference/alerts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Parade downtown")

	// Unknown kinds 404.
	w = doJSON(t, r, http.MethodGet, "/api/reference/weather", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
