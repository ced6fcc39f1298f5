package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ankijung88-cloud/Multi-mall-project-sub000/models"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/services"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/storage"
	"github.com/ankijung88-cloud/Multi-mall-project-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"go.uber.org/zap"
)

// buildTestApp creates a minimal Iris app with the admin request routes and
// a file-backed registry, no database needed.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	store := storage.NewFileRequestStore(filepath.Join(t.TempDir(), "requests.json"), zap.NewNop())
	InitializeServices(store, nil, services.NewNotificationService(zap.NewNop()))

	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/requests", AdminListRequests)
		admin.Get("/requests/{id:uint}", AdminGetRequest)
		admin.Patch("/requests/{id:uint}/status", AdminUpdateRequestStatus)
		admin.Get("/users", utils.SuperAdminOnlyMiddleware, AdminListUsers)
	}
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role and target scope
func signTestToken(role string, targetID uint) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role, TargetID: targetID})
	return string(token)
}

func seedRequests(t *testing.T) {
	t.Helper()
	seed := []models.Request{
		{Kind: models.RequestKindPartner, TargetID: 1, UserID: 10, UserName: "김민지", ScheduleTitle: "원데이 클래스"},
		{Kind: models.RequestKindPartner, TargetID: 2, UserID: 11, UserName: "이서준", ScheduleTitle: "쿠킹 클래스"},
		{Kind: models.RequestKindAgent, TargetID: 1, UserID: 12, UserName: "박지훈", ScheduleTitle: "공연 예약"},
	}
	for i := range seed {
		if err := requestStore.Add(&seed[i]); err != nil {
			t.Fatalf("seed request: %v", err)
		}
	}
}

func TestAdminRequestsRBAC(t *testing.T) {
	app := buildTestApp(t)

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Member role -> 403
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user", 0))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member role, got %d", resp2.Code)
	}

	// Partner role on a super-only route -> 403
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(models.RolePartner, 1))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for partner on super-only route, got %d", resp3.Code)
	}
}

func TestAdminRequestsScopedVisibility(t *testing.T) {
	app := buildTestApp(t)
	seedRequests(t)

	// Partner admin scoped to target 1 sees only its own partner requests
	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(models.RolePartner, 1))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data []models.Request `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("expected 1 visible request, got %d", len(body.Data))
	}
	if body.Data[0].Kind != models.RequestKindPartner || body.Data[0].TargetID != 1 {
		t.Fatalf("wrong request visible: kind=%s target=%d", body.Data[0].Kind, body.Data[0].TargetID)
	}

	// Super sees everything
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(models.RoleSuper, 0))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 for super, got %d", resp2.Code)
	}
	var superBody struct {
		Data []models.Request `json:"data"`
	}
	if err := json.Unmarshal(resp2.Body.Bytes(), &superBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(superBody.Data) != 3 {
		t.Fatalf("expected 3 requests for super, got %d", len(superBody.Data))
	}
}

func TestAdminRequestsOutOfScopeIs404(t *testing.T) {
	app := buildTestApp(t)
	seedRequests(t)

	// Partner target 2's request is invisible to partner target 1
	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests/2", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(models.RolePartner, 1))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for out-of-scope request, got %d", resp.Code)
	}
}

func TestAdminRequestStatusTransitions(t *testing.T) {
	app := buildTestApp(t)
	seedRequests(t)

	patch := func(id, status, role string, targetID uint) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/requests/"+id+"/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signTestToken(role, targetID))
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		return resp
	}

	// Status outside the partner vocabulary -> 422
	if resp := patch("1", "rejected", models.RoleSuper, 0); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid status, got %d", resp.Code)
	}

	// Valid transition
	if resp := patch("1", "approved", models.RoleSuper, 0); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid status, got %d: %s", resp.Code, resp.Body.String())
	}
	updated, err := requestStore.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Status != "approved" {
		t.Fatalf("expected status approved, got %s", updated.Status)
	}

	// Repeating the same status is a no-op success
	if resp := patch("1", "approved", models.RoleSuper, 0); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for idempotent status, got %d", resp.Code)
	}
}
