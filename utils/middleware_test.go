package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with role-guarded routes and a
// JWT verifier, mirroring the production wiring.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(AccessToken) })

	ok := func(ctx iris.Context) { ctx.JSON(iris.Map{"success": true}) }

	app.Get("/tenant-only", accessTokenVerifierMiddleware, TenantOnlyMiddleware, ok)
	app.Get("/owner-only", accessTokenVerifierMiddleware, OwnerOnlyMiddleware, ok)
	app.Get("/optional", OptionalUserIDMiddleware, func(ctx iris.Context) {
		if viewerID := ctx.Values().Get("userID"); viewerID != nil {
			ctx.JSON(iris.Map{"userID": viewerID.(uint)})
			return
		}
		ctx.JSON(iris.Map{"userID": nil})
	})
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(AccessToken{ID: 1, Role: role})
	return string(token)
}

func request(t *testing.T, app *iris.Application, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp.Code
}

func TestTenantOnlyMiddleware(t *testing.T) {
	app := buildTestApp()

	if code := request(t, app, "/tenant-only", ""); code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", code)
	}
	if code := request(t, app, "/tenant-only", signTestToken("owner")); code != http.StatusForbidden {
		t.Fatalf("expected 403 for owner role, got %d", code)
	}
	if code := request(t, app, "/tenant-only", signTestToken("tenant")); code != http.StatusOK {
		t.Fatalf("expected 200 for tenant role, got %d", code)
	}
}

func TestOptionalUserIDMiddleware(t *testing.T) {
	app := buildTestApp()

	// Anonymous requests pass through with no userID set
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, `"userID":null`) {
		t.Fatalf("expected no userID for anonymous request, got %s", body)
	}

	// A garbage token is treated as anonymous, not rejected
	req2 := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req2.Header.Set("Authorization", "Bearer not-a-token")
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 with invalid token, got %d", resp2.Code)
	}
	if body := resp2.Body.String(); !strings.Contains(body, `"userID":null`) {
		t.Fatalf("expected no userID for invalid token, got %s", body)
	}

	// A valid token makes the viewer identity available
	req3 := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("tenant"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", resp3.Code)
	}
	if body := resp3.Body.String(); !strings.Contains(body, `"userID":1`) {
		t.Fatalf("expected userID 1 for valid token, got %s", body)
	}
}

func TestOwnerOnlyMiddleware(t *testing.T) {
	app := buildTestApp()

	if code := request(t, app, "/owner-only", signTestToken("tenant")); code != http.StatusForbidden {
		t.Fatalf("expected 403 for tenant role, got %d", code)
	}
	if code := request(t, app, "/owner-only", signTestToken("owner")); code != http.StatusOK {
		t.Fatalf("expected 200 for owner role, got %d", code)
	}
}
