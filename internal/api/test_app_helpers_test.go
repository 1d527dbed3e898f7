package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/db"
)

const (
	testOwnerEmail    = "owner@example.com"
	testOwnerPassword = "StrongPass1"
)

type recordingTracker struct {
	events []activity.Event
}

func (tracker *recordingTracker) Track(event activity.Event) {
	tracker.events = append(tracker.events, event)
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *recordingTracker) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "flarewatch-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	tracker := &recordingTracker{}
	handler, err := NewHandler(database, "test-secret-key", time.UTC, false, tracker)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, tracker
}

func doJSON(t *testing.T, app *fiber.App, method string, target string, payload interface{}, cookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, target interface{}) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, response, &payload)
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// setupOwnerCookie creates the owner account and returns its auth cookie
// header value.
func setupOwnerCookie(t *testing.T, app *fiber.App) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/setup", map[string]string{
		"email":    testOwnerEmail,
		"password": testOwnerPassword,
	}, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected setup status 201, got %d", response.StatusCode)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in setup response")
	}
	return cookie.Name + "=" + cookie.Value
}

func todayString() string {
	return time.Now().UTC().Format(dayLayout)
}
