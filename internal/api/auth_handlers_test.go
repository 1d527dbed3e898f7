package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/terraincognita07/flarewatch/internal/models"
)

func TestSetupLoginAndSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	status := map[string]bool{}
	decodeBody(t, doJSON(t, app, http.MethodGet, "/api/auth/setup-status", nil, ""), &status)
	if !status["requires_setup"] {
		t.Fatal("expected setup to be required on an empty database")
	}

	setupCookie := setupOwnerCookie(t, app)

	again := doJSON(t, app, http.MethodPost, "/api/auth/setup", map[string]string{
		"email":    "second@example.com",
		"password": testOwnerPassword,
	}, "")
	if again.StatusCode != http.StatusConflict {
		t.Fatalf("expected second setup status 409, got %d", again.StatusCode)
	}
	again.Body.Close()

	wrong := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testOwnerEmail,
		"password": "WrongPass1",
	}, "")
	if wrong.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected wrong password status 401, got %d", wrong.StatusCode)
	}
	if message := readAPIError(t, wrong); message != "invalid credentials" {
		t.Fatalf("expected invalid credentials error, got %q", message)
	}

	login := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "  OWNER@example.com ",
		"password": testOwnerPassword,
	}, "")
	login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", login.StatusCode)
	}
	cookie := responseCookie(login.Cookies(), authCookieName)
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("expected http-only auth cookie, got %#v", cookie)
	}

	for _, sessionCookie := range []string{setupCookie, cookie.Name + "=" + cookie.Value} {
		me := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, sessionCookie)
		me.Body.Close()
		if me.StatusCode != http.StatusOK {
			t.Fatalf("expected /api/auth/me status 200, got %d", me.StatusCode)
		}
	}

	anonymous := doJSON(t, app, http.MethodGet, "/api/profile", nil, "")
	if anonymous.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected anonymous status 401, got %d", anonymous.StatusCode)
	}
	if message := readAPIError(t, anonymous); message != "unauthorized" {
		t.Fatalf("expected unauthorized error, got %q", message)
	}
}

func TestSetupRejectsWeakPassword(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodPost, "/api/auth/setup", map[string]string{
		"email":    testOwnerEmail,
		"password": "short",
	}, "")
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response); message != "weak password" {
		t.Fatalf("expected weak password error, got %q", message)
	}
}

func TestLoginIsRateLimitedAfterFailures(t *testing.T) {
	app, handler, _ := newTestApp(t)
	handler.loginLimiter = newAttemptLimiter(2, time.Hour)
	setupOwnerCookie(t, app)

	for attempt := 0; attempt < 2; attempt++ {
		response := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    testOwnerEmail,
			"password": "WrongPass1",
		}, "")
		response.Body.Close()
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", attempt, response.StatusCode)
		}
	}

	blocked := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testOwnerEmail,
		"password": testOwnerPassword,
	}, "")
	blocked.Body.Close()
	if blocked.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", blocked.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	app, _, _ := newTestApp(t)
	cookie := setupOwnerCookie(t, app)

	tests := []struct {
		name    string
		current string
		next    string
		status  int
	}{
		{name: "wrong current password", current: "WrongPass1", next: "NewStrong2", status: http.StatusUnauthorized},
		{name: "same password", current: testOwnerPassword, next: testOwnerPassword, status: http.StatusBadRequest},
		{name: "weak new password", current: testOwnerPassword, next: "weak", status: http.StatusBadRequest},
		{name: "valid change", current: testOwnerPassword, next: "NewStrong2", status: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPost, "/api/auth/change-password", map[string]string{
				"current_password": testCase.current,
				"new_password":     testCase.next,
			}, cookie)
			response.Body.Close()
			if response.StatusCode != testCase.status {
				t.Fatalf("expected status %d, got %d", testCase.status, response.StatusCode)
			}
		})
	}

	login := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testOwnerEmail,
		"password": "NewStrong2",
	}, "")
	login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Fatalf("expected login with new password to succeed, got %d", login.StatusCode)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, "")
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value != "" {
		t.Fatalf("expected cleared auth cookie, got %#v", cookie)
	}
}

func TestPendingPasswordChangeRestrictsSession(t *testing.T) {
	app, handler, _ := newTestApp(t)
	cookie := setupOwnerCookie(t, app)

	if err := handler.db.Model(&models.User{}).Where("email = ?", testOwnerEmail).Update("must_change_password", true).Error; err != nil {
		t.Fatalf("flag owner: %v", err)
	}

	blocked := doJSON(t, app, http.MethodGet, "/api/profile", nil, cookie)
	if blocked.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", blocked.StatusCode)
	}
	if message := readAPIError(t, blocked); message != "password change required" {
		t.Fatalf("expected password change required, got %q", message)
	}

	me := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, cookie)
	payload := struct {
		User userResponse `json:"user"`
	}{}
	decodeBody(t, me, &payload)
	if me.StatusCode != http.StatusOK || !payload.User.MustChangePassword {
		t.Fatalf("expected me to report the pending change, got %d %+v", me.StatusCode, payload.User)
	}

	change := doJSON(t, app, http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": testOwnerPassword,
		"new_password":     "NewStrong2",
	}, cookie)
	change.Body.Close()
	if change.StatusCode != http.StatusOK {
		t.Fatalf("expected change password status 200, got %d", change.StatusCode)
	}

	allowed := doJSON(t, app, http.MethodGet, "/api/profile", nil, cookie)
	allowed.Body.Close()
	if allowed.StatusCode != http.StatusOK {
		t.Fatalf("expected profile status 200 after change, got %d", allowed.StatusCode)
	}
}
