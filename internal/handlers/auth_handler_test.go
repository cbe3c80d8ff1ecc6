package handlers_test

import (
	"net/http"
	"testing"

	"github.com/cukurin/booking-api/internal/models"
)

func TestRegisterUserDuplicateEmail(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	payload := map[string]any{
		"username": "budi",
		"email":    "budi@example.com",
		"password": "secret123",
	}

	w := jsonRequest(t, r, http.MethodPost, "/api/auth/register-user", payload)
	assertStatus(t, w, http.StatusCreated)

	body := parseResponse(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Fatal("expected a token on registration")
	}

	// Second registration with the same email, different username.
	payload["username"] = "budi2"
	w = jsonRequest(t, r, http.MethodPost, "/api/auth/register-user", payload)
	assertStatus(t, w, http.StatusBadRequest)

	body = parseResponse(t, w)
	if body["error_code"] != "user_already_exists" {
		t.Fatalf("expected user_already_exists, got %v", body["error_code"])
	}

	var count int64
	testDB.Model(&models.User{}).Where("email = ?", "budi@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := jsonRequest(t, r, http.MethodPost, "/api/auth/register-user", map[string]any{
		"username": "sari",
		"email":    "  Sari@Example.COM ",
		"password": "secret123",
	})
	assertStatus(t, w, http.StatusCreated)

	var user models.User
	if err := testDB.Where("email = ?", "sari@example.com").First(&user).Error; err != nil {
		t.Fatalf("expected lowercased email to be stored: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("expected role user, got %q", user.Role)
	}
}

func TestRegisterBarberSetsRole(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := jsonRequest(t, r, http.MethodPost, "/api/auth/register-barber", map[string]any{
		"username": "agus",
		"email":    "agus@example.com",
		"password": "secret123",
	})
	assertStatus(t, w, http.StatusCreated)

	var user models.User
	testDB.Where("email = ?", "agus@example.com").First(&user)
	if user.Role != "barber" {
		t.Fatalf("expected role barber, got %q", user.Role)
	}
}

func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	seedUser(t, "budi", "budi@example.com", "secret123", "user")

	wrongPassword := jsonRequest(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "budi@example.com",
		"password": "wrong-password",
	})
	unknownEmail := jsonRequest(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	})

	assertStatus(t, wrongPassword, http.StatusUnauthorized)
	assertStatus(t, unknownEmail, http.StatusUnauthorized)

	a := parseResponse(t, wrongPassword)
	b := parseResponse(t, unknownEmail)
	if a["error_code"] != "invalid_credentials" || b["error_code"] != "invalid_credentials" {
		t.Fatalf("both failures must answer identically, got %v and %v", a["error_code"], b["error_code"])
	}
}

func TestLoginSuccess(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	seedUser(t, "budi", "budi@example.com", "secret123", "barber")

	w := jsonRequest(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "Budi@Example.com",
		"password": "secret123",
	})
	assertStatus(t, w, http.StatusOK)

	body := parseResponse(t, w)
	if body["role"] != "barber" {
		t.Fatalf("expected role barber, got %v", body["role"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatal("expected a token on login")
	}
}

func TestRegisterAdminRequiresElevatedRole(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	admin := seedUser(t, "root", "root@example.com", "secret123", "admin")
	customer := seedUser(t, "budi", "budi@example.com", "secret123", "user")

	payload := map[string]any{
		"username": "newadmin",
		"email":    "newadmin@example.com",
		"password": "secret123",
		"role":     "admin",
	}

	// No token at all.
	w := jsonRequest(t, r, http.MethodPost, "/api/auth/register-admin", payload)
	assertStatus(t, w, http.StatusUnauthorized)

	// Customer tokens are rejected.
	w = jsonRequest(t, r, http.MethodPost, "/api/auth/register-admin", payload,
		"Authorization", "Bearer "+authToken(t, customer))
	assertStatus(t, w, http.StatusForbidden)

	// Admin token works.
	w = jsonRequest(t, r, http.MethodPost, "/api/auth/register-admin", payload,
		"Authorization", "Bearer "+authToken(t, admin))
	assertStatus(t, w, http.StatusCreated)

	// Only barber and admin roles may be created here.
	payload["email"] = "another@example.com"
	payload["role"] = "user"
	w = jsonRequest(t, r, http.MethodPost, "/api/auth/register-admin", payload,
		"Authorization", "Bearer "+authToken(t, admin))
	assertStatus(t, w, http.StatusBadRequest)

	body := parseResponse(t, w)
	if body["error_code"] != "invalid_role" {
		t.Fatalf("expected invalid_role, got %v", body["error_code"])
	}
}

func TestUpdateUserPartial(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	user := seedUser(t, "budi", "budi@example.com", "secret123", "user")

	w := jsonRequest(t, r, http.MethodPut, "/api/auth/"+itoa(user.ID), map[string]any{
		"username": "budi-renamed",
	})
	assertStatus(t, w, http.StatusOK)

	var updated models.User
	testDB.First(&updated, user.ID)
	if updated.Username != "budi-renamed" {
		t.Fatalf("expected renamed user, got %q", updated.Username)
	}
	if updated.Email != "budi@example.com" {
		t.Fatalf("email must be untouched, got %q", updated.Email)
	}

	// The old password still works after a name-only update.
	w = jsonRequest(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "budi@example.com",
		"password": "secret123",
	})
	assertStatus(t, w, http.StatusOK)
}

func TestDeleteUserNotFound(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := jsonRequest(t, r, http.MethodDelete, "/api/auth/99999", nil)
	assertStatus(t, w, http.StatusNotFound)
}
