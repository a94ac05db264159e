package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/service"
	"murmur/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Friend{},
		&models.UserThought{},
		&models.Thought{},
		&models.Reaction{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	validator := validation.New(userRepo)

	s := &Server{
		db:             db,
		userRepo:       userRepo,
		thoughtRepo:    thoughtRepo,
		userService:    service.NewUserService(userRepo, thoughtRepo, validator, time.Minute),
		thoughtService: service.NewThoughtService(thoughtRepo, userRepo, time.Minute),
	}

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestCreateUserHandler(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob",
		"email":    "bob@example.com",
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if body["username"] != "bob" {
		t.Fatalf("expected username bob, got %v", body["username"])
	}
	if friends, ok := body["friends"].([]any); !ok || len(friends) != 0 {
		t.Fatalf("expected empty friends set, got %v", body["friends"])
	}
	if thoughts, ok := body["thoughts"].([]any); !ok || len(thoughts) != 0 {
		t.Fatalf("expected empty thoughts set, got %v", body["thoughts"])
	}
	if body["friendCount"] != float64(0) {
		t.Fatalf("expected friendCount 0, got %v", body["friendCount"])
	}
}

func TestCreateUserHandler_InvalidEmail(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob",
		"email":    "not-an-email",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateUserHandler_DuplicateUsername(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob", "email": "bob@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob", "email": "other@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetUserHandler_NotFound(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["code"] != models.CodeNotFound {
		t.Fatalf("expected code %s, got %v", models.CodeNotFound, body["code"])
	}
}

func TestGetUserHandler_InvalidID(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateUserHandler_PartialUpdatePreservesEmail(t *testing.T) {
	_, app, db := setupHandlerTest(t)

	resp, created := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob", "email": "bob@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	id := uint(created["id"].(float64))

	resp, updated := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", id), fiber.Map{
		"username": "robert",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if updated["username"] != "robert" {
		t.Fatalf("expected username robert, got %v", updated["username"])
	}
	if updated["email"] != "bob@example.com" {
		t.Fatalf("expected email preserved, got %v", updated["email"])
	}

	var stored models.User
	if err := db.First(&stored, id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Email != "bob@example.com" {
		t.Fatalf("expected stored email preserved, got %s", stored.Email)
	}
}

func TestFriendHandlers_SetSemantics(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	_, alice := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "alice", "email": "alice@example.com",
	})
	_, bob := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "bob", "email": "bob@example.com",
	})
	aliceID := uint(alice["id"].(float64))
	bobID := uint(bob["id"].(float64))

	path := fmt.Sprintf("/api/users/%d/friends/%d", aliceID, bobID)

	resp, body := doJSON(t, app, http.MethodPost, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["friendCount"] != float64(1) {
		t.Fatalf("expected friendCount 1, got %v", body["friendCount"])
	}

	// Duplicate add leaves the set unchanged.
	resp, body = doJSON(t, app, http.MethodPost, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on duplicate add, got %d", resp.StatusCode)
	}
	if body["friendCount"] != float64(1) {
		t.Fatalf("expected friendCount still 1, got %v", body["friendCount"])
	}

	// The edge is directional: bob's own set is untouched.
	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["friendCount"] != float64(0) {
		t.Fatalf("expected bob friendCount 0, got %v", body["friendCount"])
	}

	resp, body = doJSON(t, app, http.MethodDelete, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["friendCount"] != float64(0) {
		t.Fatalf("expected friendCount 0 after removal, got %v", body["friendCount"])
	}

	// Removing a non-member is a no-op success.
	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on no-op removal, got %d", resp.StatusCode)
	}
}

func TestAddFriendHandler_Self(t *testing.T) {
	_, app, _ := setupHandlerTest(t)

	_, alice := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"username": "alice", "email": "alice@example.com",
	})
	aliceID := uint(alice["id"].(float64))

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/friends/%d", aliceID, aliceID), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
