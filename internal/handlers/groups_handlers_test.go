package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/groupshare/backend/internal/middleware"
	"github.com/groupshare/backend/internal/models"
	"github.com/groupshare/backend/internal/services"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("POST /api/groups/ creates group with invite and creator membership", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
			"name":        "  Book Club  ",
			"description": nil,
		}, deviceHeaders("device-creator"))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		groupID, _ := data["id"].(string)
		if !strings.HasPrefix(groupID, "group_") {
			t.Fatalf("expected group_ prefixed id, got %q", groupID)
		}
		if got := data["name"]; got != "Book Club" {
			t.Fatalf("expected trimmed name, got %v", got)
		}
		if _, present := data["description"]; present {
			t.Fatalf("expected description to be omitted, got %v", data["description"])
		}
		inviteCode, _ := data["inviteCode"].(string)
		if len(inviteCode) != 24 {
			t.Fatalf("expected 24-char invite code, got %q", inviteCode)
		}

		var membership models.Membership
		if err := env.db.First(&membership, "group_id = ? AND device_id = ?", groupID, "device-creator").Error; err != nil {
			t.Fatalf("expected creator membership to exist: %v", err)
		}
		if membership.Role != models.RoleCreator {
			t.Fatalf("expected creator role, got %s", membership.Role)
		}
	})

	t.Run("POST /api/groups/ without device id creates no membership", func(t *testing.T) {
		groupID, _ := createTestGroup(t, env.app, "Headless", "")

		var count int64
		if err := env.db.Model(&models.Membership{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
			t.Fatalf("failed counting memberships: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no memberships, got %d", count)
		}
	})

	t.Run("POST /api/groups/ empty name rejected without persisting", func(t *testing.T) {
		var groupsBefore, invitesBefore int64
		env.db.Model(&models.Group{}).Count(&groupsBefore)
		env.db.Model(&models.Invite{}).Count(&invitesBefore)

		for _, name := range []string{"", "   ", "\t\n"} {
			resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
				"name": name,
			}, nil)
			body := decodeJSONMap(t, resp)
			assertStatus(t, resp, http.StatusBadRequest)
			assertEnvelopeError(t, body, "name is required")
		}

		var groupsAfter, invitesAfter int64
		env.db.Model(&models.Group{}).Count(&groupsAfter)
		env.db.Model(&models.Invite{}).Count(&invitesAfter)
		if groupsAfter != groupsBefore || invitesAfter != invitesBefore {
			t.Fatalf("rejected creation must not persist rows: groups %d->%d invites %d->%d",
				groupsBefore, groupsAfter, invitesBefore, invitesAfter)
		}
	})
}

func TestGetGroup(t *testing.T) {
	env := setupTestEnv(t)
	groupID, inviteCode := createTestGroup(t, env.app, "Hiking Crew", "device-1")

	t.Run("GET /api/groups/:id returns group with invite code", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID, nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)

		data := body["data"].(map[string]any)
		if data["id"] != groupID {
			t.Fatalf("expected id %q, got %v", groupID, data["id"])
		}
		if data["inviteCode"] != inviteCode {
			t.Fatalf("expected invite code %q, got %v", inviteCode, data["inviteCode"])
		}
	})

	t.Run("GET /api/groups/:id without invite omits the code", func(t *testing.T) {
		orphan := models.Group{ID: "group_orphan", Name: "No Invite"}
		if err := env.db.Create(&orphan).Error; err != nil {
			t.Fatalf("failed seeding group: %v", err)
		}

		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/group_orphan", nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)

		data := body["data"].(map[string]any)
		if _, present := data["inviteCode"]; present {
			t.Fatalf("expected inviteCode to be absent, got %v", data["inviteCode"])
		}
	})

	t.Run("GET /api/groups/:id unknown id not found", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/group_missing", nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, body, "group not found")
	})
}

func TestListGroups(t *testing.T) {
	env := setupTestEnv(t)

	firstID, _ := createTestGroup(t, env.app, "Group A", "device-1")
	secondID, _ := createTestGroup(t, env.app, "Group B", "device-1")

	resp := performRequest(t, env.app, http.MethodGet, "/api/groups/", nil, nil)
	body := decodeJSONMap(t, resp)
	assertStatus(t, resp, http.StatusOK)

	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(data))
	}

	newest := data[0].(map[string]any)
	oldest := data[1].(map[string]any)
	if newest["id"] != secondID || oldest["id"] != firstID {
		t.Fatalf("expected newest-first order [%s %s], got [%v %v]",
			secondID, firstID, newest["id"], oldest["id"])
	}
}

func TestStorageTimeoutResponses(t *testing.T) {
	env := setupTestEnv(t)

	// Rebuild the handler over a service whose storage budget is already
	// spent by the time any statement runs.
	timedOut := NewGroupsHandler(services.NewGroupService(env.db, time.Nanosecond))

	app := fiber.New()
	app.Use(middleware.DeviceIdentity())
	app.Get("/api/groups/", timedOut.List)
	app.Get("/api/groups/:id", timedOut.Get)
	app.Get("/api/groups/:id/permissions", timedOut.Permissions)

	for _, path := range []string{
		"/api/groups/",
		"/api/groups/group_x",
		"/api/groups/group_x/permissions?device_id=device-1",
	} {
		resp := performRequest(t, app, http.MethodGet, path, nil, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusGatewayTimeout)
		assertEnvelopeError(t, body, "storage timeout")
	}
}

func TestJoinGroup(t *testing.T) {
	env := setupTestEnv(t)
	groupID, inviteCode := createTestGroup(t, env.app, "Runners", "device-owner")

	t.Run("POST /api/groups/join creates member membership", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/join", map[string]any{
			"inviteCode": inviteCode,
		}, deviceHeaders("device-joiner"))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		if data["groupID"] != groupID {
			t.Fatalf("expected group %q, got %v", groupID, data["groupID"])
		}
		if data["role"] != string(models.RoleMember) {
			t.Fatalf("expected member role, got %v", data["role"])
		}
	})

	t.Run("POST /api/groups/join rejects duplicate join", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/join", map[string]any{
			"inviteCode": inviteCode,
			"deviceID":   "device-joiner",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, body, "device is already a member")
	})

	t.Run("POST /api/groups/join unknown code not found", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/join", map[string]any{
			"inviteCode": "definitely-not-a-code",
			"deviceID":   "device-x",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, body, "invite code not found")
	})

	t.Run("POST /api/groups/join requires device id", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/join", map[string]any{
			"inviteCode": inviteCode,
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "device_id is required")
	})

	t.Run("POST /api/groups/join requires invite code", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/join", map[string]any{
			"deviceID": "device-x",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "invite_code is required")
	})
}
