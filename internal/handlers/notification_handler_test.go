package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/arifulhb/picstream/backend/internal/models"
)

func TestGetNotifications(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")
	post := env.createPost(alice.ID, "sunset")

	env.follow(bob.ID, alice.ID)
	env.toggleLike(bob.ID, post.ID.Hex())

	c, rec := env.newContext(http.MethodGet, "/api/notifications", nil, alice.ID)
	if status := httpStatus(rec, env.notifHandler.GetNotifications(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var views []NotificationView
	decode(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(views))
	}
	for _, view := range views {
		if view.Sender.Username != "bob" {
			t.Fatalf("expected bob as sender, got %q", view.Sender.Username)
		}
		if view.Message == "" {
			t.Fatal("expected a rendered message")
		}
		if view.NotificationType == models.NotificationTypeLike {
			if view.PostID != post.ID.Hex() || view.PostImage == "" {
				t.Fatalf("expected post context on like notification, got %+v", view)
			}
		}
	}
}

func TestUnreadCountAndMarkAsRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")

	env.follow(bob.ID, alice.ID)

	c, rec := env.newContext(http.MethodGet, "/api/notifications/unread-count", nil, alice.ID)
	if status := httpStatus(rec, env.notifHandler.GetUnreadCount(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var countResp struct {
		Count int64 `json:"count"`
	}
	decode(t, rec, &countResp)
	if countResp.Count != 1 {
		t.Fatalf("expected 1 unread, got %d", countResp.Count)
	}

	notifications, _ := env.notifications.GetByRecipientID(alice.ID)
	id := strconv.FormatUint(uint64(notifications[0].ID), 10)

	c, rec = env.newContext(http.MethodPost, "/api/notifications/"+id+"/read", nil, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if status := httpStatus(rec, env.notifHandler.MarkAsRead(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if count, _ := env.notifications.GetUnreadCount(alice.ID); count != 0 {
		t.Fatalf("expected 0 unread after read, got %d", count)
	}
}

func TestMarkAsReadRejectsForeignNotification(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")

	env.follow(bob.ID, alice.ID)
	notifications, _ := env.notifications.GetByRecipientID(alice.ID)
	id := strconv.FormatUint(uint64(notifications[0].ID), 10)

	// Bob cannot mark alice's notification as read
	c, rec := env.newContext(http.MethodPost, "/api/notifications/"+id+"/read", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if status := httpStatus(rec, env.notifHandler.MarkAsRead(c)); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestMarkAllNotificationsAsRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")
	carol := env.createUser("carol")

	env.follow(bob.ID, alice.ID)
	env.follow(carol.ID, alice.ID)

	c, rec := env.newContext(http.MethodPost, "/api/notifications/read-all", nil, alice.ID)
	if status := httpStatus(rec, env.notifHandler.MarkAllAsRead(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if count, _ := env.notifications.GetUnreadCount(alice.ID); count != 0 {
		t.Fatalf("expected 0 unread, got %d", count)
	}
}
