package repositories

import (
	"testing"

	"github.com/arifulhb/picstream/backend/internal/models"
)

func TestCreateNotificationDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	event := &models.Notification{
		RecipientID: alice.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationTypeComment,
		PostID:      testPostID,
	}

	created, err := repo.CreateNotification(event)
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if !created {
		t.Fatal("expected first notification to be created")
	}

	created, err = repo.CreateNotification(&models.Notification{
		RecipientID: alice.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationTypeComment,
		PostID:      testPostID,
	})
	if err != nil {
		t.Fatalf("CreateNotification (repeat): %v", err)
	}
	if created {
		t.Fatal("expected identical event to collapse into the existing row")
	}

	// A different post is a different event
	created, err = repo.CreateNotification(&models.Notification{
		RecipientID: alice.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationTypeComment,
		PostID:      "64f0c2a9e13e4a2b9c8d7e70",
	})
	if err != nil {
		t.Fatalf("CreateNotification (other post): %v", err)
	}
	if !created {
		t.Fatal("expected a different post to create a new notification")
	}

	notifications, err := repo.GetByRecipientID(alice.ID)
	if err != nil {
		t.Fatalf("GetByRecipientID: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
}

func TestDeleteNotification(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	repo.CreateNotification(&models.Notification{
		RecipientID: alice.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationTypeLike,
		PostID:      testPostID,
	})

	if err := repo.DeleteNotification(alice.ID, bob.ID, models.NotificationTypeLike, testPostID); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}

	notifications, _ := repo.GetByRecipientID(alice.ID)
	if len(notifications) != 0 {
		t.Fatalf("expected notification to be removed, got %d rows", len(notifications))
	}
}

func TestMarkAsReadRequiresRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	repo.CreateNotification(&models.Notification{
		RecipientID: alice.ID,
		SenderID:    bob.ID,
		Type:        models.NotificationTypeFollow,
	})

	notifications, _ := repo.GetByRecipientID(alice.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	id := notifications[0].ID

	if err := repo.MarkAsRead(id, bob.ID); err != ErrNotificationNotFound {
		t.Fatalf("expected ErrNotificationNotFound for foreign recipient, got %v", err)
	}

	if err := repo.MarkAsRead(id, alice.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	count, err := repo.GetUnreadCount(alice.ID)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread, got %d", count)
	}
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	repo.CreateNotification(&models.Notification{RecipientID: alice.ID, SenderID: bob.ID, Type: models.NotificationTypeFollow})
	repo.CreateNotification(&models.Notification{RecipientID: alice.ID, SenderID: carol.ID, Type: models.NotificationTypeLike, PostID: testPostID})

	if count, _ := repo.GetUnreadCount(alice.ID); count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	if err := repo.MarkAllAsRead(alice.ID); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	if count, _ := repo.GetUnreadCount(alice.ID); count != 0 {
		t.Fatalf("expected 0 unread after read-all, got %d", count)
	}
}
