package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/arifulhb/picstream/backend/internal/models"
)

func TestCreateStory(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")

	c, rec := env.newContext(http.MethodPost, "/api/stories", map[string]string{
		"image_url": "https://example.com/story.jpg",
		"text":      "weekend trip",
	}, alice.ID)
	if status := httpStatus(rec, env.storyHandler.CreateStory(c)); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, rec.Body.String())
	}

	var view StoryView
	decode(t, rec, &view)
	if view.User.Username != "alice" || view.Text != "weekend trip" {
		t.Fatalf("unexpected story view: %+v", view)
	}
	if got := view.ExpiresAt.Sub(view.CreatedAt); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %v", got)
	}
}

func TestStoriesAreFollowingPlusSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")
	bob := env.createUser("bob")
	carol := env.createUser("carol")

	env.follow(alice.ID, bob.ID)

	now := time.Now()
	env.stories.add(models.Story{UserID: alice.ID, Text: "mine", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	env.stories.add(models.Story{UserID: bob.ID, Text: "followed", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	env.stories.add(models.Story{UserID: carol.ID, Text: "stranger", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})

	c, rec := env.newContext(http.MethodGet, "/api/stories", nil, alice.ID)
	if status := httpStatus(rec, env.storyHandler.GetStories(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var views []StoryView
	decode(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(views))
	}
	for _, view := range views {
		if view.Text == "stranger" {
			t.Fatal("expected carol's story to be excluded")
		}
	}
}

func TestExpiredStoriesAreHidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice")

	now := time.Now()
	env.stories.add(models.Story{UserID: alice.ID, Text: "fresh", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	env.stories.add(models.Story{UserID: alice.ID, Text: "stale", CreatedAt: now.Add(-25 * time.Hour), ExpiresAt: now.Add(-time.Hour)})

	c, rec := env.newContext(http.MethodGet, "/api/stories/my", nil, alice.ID)
	if status := httpStatus(rec, env.storyHandler.GetOwnStories(c)); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var views []StoryView
	decode(t, rec, &views)
	if len(views) != 1 || views[0].Text != "fresh" {
		t.Fatalf("expected only the unexpired story, got %+v", views)
	}
}
