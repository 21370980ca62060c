package guestbook

import (
	"context"
	"testing"

	"github.com/witch49/wedding-invitation/pkg/storage/offline"
	"github.com/witch49/wedding-invitation/pkg/storage/remote"
)

func TestSelectBackend_FallsBackToOffline(t *testing.T) {
	// Make sure no ambient mongo configuration leaks into the test.
	t.Setenv("MONGO_HOST", "")

	tests := []struct {
		name string
		conf BackendConfig
	}{
		{"unknown kind", BackendConfig{Kind: ""}},
		{"remote without base URL", BackendConfig{Kind: "remote"}},
		{"mongo without configuration", BackendConfig{Kind: "mongo"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend := SelectBackend(context.Background(), tc.conf)
			if _, ok := backend.(*offline.Store); !ok {
				t.Errorf("want offline fallback, got %T", backend)
			}
		})
	}
}

func TestSelectBackend_Remote(t *testing.T) {
	backend := SelectBackend(context.Background(), BackendConfig{
		Kind:       "remote",
		APIBaseURL: "http://guestbook.example.com",
	})

	if _, ok := backend.(*remote.Client); !ok {
		t.Errorf("want remote client, got %T", backend)
	}
}

func TestSelectBackend_OfflineServesBundledData(t *testing.T) {
	backend := SelectBackend(context.Background(), BackendConfig{})

	posts, err := backend.ListRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("want 3 bundled entries, got %d", len(posts))
	}
}
