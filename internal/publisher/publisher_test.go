package publisher

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vestiplan/vestiplan-backend/pkg/config"
	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
)

func TestNewDefaultsToNoop(t *testing.T) {
	pub, err := New(config.PublisherConfig{}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	article := &models.Article{ID: uuid.New(), Title: "Robe fleurie"}
	if err := pub.PublishArticle(context.Background(), article); err != nil {
		t.Fatalf("noop publish must succeed: %v", err)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(config.PublisherConfig{Driver: "vinted"}, nil); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
