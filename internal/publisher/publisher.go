package publisher

import (
	"context"
	"fmt"

	"github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/pkg/config"
	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
)

// DriverNoop records the publish intent in the log and reports success.
// Real marketplace integrations plug in behind the same driver knob.
const DriverNoop = "noop"

// New selects a publisher implementation by configured driver.
func New(cfg config.PublisherConfig, logg *logger.Logger) (articles.Publisher, error) {
	switch cfg.Driver {
	case "", DriverNoop:
		return &noopPublisher{logg: logg}, nil
	default:
		return nil, fmt.Errorf("unknown publisher driver %q", cfg.Driver)
	}
}

type noopPublisher struct {
	logg *logger.Logger
}

func (p *noopPublisher) PublishArticle(ctx context.Context, article *models.Article) error {
	if p.logg != nil {
		ctx = p.logg.WithFields(ctx, map[string]any{
			"article_id": article.ID.String(),
			"title":      article.Title,
		})
		p.logg.Info(ctx, "publish requested, noop driver acknowledged")
	}
	return nil
}
