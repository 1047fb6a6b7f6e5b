package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rmejia/unified-portfolio-backend/models"
)

// PublishNotifier announces a freshly published project to a set of webhook
// endpoints (site rebuild hook, search reindex, cache purge and the like).
// The fan-out is best-effort: every endpoint is attempted even when some
// fail, failures are logged individually, and the combined error only tells
// the caller that at least one target did not accept the notification.
type PublishNotifier struct {
	endpoints []string
	baseURL   string
	client    *http.Client
}

func NewPublishNotifier(endpoints []string, baseURL string) *PublishNotifier {
	return &PublishNotifier{
		endpoints: endpoints,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// publishAnnouncement is the payload POSTed to each webhook
type publishAnnouncement struct {
	ProjectID string    `json:"project_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Published time.Time `json:"published_at"`
}

// NotifyPublished posts the announcement to every configured endpoint
// concurrently. Returns nil when no endpoints are configured.
func (n *PublishNotifier) NotifyPublished(ctx context.Context, project models.UnifiedProject) error {
	if n == nil || len(n.endpoints) == 0 {
		return nil
	}

	announcement := publishAnnouncement{
		ProjectID: project.ID,
		Slug:      project.Slug,
		Title:     project.Title,
		URL:       BuildProjectURL(n.baseURL, project.Slug),
	}
	if project.PublishedAt != nil {
		announcement.Published = *project.PublishedAt
	}

	body, err := json.Marshal(announcement)
	if err != nil {
		return fmt.Errorf("encoding publish announcement: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	failed := make([]string, len(n.endpoints))

	for i, endpoint := range n.endpoints {
		g.Go(func() error {
			if err := n.post(ctx, endpoint, body); err != nil {
				log.Error().Err(err).Str("endpoint", endpoint).Msg("publish webhook failed")
				failed[i] = fmt.Sprintf("%s: %v", endpoint, err)
			}
			// never abort the sibling notifications
			return nil
		})
	}
	_ = g.Wait()

	var failures []string
	for _, f := range failed {
		if f != "" {
			failures = append(failures, f)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("some publish webhooks failed: %s", strings.Join(failures, "; "))
	}

	log.Info().Int("endpoints", len(n.endpoints)).Str("projectID", project.ID).Msg("publish webhooks delivered")
	return nil
}

func (n *PublishNotifier) post(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// BuildProjectURL constructs the public URL for a project slug
// Parameters:
//   - baseURL: The site base URL (e.g. "https://example.com")
//   - slug: The project slug
//
// Returns:
//   - The full project URL (e.g. "https://example.com/work/{slug}"), or empty
//     string when either part is missing
func BuildProjectURL(baseURL, slug string) string {
	if baseURL == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("%s/work/%s", strings.TrimSuffix(baseURL, "/"), slug)
}
