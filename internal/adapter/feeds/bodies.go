package feeds

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// FetchBody retrieves the raw payload for one body. The payload is returned
// undecoded so the dashboard can cache it and re-derive display fields later.
func (c *Client) FetchBody(ctx context.Context, key domain.BodyKey) ([]byte, error) {
	slug := key.Slug()
	if slug == "" {
		return nil, &domain.FetchError{Provider: domain.ProviderBodies, Err: domain.ErrUnknownBody}
	}

	fullURL := strings.TrimSuffix(c.bodiesURL, "/") + "/" + url.PathEscape(slug)

	var payload json.RawMessage
	if err := c.getJSON(ctx, domain.ProviderBodies, fullURL, &payload); err != nil {
		c.logger.Warn("body fetch failed", "body", key, "error", err)
		return nil, err
	}
	return payload, nil
}
