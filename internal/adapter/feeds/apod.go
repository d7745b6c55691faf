package feeds

import (
	"context"
	"net/url"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// FetchPicture retrieves the picture of the day. An empty date lets the
// provider pick today; callers validate dates before calling.
func (c *Client) FetchPicture(ctx context.Context, date string) (domain.RawPicture, error) {
	params := url.Values{"api_key": {c.apiKey}}
	if date != "" {
		params.Set("date", date)
	}

	var raw domain.RawPicture
	if err := c.getJSON(ctx, domain.ProviderPicture, c.apodURL+"?"+params.Encode(), &raw); err != nil {
		c.logger.Warn("picture fetch failed", "date", date, "error", err)
		return domain.RawPicture{}, err
	}
	return raw, nil
}
