package feeds

import (
	"context"
	"net/url"
	"strconv"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// launchLimit and launchOrdering are fixed: the dashboard always shows the
// next ten launches by net time.
const (
	launchLimit    = 10
	launchOrdering = "net"
)

// FetchLaunches retrieves the upcoming launch page in provider order.
func (c *Client) FetchLaunches(ctx context.Context) (domain.RawLaunchPage, error) {
	params := url.Values{
		"limit":    {strconv.Itoa(launchLimit)},
		"ordering": {launchOrdering},
	}

	var page domain.RawLaunchPage
	if err := c.getJSON(ctx, domain.ProviderLaunches, c.launchesURL+"?"+params.Encode(), &page); err != nil {
		c.logger.Warn("launch fetch failed", "error", err)
		return domain.RawLaunchPage{}, err
	}
	return page, nil
}
