package stan

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

const report_client_search_places = "client.search-places"

type searchPlacesRequest struct {
	Request string `validate:"required"`
}

// SearchPlaces runs the site's free-text place search and returns the stop areas
// among the results. Addresses, points of interest and the like are dropped.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]Place, error) {
	req := searchPlacesRequest{Request: strings.TrimSpace(query)}
	err := c.checkArgument(req)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "Client:SearchPlaces", attribute.String("query", req.Request))
	defer span.End()

	c.tel.ReportDebug(report_client_search_places, req.Request)

	body, err := c.submit(ctx, "autocomplete_places", map[string]string{
		"request": req.Request,
	}, nil)
	if err != nil {
		c.tel.ReportBroken(
			report_client_search_places,
			fmt.Errorf("fetch: %w", err),
			req.Request,
		)
		failSpan(span, err)
		return nil, err
	}

	// an undecodable answer is a markup mismatch like any other, it yields no results.
	places, err := ParsePlaces(body)
	if err != nil {
		c.tel.ReportBroken(
			report_client_search_places,
			fmt.Errorf("decode json: %w", err),
			req.Request,
		)
		places = []Place{}
	}
	span.SetAttributes(attribute.Int("places", len(places)))
	return places, nil
}
