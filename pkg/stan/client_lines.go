package stan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

const report_client_get_lines = "client.get-lines"

// Lines lists every line of the network, in the order the home page shows them.
func (c *Client) Lines(ctx context.Context) ([]Line, error) {
	ctx, span := startSpan(ctx, "Client:Lines")
	defer span.End()

	c.tel.ReportDebug(report_client_get_lines, c.siteURL)

	body, err := c.fetchPage(ctx, c.siteURL)
	if err != nil {
		c.tel.ReportBroken(
			report_client_get_lines,
			fmt.Errorf("fetch: %w", err),
			c.siteURL,
		)
		failSpan(span, err)
		return nil, err
	}

	lines := ParseLines(body)
	if len(lines) == 0 {
		c.reportMismatch(report_client_get_lines, body, "option[data-ligne][data-osmid]")
	}
	span.SetAttributes(attribute.Int("lines", len(lines)))
	return lines, nil
}
