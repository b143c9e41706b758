package stan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

const report_client_get_directions = "client.get-directions"

// Directions lists the travel directions of `line`, only its ID and PublicNumber are required.
func (c *Client) Directions(ctx context.Context, line Line) ([]Direction, error) {
	req := newLineRequest(line)
	err := c.checkArgument(req)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "Client:Directions",
		attribute.Int("line.id", line.ID),
		attribute.String("line.public_number", line.PublicNumber),
	)
	defer span.End()

	c.tel.ReportDebug(report_client_get_directions, line.ID, line.PublicNumber)

	body, err := c.submit(ctx, "horaires_directions", req.values(), nil)
	if err != nil {
		c.tel.ReportBroken(
			report_client_get_directions,
			fmt.Errorf("fetch: %w", err),
			line.PublicNumber,
		)
		failSpan(span, err)
		return nil, err
	}

	directions := ParseDirections(string(body), line)
	if len(directions) == 0 {
		c.reportMismatch(report_client_get_directions, string(body), "option[data-direction]")
	}
	span.SetAttributes(attribute.Int("directions", len(directions)))
	return directions, nil
}
