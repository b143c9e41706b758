package stan

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
)

const (
	report_client_get_line_stops      = "client.get-line-stops"
	report_client_get_direction_stops = "client.get-direction-stops"
)

type lineRequest struct {
	Ligne          int    `validate:"gte=0"`
	NumLignePublic string `validate:"required"`
}

func newLineRequest(line Line) lineRequest {
	return lineRequest{
		Ligne:          line.ID,
		NumLignePublic: line.PublicNumber,
	}
}

func (r lineRequest) values() map[string]string {
	return map[string]string{
		"ligne":          strconv.Itoa(r.Ligne),
		"numlignepublic": r.NumLignePublic,
	}
}

// LineStops lists the stops served by `line`. Only the ID and PublicNumber of `line`
// are required, every returned stop embeds `line` unchanged.
//
// A stop served by several lines shows up once per line it is requested for.
func (c *Client) LineStops(ctx context.Context, line Line) ([]Stop, error) {
	req := newLineRequest(line)
	err := c.checkArgument(req)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "Client:LineStops",
		attribute.Int("line.id", line.ID),
		attribute.String("line.public_number", line.PublicNumber),
	)
	defer span.End()

	c.tel.ReportDebug(report_client_get_line_stops, line.ID, line.PublicNumber)

	body, err := c.submit(ctx, "tempsreel_arrets", req.values(), nil)
	if err != nil {
		c.tel.ReportBroken(
			report_client_get_line_stops,
			fmt.Errorf("fetch: %w", err),
			line.PublicNumber,
		)
		failSpan(span, err)
		return nil, err
	}

	stops := ParseLineStops(string(body), line)
	if len(stops) == 0 {
		c.reportMismatch(report_client_get_line_stops, string(body), "option[data-libelle]")
	}
	span.SetAttributes(attribute.Int("stops", len(stops)))
	return stops, nil
}

type directionStopsRequest struct {
	Ligne          int    `validate:"gte=0"`
	IdDirection    int    `validate:"gte=0"`
	Direction      string `validate:"required"`
	NumLignePublic string `validate:"required"`
}

func (r directionStopsRequest) values() map[string]string {
	return map[string]string{
		"ligne":          strconv.Itoa(r.Ligne),
		"id_direction":   strconv.Itoa(r.IdDirection),
		"direction":      r.Direction,
		"numlignepublic": r.NumLignePublic,
	}
}

// DirectionStops lists the stops along `direction`, terminus excluded.
//
// The site may attach a different line to some stops (a branch or an associated line),
// the returned stops and their embedded direction carry that line.
func (c *Client) DirectionStops(ctx context.Context, direction Direction) ([]Stop, error) {
	req := directionStopsRequest{
		Ligne:          direction.Line.ID,
		IdDirection:    direction.ID,
		Direction:      direction.DirectionCode,
		NumLignePublic: direction.Line.PublicNumber,
	}
	err := c.checkArgument(req)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "Client:DirectionStops",
		attribute.Int("line.id", direction.Line.ID),
		attribute.Int("direction.id", direction.ID),
	)
	defer span.End()

	c.tel.ReportDebug(report_client_get_direction_stops, direction.Line.PublicNumber, direction.DirectionCode)

	body, err := c.submit(ctx, "horaires_arrets", req.values(), map[string]string{
		"with_last_item": "false",
	})
	if err != nil {
		c.tel.ReportBroken(
			report_client_get_direction_stops,
			fmt.Errorf("fetch: %w", err),
			direction.Line.PublicNumber,
			direction.DirectionCode,
		)
		failSpan(span, err)
		return nil, err
	}

	stops := ParseDirectionStops(string(body), direction)
	if len(stops) == 0 {
		c.reportMismatch(report_client_get_direction_stops, string(body), "option[data-direction][data-ligne]")
	}
	span.SetAttributes(attribute.Int("stops", len(stops)))
	return stops, nil
}
