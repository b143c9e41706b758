package stan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

const report_client_get_passages = "client.get-passages"

type passagesRequest struct {
	Arret string `validate:"required"`
	// empty means every line serving the stop, the field is then left out of the form
	LigneOmsid string
}

func (r passagesRequest) values() map[string]string {
	values := map[string]string{
		"arret": r.Arret,
	}
	if r.LigneOmsid != "" {
		values["ligne_omsid"] = r.LigneOmsid
	}
	return values
}

// Passages lists the upcoming passages at `stop`, which needs its ExternalID.
//
// When stop.Line.ExternalID is set only the passages of that line are returned,
// otherwise every line serving the stop is. The line found in the response is merged
// into the returned stops, fields set by the caller take precedence.
func (c *Client) Passages(ctx context.Context, stop Stop) ([]Passage, error) {
	req := passagesRequest{
		Arret:      stop.ExternalID,
		LigneOmsid: stop.Line.ExternalID,
	}
	err := c.checkArgument(req)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "Client:Passages",
		attribute.String("stop.external_id", stop.ExternalID),
		attribute.String("line.external_id", stop.Line.ExternalID),
	)
	defer span.End()

	c.tel.ReportDebug(report_client_get_passages, stop.ExternalID, stop.Line.ExternalID)

	body, err := c.submit(ctx, "tempsreel_submit", req.values(), nil)
	if err != nil {
		c.tel.ReportBroken(
			report_client_get_passages,
			fmt.Errorf("fetch: %w", err),
			stop.ExternalID,
		)
		failSpan(span, err)
		return nil, err
	}

	result := ParsePassages(string(body), stop)
	if result.Skipped > 0 {
		c.tel.ReportWarning(
			report_client_get_passages,
			fmt.Errorf("skipped %d of %d malformed blocks", result.Skipped, result.Blocks),
			stop.ExternalID,
		)
	}
	if result.Dropped > 0 {
		c.tel.ReportWarning(
			report_client_get_passages,
			fmt.Errorf("dropped %d zero minute times", result.Dropped),
			stop.ExternalID,
		)
	}
	c.tel.ReportCount(report_client_get_passages, int64(len(result.Passages)))
	span.SetAttributes(
		attribute.Int("blocks", result.Blocks),
		attribute.Int("blocks.skipped", result.Skipped),
		attribute.Int("times.dropped", result.Dropped),
		attribute.Int("passages", len(result.Passages)),
	)
	return result.Passages, nil
}
