package stan

import "time"

// Line is a numbered transit route of the network.
//
// A line obtained from anything other than Client.Lines is usually partial: only ID and
// PublicNumber are known, ExternalID and Label are left empty.
type Line struct {
	ID           int
	PublicNumber string
	// ExternalID looks like `line:GST:4-97`, it is what the real-time endpoint filters on.
	ExternalID string
	Label      string
}

// Stop is a boarding point as seen from a given line, the same physical stop
// fetched for two lines yields two different Stop values.
type Stop struct {
	Label string
	Line  Line
	// ExternalID looks like `stop_point:GST:SP:NYPCL1`, empty when the endpoint does not provide it.
	ExternalID string
	// ID is the site's numeric stop id, zero when the endpoint does not provide it.
	ID int
	// Direction is only set on stops fetched with Client.DirectionStops.
	Direction *Direction
}

// Direction is one of the terminus-oriented travel directions of a line.
type Direction struct {
	Line Line
	ID   int
	// DirectionCode is an opaque token used by the site, not a compass direction.
	DirectionCode string
	Label         string
}

// Passage is an upcoming vehicle arrival at a stop.
type Passage struct {
	Stop           Stop
	DirectionLabel string
	// MinutesUntilArrival is 0 when the vehicle is announced as arriving now.
	MinutesUntilArrival int
	// IsScheduledEstimate is true when the time comes from the timetable
	// rather than from a tracked vehicle.
	IsScheduledEstimate bool
}

func (p Passage) Wait() time.Duration {
	return time.Duration(p.MinutesUntilArrival) * time.Minute
}

// Place is a stop area returned by the free-text search.
type Place struct {
	ExternalID string
	Label      string
}
