package stan

import (
	"bytes"
	"encoding/json"
	"stan-api/internal/htmlutil"
	"strings"
)

// ParseLines extracts every line selector of the home page, in document order.
func ParseLines(body string) []Line {
	options := matchLineOptions(body)
	lines := make([]Line, 0, len(options))
	for _, opt := range options {
		lines = append(lines, opt.line)
	}
	return lines
}

// ParseLineStops extracts the stops of `line`, every stop carries `line` as is.
func ParseLineStops(body string, line Line) []Stop {
	options := matchLineStopOptions(body)
	stops := make([]Stop, 0, len(options))
	for _, opt := range options {
		stops = append(stops, Stop{
			Label:      opt.label,
			Line:       line,
			ExternalID: opt.externalID,
		})
	}
	return stops
}

func ParseDirections(body string, line Line) []Direction {
	options := matchDirectionOptions(body)
	directions := make([]Direction, 0, len(options))
	for _, opt := range options {
		directions = append(directions, Direction{
			Line:          line,
			ID:            opt.id,
			DirectionCode: opt.code,
			Label:         opt.label,
		})
	}
	return directions
}

// ParseDirectionStops extracts the stops served along `direction`.
func ParseDirectionStops(body string, direction Direction) []Stop {
	options := matchDirectionStopOptions(body)
	stops := make([]Stop, 0, len(options))
	for _, opt := range options {
		stops = append(stops, directionStop(direction, opt))
	}
	return stops
}

// PassageResult is the outcome of parsing a real-time fragment.
type PassageResult struct {
	Passages []Passage
	// Blocks is the number of <li> blocks found in the fragment.
	Blocks int
	// Skipped counts the blocks missing their direction label or line icon,
	// those contribute no passage.
	Skipped int
	// Dropped counts the "0 min" and "0h00" times, a zero wait is only taken
	// from the "now" marker.
	Dropped int
}

// ParsePassages extracts the upcoming passages at `stop` from a real-time fragment.
//
// The fragment is made of one <li> block per direction and line. A block without a
// direction label or line icon cannot be attributed and is skipped, the rest of the
// fragment is still parsed.
func ParsePassages(body string, stop Stop) PassageResult {
	blocks := splitBlocks(body)
	result := PassageResult{
		Passages: []Passage{},
		Blocks:   len(blocks),
	}

	for _, block := range blocks {
		directionLabel, ok := matchBlockDirection(block)
		if !ok {
			result.Skipped++
			continue
		}
		blockLine, ok := matchBlockLine(block)
		if !ok {
			result.Skipped++
			continue
		}

		merged := passageStop(stop, blockLine)
		times, dropped := matchPassageTimes(block)
		result.Dropped += dropped
		for _, pt := range times {
			result.Passages = append(result.Passages, Passage{
				Stop:                merged,
				DirectionLabel:      directionLabel,
				MinutesUntilArrival: pt.minutes,
				IsScheduledEstimate: pt.scheduled,
			})
		}
	}

	return result
}

type placeRecord struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ParsePlaces decodes an autocomplete response and keeps the stop areas only, in response order.
func ParsePlaces(body []byte) ([]Place, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []Place{}, nil
	}

	var records []placeRecord
	err := json.Unmarshal(body, &records)
	if err != nil {
		return nil, err
	}

	places := []Place{}
	for _, r := range records {
		if !strings.HasPrefix(r.Value, stopAreaIDPrefix) {
			continue
		}
		places = append(places, Place{
			ExternalID: r.Value,
			Label:      htmlutil.DecodeEntities(r.Label),
		})
	}
	return places, nil
}
