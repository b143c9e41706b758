package stan

import (
	"regexp"
	"stan-api/internal/htmlutil"
	"strconv"
	"strings"
)

// every rule below matches against the raw response text, the site does not serve
// well-formed documents for its ajax fragments.

var (
	// <option data-ligne="2332" data-numlignepublic="T4" data-osmid="line:GST:4-97" data-libelle="..." value="...">
	lineOptionRule = regexp.MustCompile(`data-ligne="(\d+)" data-numlignepublic="([^"]+)" data-osmid="(line[^"+]+)" data-libelle="([^"]+)" value="[^"]+">`)

	// the line fields are redundant with the request and are ignored.
	lineStopOptionRule = regexp.MustCompile(`data-libelle="([^"]+)" data-ligne="(\d+)" data-numlignepublic="(\w+)" value="([^"]+)">([^"]+)</option>`)

	directionOptionRule = regexp.MustCompile(`data-direction="([^"]+)" data-libelle="([^"]+)" value="(\d+)">([^"]+)</option>`)

	// here the line fields may differ from the requested line.
	directionStopOptionRule = regexp.MustCompile(`data-libelle="([^"+]+)" data-ligne="(\d+)" data-numlignepublic="([^"]+)" data-direction="([^"]+)" value="(\d+)">[^"]+</option>`)
)

// real-time fragment rules, applied to a single <li> block.
var (
	blockDirectionRule = regexp.MustCompile(`<span>([^"<]+)</span></span>`)
	// the line icon is named `<line id>_<public number>.<ext>`
	blockLineRule = regexp.MustCompile(`src="(?:[^"]*/)?(\d+)_([^"/_.]+)\.(?:png|svg|gif|jpe?g)"`)

	passageNowRule     = regexp.MustCompile(`class="tpsreel-temps-item large-1 "><i class="icon-[a-z0-9-]+"></i><i class="icon-wifi2"></i>`)
	passageMinutesRule = regexp.MustCompile(`class="tpsreel-temps-item large-1 ">(\d+) min`)
	passageClockRule   = regexp.MustCompile(`temps-item-heure">(\d+)h(\d+)([^/]*)`)
)

const (
	blockSeparator   = "<li>"
	scheduledMarker  = "tpstheorique"
	stopAreaIDPrefix = "stop_area:"
)

type lineOption struct {
	line Line
}

func matchLineOptions(body string) []lineOption {
	var out []lineOption
	for _, m := range lineOptionRule.FindAllStringSubmatch(body, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, lineOption{line: Line{
			ID:           id,
			PublicNumber: m[2],
			ExternalID:   m[3],
			Label:        htmlutil.DecodeEntities(m[4]),
		}})
	}
	return out
}

type lineStopOption struct {
	label      string
	externalID string
}

func matchLineStopOptions(body string) []lineStopOption {
	var out []lineStopOption
	for _, m := range lineStopOptionRule.FindAllStringSubmatch(body, -1) {
		out = append(out, lineStopOption{
			label:      htmlutil.DecodeEntities(m[1]),
			externalID: m[4],
		})
	}
	return out
}

type directionOption struct {
	code  string
	label string
	id    int
}

func matchDirectionOptions(body string) []directionOption {
	var out []directionOption
	for _, m := range directionOptionRule.FindAllStringSubmatch(body, -1) {
		id, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		out = append(out, directionOption{
			code:  m[1],
			label: htmlutil.DecodeEntities(m[2]),
			id:    id,
		})
	}
	return out
}

type directionStopOption struct {
	label        string
	lineID       int
	publicNumber string
	id           int
}

func matchDirectionStopOptions(body string) []directionStopOption {
	var out []directionStopOption
	for _, m := range directionStopOptionRule.FindAllStringSubmatch(body, -1) {
		lineID, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(m[5])
		if err != nil {
			continue
		}
		out = append(out, directionStopOption{
			label:        htmlutil.DecodeEntities(m[1]),
			lineID:       lineID,
			publicNumber: m[3],
			id:           id,
		})
	}
	return out
}

// splitBlocks returns every <li> block of a real-time fragment, what comes before the first one is dropped.
func splitBlocks(body string) []string {
	parts := strings.Split(body, blockSeparator)
	return parts[1:]
}

func matchBlockDirection(block string) (string, bool) {
	m := blockDirectionRule.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return htmlutil.DecodeEntities(m[1]), true
}

func matchBlockLine(block string) (Line, bool) {
	m := blockLineRule.FindStringSubmatch(block)
	if m == nil {
		return Line{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return Line{}, false
	}
	return Line{ID: id, PublicNumber: m[2]}, true
}

type passageTime struct {
	minutes   int
	scheduled bool
}

// matchPassageTimes runs the three passage rules one after the other, so the result
// holds every "now" marker first, then the minute counts, then the clock times.
//
// A zero wait is only ever reported by the "now" marker: numeric forms that
// evaluate to zero are dropped and counted in `dropped`.
func matchPassageTimes(block string) (out []passageTime, dropped int) {

	for range passageNowRule.FindAllStringIndex(block, -1) {
		out = append(out, passageTime{minutes: 0})
	}

	for _, m := range passageMinutesRule.FindAllStringSubmatch(block, -1) {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if minutes == 0 {
			dropped++
			continue
		}
		out = append(out, passageTime{minutes: minutes})
	}

	for _, m := range passageClockRule.FindAllStringSubmatch(block, -1) {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		minutes, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		total := hours*60 + minutes
		if total == 0 {
			dropped++
			continue
		}
		out = append(out, passageTime{
			minutes:   total,
			scheduled: strings.Contains(m[3], scheduledMarker),
		})
	}

	return out, dropped
}
