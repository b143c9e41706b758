package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"stan-api/internal/textutil"
	"stan-api/pkg/stan"

	"github.com/jedib0t/go-pretty/v6/table"
)

var output io.Writer = os.Stdout

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(output)
	return t
}

// below this similarity a fuzzy match is considered a miss
const minSimilarity = 0.7

func findLine(lines []stan.Line, publicNumber string) (stan.Line, error) {
	want := textutil.NormalizeName(publicNumber)
	for _, line := range lines {
		if textutil.NormalizeName(line.PublicNumber) == want {
			return line, nil
		}
	}
	return stan.Line{}, fmt.Errorf("no line numbered %q", publicNumber)
}

func findDirection(directions []stan.Direction, label string) (stan.Direction, error) {
	labels := make([]string, len(directions))
	for i, d := range directions {
		labels[i] = d.Label
	}
	idx, similarity := textutil.BestMatch(label, labels)
	if idx < 0 || similarity < minSimilarity {
		return stan.Direction{}, fmt.Errorf("no direction matching %q", label)
	}
	return directions[idx], nil
}

func findStop(stops []stan.Stop, label string) (stan.Stop, error) {
	labels := make([]string, len(stops))
	for i, s := range stops {
		labels[i] = s.Label
	}
	idx, similarity := textutil.BestMatch(label, labels)
	if idx < 0 || similarity < minSimilarity {
		return stan.Stop{}, fmt.Errorf("no stop matching %q", label)
	}
	return stops[idx], nil
}

func resolveLine(ctx context.Context, client *stan.Client, publicNumber string) (stan.Line, error) {
	lines, err := client.Lines(ctx)
	if err != nil {
		return stan.Line{}, err
	}
	return findLine(lines, publicNumber)
}

func renderStops(stops []stan.Stop) {
	t := NewTable()
	t.AppendHeader(table.Row{"Stop", "Line", "External ID", "ID"})
	for _, s := range stops {
		id := ""
		if s.ID != 0 {
			id = fmt.Sprint(s.ID)
		}
		t.AppendRow(table.Row{s.Label, s.Line.PublicNumber, s.ExternalID, id})
	}
	t.Render()
}

func renderPassages(passages []stan.Passage) {
	t := NewTable()
	t.AppendHeader(table.Row{"Line", "Direction", "Wait", "Source"})
	for _, p := range passages {
		wait := "now"
		if p.MinutesUntilArrival > 0 {
			wait = fmt.Sprintf("%dh%02d", p.MinutesUntilArrival/60, p.MinutesUntilArrival%60)
		}
		source := "real-time"
		if p.IsScheduledEstimate {
			source = "timetable"
		}
		t.AppendRow(table.Row{p.Stop.Line.PublicNumber, p.DirectionLabel, wait, source})
	}
	t.Render()
}
