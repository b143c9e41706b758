package stan

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/lines.html
var linesPage string

//go:embed testdata/passages.html
var passagesFragment string

var lineT4 = Line{ID: 2332, PublicNumber: "T4"}

func TestParseLines(t *testing.T) {
	lines := ParseLines(linesPage)

	expected := []Line{
		{
			ID:           2332,
			PublicNumber: "T4",
			ExternalID:   "line:GST:4-97",
			Label:        "Tempo 4 - Laxou CLB <> Houdemont Porte Sud",
		},
		{
			ID:           2333,
			PublicNumber: "T5",
			ExternalID:   "line:GST:5-97",
			Label:        "Tempo 5 - Maxéville Meurthe-Canal <> Vandoeuvre Roberval",
		},
		{
			ID:           2340,
			PublicNumber: "10",
			ExternalID:   "line:GST:10-97",
			Label:        "Ligne 10 - Pont d'Essey <> Gare Thiers",
		},
	}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Fatal(diff)
	}

	for _, line := range lines {
		for _, entity := range []string{"&lt;", "&gt;", "&#039;"} {
			require.NotContains(t, line.Label, entity)
		}
	}
}

func TestParseLinesDoubleEncodedLabel(t *testing.T) {
	body := `data-ligne="2340" data-numlignepublic="10" data-osmid="line:GST:10-97" data-libelle="Ligne 10 &amp;lt;&amp;gt; Pont d&amp;#039;Essey" value="x">`

	lines := ParseLines(body)
	require.Len(t, lines, 1)
	require.Equal(t, "Ligne 10 <> Pont d'Essey", lines[0].Label)
	for _, entity := range []string{"&lt;", "&gt;", "&#039;"} {
		require.NotContains(t, lines[0].Label, entity)
	}
}

func TestParseLinesSingleElement(t *testing.T) {
	body := `data-ligne="2332" data-numlignepublic="T4" data-osmid="line:GST:4-97" data-libelle="Tempo 4 - Laxou CLB &lt;&gt; Houdemont Porte Sud" value="x">`

	require.Equal(t, []Line{{
		ID:           2332,
		PublicNumber: "T4",
		ExternalID:   "line:GST:4-97",
		Label:        "Tempo 4 - Laxou CLB <> Houdemont Porte Sud",
	}}, ParseLines(body))
}

func TestParseLinesEmpty(t *testing.T) {
	lines := ParseLines("<html><body>maintenance</body></html>")
	require.NotNil(t, lines)
	require.Empty(t, lines)
}

func TestParseLineStops(t *testing.T) {
	// the markup carries a different line on purpose, it must be ignored.
	body := `<select name="arret">
		<option value="">Choisissez un arrêt</option>
		<option data-libelle="Place Stanislas - Dom Calmet" data-ligne="9999" data-numlignepublic="X9" value="stop_point:GST:SP:NYPCL1">Place Stanislas - Dom Calmet</option>
		<option data-libelle="Gare Thiers - Poirel" data-ligne="2332" data-numlignepublic="T4" value="stop_point:GST:SP:NYGAR1">Gare Thiers - Poirel</option>
		<option data-libelle="Gare Thiers - Poirel" data-ligne="2332" data-numlignepublic="T4" value="stop_point:GST:SP:NYGAR1">Gare Thiers - Poirel</option>
	</select>`

	line := Line{ID: 2332, PublicNumber: "T4", ExternalID: "line:GST:4-97"}
	stops := ParseLineStops(body, line)

	expected := []Stop{
		{Label: "Place Stanislas - Dom Calmet", Line: line, ExternalID: "stop_point:GST:SP:NYPCL1"},
		{Label: "Gare Thiers - Poirel", Line: line, ExternalID: "stop_point:GST:SP:NYGAR1"},
		{Label: "Gare Thiers - Poirel", Line: line, ExternalID: "stop_point:GST:SP:NYGAR1"},
	}
	if diff := cmp.Diff(expected, stops); diff != "" {
		t.Fatal(diff)
	}
	for _, s := range stops {
		require.Equal(t, line, s.Line)
	}
}

func TestParseDirections(t *testing.T) {
	body := `<select name="direction">
		<option data-direction="A" data-libelle="Houdemont Porte Sud" value="1">Houdemont Porte Sud</option>
		<option data-direction="R" data-libelle="Laxou Champ-le-Boeuf" value="2">Laxou Champ-le-Boeuf</option>
	</select>`

	directions := ParseDirections(body, lineT4)

	expected := []Direction{
		{Line: lineT4, ID: 1, DirectionCode: "A", Label: "Houdemont Porte Sud"},
		{Line: lineT4, ID: 2, DirectionCode: "R", Label: "Laxou Champ-le-Boeuf"},
	}
	if diff := cmp.Diff(expected, directions); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseDirectionStops(t *testing.T) {
	direction := Direction{
		Line:          Line{ID: 2332, PublicNumber: "T4", ExternalID: "line:GST:4-97", Label: "Tempo 4"},
		ID:            1,
		DirectionCode: "A",
		Label:         "Houdemont Porte Sud",
	}
	body := `<option data-libelle="Laxou Champ-le-Boeuf" data-ligne="2332" data-numlignepublic="T4" data-direction="A" value="1201">Laxou Champ-le-Boeuf</option>
		<option data-libelle="Vélodrome" data-ligne="2401" data-numlignepublic="T4b" data-direction="A" value="1202">Vélodrome</option>`

	stops := ParseDirectionStops(body, direction)
	require.Len(t, stops, 2)

	sameLine := direction.Line
	sameDirection := direction
	require.Equal(t, Stop{
		Label:     "Laxou Champ-le-Boeuf",
		Line:      sameLine,
		ID:        1201,
		Direction: &sameDirection,
	}, stops[0])

	branch := Line{ID: 2401, PublicNumber: "T4b", ExternalID: "line:GST:4-97", Label: "Tempo 4"}
	branchDirection := direction
	branchDirection.Line = branch
	require.Equal(t, Stop{
		Label:     "Vélodrome",
		Line:      branch,
		ID:        1202,
		Direction: &branchDirection,
	}, stops[1])
	require.Empty(t, stops[1].ExternalID)

	// the input direction is left untouched
	require.Equal(t, 2332, direction.Line.ID)
}

func TestParsePassages(t *testing.T) {
	stop := Stop{
		Label:      "Place Stanislas - Dom Calmet",
		ExternalID: "stop_point:GST:SP:NYPCL1",
	}
	result := ParsePassages(passagesFragment, stop)

	merged := stop
	merged.Line = Line{ID: 2332, PublicNumber: "T4"}

	expected := []Passage{
		{Stop: merged, DirectionLabel: "Houdemont Porte Sud", MinutesUntilArrival: 0},
		{Stop: merged, DirectionLabel: "Houdemont Porte Sud", MinutesUntilArrival: 8},
		{Stop: merged, DirectionLabel: "Laxou Champ-le-Boeuf", MinutesUntilArrival: 3},
		{Stop: merged, DirectionLabel: "Laxou Champ-le-Boeuf", MinutesUntilArrival: 65, IsScheduledEstimate: true},
	}
	if diff := cmp.Diff(expected, result.Passages); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, 2, result.Blocks)
	require.Equal(t, 0, result.Skipped)
	require.Equal(t, 0, result.Dropped)
}

func TestParsePassagesMinutesAndClock(t *testing.T) {
	body := `<ul><li><img src="/lignes/2332_T4.png"><span class="dir"><span>Houdemont Porte Sud</span></span>` +
		`<span class="tpsreel-temps-item large-1 ">8 min</span>` +
		`<span class="tpsreel-temps-item large-1 temps-item-heure">0h01</span></li></ul>`

	result := ParsePassages(body, Stop{ExternalID: "stop_point:GST:SP:NYPCL1"})
	require.Len(t, result.Passages, 2)

	require.Equal(t, 8, result.Passages[0].MinutesUntilArrival)
	require.False(t, result.Passages[0].IsScheduledEstimate)
	require.Equal(t, 1, result.Passages[1].MinutesUntilArrival)
	require.False(t, result.Passages[1].IsScheduledEstimate)
	for _, p := range result.Passages {
		require.Equal(t, "Houdemont Porte Sud", p.DirectionLabel)
	}
}

func TestParsePassagesOrder(t *testing.T) {
	// document order is clock, minutes, now; the output follows the rule order instead.
	body := `<li><img src="2332_T4.svg"><span><span>Houdemont Porte Sud</span></span>` +
		`<span class="tpsreel-temps-item large-1 temps-item-heure">14h32<i class="tpsreel-temps-item-tpstheorique"></i></span>` +
		`<span class="tpsreel-temps-item large-1 ">12 min</span>` +
		`<span class="tpsreel-temps-item large-1 "><i class="icon-tram"></i><i class="icon-wifi2"></i></span></li>`

	result := ParsePassages(body, Stop{ExternalID: "stop_point:GST:SP:NYPCL1"})

	var got []passageTime
	for _, p := range result.Passages {
		got = append(got, passageTime{minutes: p.MinutesUntilArrival, scheduled: p.IsScheduledEstimate})
	}
	require.Equal(t, []passageTime{
		{minutes: 0},
		{minutes: 12},
		{minutes: 14*60 + 32, scheduled: true},
	}, got)
}

func TestParsePassagesSkipsMalformedBlocks(t *testing.T) {
	body := `<ul>` +
		// no direction label
		`<li><img src="/lignes/2332_T4.png"><span class="tpsreel-temps-item large-1 ">4 min</span></li>` +
		// no line icon
		`<li><span><span>Gare Thiers</span></span><span class="tpsreel-temps-item large-1 ">5 min</span></li>` +
		`<li><img src="/lignes/2340_10.png"><span><span>Pont d&#039;Essey</span></span><span class="tpsreel-temps-item large-1 ">6 min</span></li>` +
		`</ul>`

	result := ParsePassages(body, Stop{ExternalID: "stop_area:GST:SA:NYGAR"})
	require.Equal(t, 3, result.Blocks)
	require.Equal(t, 2, result.Skipped)
	require.Len(t, result.Passages, 1)
	require.Equal(t, 6, result.Passages[0].MinutesUntilArrival)
	require.Equal(t, "Pont d'Essey", result.Passages[0].DirectionLabel)
	require.Equal(t, Line{ID: 2340, PublicNumber: "10"}, result.Passages[0].Stop.Line)
}

func TestParsePassagesIgnoresPreamble(t *testing.T) {
	body := `<span class="tpsreel-temps-item large-1 ">9 min</span>`

	result := ParsePassages(body, Stop{ExternalID: "stop_point:GST:SP:NYPCL1"})
	require.Equal(t, 0, result.Blocks)
	require.NotNil(t, result.Passages)
	require.Empty(t, result.Passages)
}

func TestParsePassagesZeroOnlyFromNowMarker(t *testing.T) {
	body := `<li><img src="2332_T4.png"><span><span>Houdemont Porte Sud</span></span>` +
		`<span class="tpsreel-temps-item large-1 ">0 min</span>` +
		`<span class="tpsreel-temps-item large-1 temps-item-heure">0h00<i class="tpsreel-temps-item-tpstheorique"></i></span>` +
		`<span class="tpsreel-temps-item large-1 "><i class="icon-bus1"></i><i class="icon-wifi2"></i></span></li>`

	result := ParsePassages(body, Stop{ExternalID: "stop_point:GST:SP:NYPCL1"})
	require.Len(t, result.Passages, 1)
	require.Equal(t, 2, result.Dropped)
	for _, p := range result.Passages {
		if p.MinutesUntilArrival == 0 {
			require.False(t, p.IsScheduledEstimate)
		}
	}
}

func TestParsePassagesCallerLineWins(t *testing.T) {
	testCases := []struct {
		callerLine Line
		expected   Line
	}{
		{
			callerLine: Line{},
			expected:   Line{ID: 2332, PublicNumber: "T4"},
		},
		{
			callerLine: Line{ExternalID: "line:GST:4-97"},
			expected:   Line{ID: 2332, PublicNumber: "T4", ExternalID: "line:GST:4-97"},
		},
		{
			callerLine: Line{ID: 7, PublicNumber: "T4 bis", ExternalID: "line:GST:4-98", Label: "Tempo 4 bis"},
			expected:   Line{ID: 7, PublicNumber: "T4 bis", ExternalID: "line:GST:4-98", Label: "Tempo 4 bis"},
		},
	}

	for _, test := range testCases {
		stop := Stop{ExternalID: "stop_point:GST:SP:NYPCL1", Line: test.callerLine}
		result := ParsePassages(passagesFragment, stop)
		require.NotEmpty(t, result.Passages)
		for _, p := range result.Passages {
			require.Equal(t, test.expected, p.Stop.Line)
			require.Equal(t, stop.ExternalID, p.Stop.ExternalID)
		}
	}
}

func TestParseIsIdempotent(t *testing.T) {
	stop := Stop{ExternalID: "stop_point:GST:SP:NYPCL1"}

	if diff := cmp.Diff(ParsePassages(passagesFragment, stop), ParsePassages(passagesFragment, stop)); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff(ParseLines(linesPage), ParseLines(linesPage)); diff != "" {
		t.Fatal(diff)
	}
}

func TestParsePlaces(t *testing.T) {
	testCases := []struct {
		body     string
		expected []Place
	}{
		{
			body: `[{"value":"stop_area:GST:1","label":"Gare"},{"value":"poi:XYZ","label":"Mairie"}]`,
			expected: []Place{
				{ExternalID: "stop_area:GST:1", Label: "Gare"},
			},
		},
		{
			body: `[
				{"value":"address:6.18;48.69","label":"Rue Stanislas","category":"address"},
				{"value":"stop_area:GST:SA:NYPCL","label":"Place Stanislas - Dom Calmet"},
				{"value":"stop_point:GST:SP:NYPCL1","label":"Place Stanislas"},
				{"value":"stop_area:GST:SA:NYSTN","label":"Saint-Nicolas &#039;Charles III&#039;"}
			]`,
			expected: []Place{
				{ExternalID: "stop_area:GST:SA:NYPCL", Label: "Place Stanislas - Dom Calmet"},
				{ExternalID: "stop_area:GST:SA:NYSTN", Label: "Saint-Nicolas 'Charles III'"},
			},
		},
		{
			body:     `[]`,
			expected: []Place{},
		},
		{
			body:     ` `,
			expected: []Place{},
		},
	}

	for _, test := range testCases {
		places, err := ParsePlaces([]byte(test.body))
		require.NoError(t, err)
		if diff := cmp.Diff(test.expected, places); diff != "" {
			t.Fatal(diff)
		}
		for _, p := range places {
			require.True(t, strings.HasPrefix(p.ExternalID, "stop_area:"))
		}
	}

	_, err := ParsePlaces([]byte(`<html>`))
	require.Error(t, err)
}
