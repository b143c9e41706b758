package stan

// Records returned by the site rarely carry their parent entity in full, these functions
// rebuild it from what was extracted and what the caller passed in. Each one documents
// which side wins when both provide a field.

// overrideLine returns `base` with its ID and PublicNumber replaced by the extracted ones.
// Extracted fields win, the rest of `base` is kept.
func overrideLine(base Line, id int, publicNumber string) Line {
	base.ID = id
	base.PublicNumber = publicNumber
	return base
}

// overlayLine starts from `extracted` and copies over every field the caller set.
// Caller fields win, extracted fields only fill the gaps.
func overlayLine(extracted Line, caller Line) Line {
	out := extracted
	if caller.ID != 0 {
		out.ID = caller.ID
	}
	if caller.PublicNumber != "" {
		out.PublicNumber = caller.PublicNumber
	}
	if caller.ExternalID != "" {
		out.ExternalID = caller.ExternalID
	}
	if caller.Label != "" {
		out.Label = caller.Label
	}
	return out
}

// directionStop builds a stop listed along `direction`: the per-stop line overrides the
// direction's line, and the embedded direction is a copy whose line is overridden the same way.
func directionStop(direction Direction, opt directionStopOption) Stop {
	line := overrideLine(direction.Line, opt.lineID, opt.publicNumber)
	dir := direction
	dir.Line = line
	return Stop{
		Label:     opt.label,
		Line:      line,
		ID:        opt.id,
		Direction: &dir,
	}
}

// passageStop merges the line found in a real-time block into the caller's stop,
// the caller's line fields win over the extracted ones.
func passageStop(caller Stop, blockLine Line) Stop {
	out := caller
	out.Line = overlayLine(blockLine, caller.Line)
	return out
}
