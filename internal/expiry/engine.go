// Package expiry turns noisy, multilingual OCR text fragments into a single
// validated expiry date with a confidence score and provenance.
//
// The pipeline normalizes text, runs a set of independent format grammars,
// validates raw triples against the calendar and a plausibility window, and
// selects the best surviving candidate. Purely numeric dates are always read
// day-before-month ("03/04/2025" is 3 April, never 4 March); this is the
// locale convention of the packaging the engine was built for, not an
// inference.
//
// The engine is pure: it holds no mutable state, performs no I/O and is safe
// for concurrent use.
package expiry

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxPastYears is how many years in the past a detected date is
	// still accepted when the caller does not say otherwise.
	DefaultMaxPastYears = 2

	// maxFutureYears bounds how far in the future a detected date may lie.
	maxFutureYears = 10

	minMaxPastYears = 1
	maxMaxPastYears = 50
)

// Sliding-window sizes tried by the cross-line aggregator.
var windowSizes = []int{2, 3}

// Line is one text fragment emitted by the OCR engine, with the engine's
// recognition confidence in [0,1]. Line order is emission order, which is not
// guaranteed to be reading order.
type Line struct {
	Text       string
	Confidence float64
}

// Config tunes the plausibility window. The future bound is fixed at ten
// years; only the past bound is caller-adjustable.
type Config struct {
	// MaxPastYears is the accepted age of a detected date, in years.
	// Zero means DefaultMaxPastYears; values outside [1,50] are rejected
	// at construction.
	MaxPastYears int
}

// TimeSource provides the current time. The default uses time.Now; tests
// inject a fixed clock so the plausibility window is deterministic.
type TimeSource interface {
	Now() time.Time
}

type systemTimeSource struct{}

func (systemTimeSource) Now() time.Time { return time.Now() }

// Candidate is a validated expiry-date candidate.
type Candidate struct {
	Day        int
	Month      int
	Year       int
	ISODate    string // YYYY-MM-DD
	Format     string
	HasKeyword bool
	SourceText string
	Score      float64
}

// Result is the outcome of an extraction. An empty Date means no date was
// found, which is a normal outcome, not an error.
type Result struct {
	Date         string   `json:"date,omitempty"`
	Confidence   float64  `json:"confidence"`
	Raw          string   `json:"raw,omitempty"`
	Format       string   `json:"format,omitempty"`
	RawLines     []string `json:"raw_lines"`
	CombinedText string   `json:"combined_text,omitempty"`
}

// Engine recognizes expiry dates in OCR output.
type Engine struct {
	maxPastYears int
	timeSource   TimeSource
}

// New creates an Engine. It fails only on a configuration error; everything
// downstream of a valid configuration degrades to "no date found".
func New(cfg Config) (*Engine, error) {
	return NewWithTimeSource(cfg, systemTimeSource{})
}

// NewWithTimeSource creates an Engine with an injected clock.
func NewWithTimeSource(cfg Config, ts TimeSource) (*Engine, error) {
	past := cfg.MaxPastYears
	if past == 0 {
		past = DefaultMaxPastYears
	}
	if past < minMaxPastYears || past > maxMaxPastYears {
		return nil, fmt.Errorf("max past years must be between %d and %d, got %d", minMaxPastYears, maxMaxPastYears, cfg.MaxPastYears)
	}
	return &Engine{maxPastYears: past, timeSource: ts}, nil
}

// Extract runs the full pipeline over one image's OCR output and returns the
// best expiry-date candidate, if any. Empty input and input with no
// recognizable date both produce an empty Result.
func (e *Engine) Extract(lines []Line) Result {
	kept := make([]Line, 0, len(lines))
	rawLines := make([]string, 0, len(lines))
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		kept = append(kept, Line{Text: text, Confidence: l.Confidence})
		rawLines = append(rawLines, text)
	}

	combined := strings.Join(rawLines, " ")
	result := Result{RawLines: rawLines, CombinedText: combined}

	// Strategies in order of decreasing trust; each runs only when the
	// previous one found nothing valid.
	candidates := e.perLine(kept)
	if len(candidates) == 0 {
		candidates = e.combined(combined)
	}
	if len(candidates) == 0 {
		candidates = e.windows(rawLines)
	}
	if len(candidates) == 0 {
		candidates = e.fragments(rawLines)
	}

	best, ok := selectBest(candidates)
	if !ok {
		return result
	}
	result.Date = best.ISODate
	result.Confidence = best.Score
	result.Raw = best.SourceText
	result.Format = best.Format
	return result
}

// perLine applies all recognizers to each line independently. The keyword
// flag and the confidence base are those of the individual line.
func (e *Engine) perLine(lines []Line) []Candidate {
	var out []Candidate
	for _, l := range lines {
		out = append(out, e.fromText(l.Text, l.Confidence, "")...)
	}
	return out
}

// combined repeats recognition once over all lines joined with a space,
// recovering dates the OCR engine split across fragments.
func (e *Engine) combined(text string) []Candidate {
	if text == "" {
		return nil
	}
	return e.fromText(text, multiLineBaseConfidence, " (combined)")
}

// windows repeats recognition over every contiguous span of 2 and then 3
// lines, in original order.
func (e *Engine) windows(lines []string) []Candidate {
	var out []Candidate
	for _, size := range windowSizes {
		for i := 0; i+size <= len(lines); i++ {
			text := strings.Join(lines[i:i+size], " ")
			out = append(out, e.fromText(text, multiLineBaseConfidence, " (window)")...)
		}
	}
	return out
}

// fromText runs the recognizers over one text fragment, validates the hits
// and drops duplicates of the same calendar date, keeping the first.
func (e *Engine) fromText(text string, base float64, formatSuffix string) []Candidate {
	normalized := Normalize(text)
	hasKeyword := ContainsExpiryKeyword(normalized)
	source := strings.TrimSpace(text)

	var out []Candidate
	seen := make(map[string]bool)
	for _, rc := range recognize(normalized) {
		var date time.Time
		var ok bool
		if rc.day == 0 {
			date, ok = monthEndDate(rc.month, rc.year)
		} else {
			date, ok = canonicalDate(rc.day, rc.month, rc.year)
		}
		if !ok || !e.plausible(date) {
			continue
		}
		iso := date.Format("2006-01-02")
		if seen[iso] {
			continue
		}
		seen[iso] = true
		out = append(out, Candidate{
			Day:        date.Day(),
			Month:      int(date.Month()),
			Year:       date.Year(),
			ISODate:    iso,
			Format:     rc.format + formatSuffix,
			HasKeyword: hasKeyword,
			SourceText: source,
			Score:      scoreFor(base, hasKeyword),
		})
	}
	return out
}

// plausible reports whether a date falls inside the window
// [today - maxPastYears*365d, today + 10*365d].
func (e *Engine) plausible(date time.Time) bool {
	now := e.timeSource.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, 0, -365*e.maxPastYears)
	latest := today.AddDate(0, 0, 365*maxFutureYears)
	return !date.Before(earliest) && !date.After(latest)
}
