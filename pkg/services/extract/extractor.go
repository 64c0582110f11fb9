package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"

	"github.com/fin-tools/spendsight/pkg/models/domain"
	"github.com/fin-tools/spendsight/pkg/services/classify"
)

// Predictor completes a parsed expense with a category. classify.Model and
// classify.SharedPredictor both satisfy it.
type Predictor interface {
	Predict(description string) domain.CategoryPrediction
}

var (
	// Amount alternatives in priority order: symbol-prefixed, number followed
	// by a currency word, bare number. Go's leftmost-first matching picks the
	// earliest match in the text and the first alternative at that position.
	amountRe = regexp.MustCompile(`(?i)([₹$€£])\s?(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s?(₹|\$|€|£|euro|rs|inr|usd)\b|\b(\d+(?:\.\d+)?)\b`)

	// A date is only accepted when one of these cues authorizes it. Numeric
	// tokens that merely look like dates ("2024 dollars") can still slip
	// through the digit-separator check; that behavior is intentional and
	// covered by tests.
	dateCueRe   = regexp.MustCompile(`(?i)\b(yesterday|today|last\s\w+|on\s\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`)
	digitDateRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)

	fillerRe = regexp.MustCompile(`(?i)\b(spent|paid|on|for|at|bought|gave)\b`)

	digitDateLayouts = []string{"2/1/2006", "2-1-2006", "2/1/06", "2-1-06", "2/1", "2-1"}
)

// Extractor turns free-form expense text into a structured ParsedExpense.
// The passes run in a fixed order: amount before date so a value is never
// mistaken for part of a date, and both before cleanup so their matched
// spans are already gone from the working text.
type Extractor struct {
	predictor Predictor
	now       func() time.Time
}

type Option func(*Extractor)

// WithClock overrides the reference time used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// NewExtractor creates an extractor. predictor may be nil, in which case
// parsed expenses carry the default category with zero confidence.
func NewExtractor(predictor Predictor, opts ...Option) *Extractor {
	e := &Extractor{
		predictor: predictor,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse never fails: fields that cannot be extracted from arbitrary input
// stay absent and the date falls back to the current day.
func (e *Extractor) Parse(raw string) domain.ParsedExpense {
	parsed := domain.ParsedExpense{
		Date:        dateOnly(e.now()),
		Description: strings.TrimSpace(raw),
	}

	remaining := raw
	remaining, parsed.Amount, parsed.Currency = e.extractAmount(remaining)

	var date time.Time
	remaining, date = e.extractDate(remaining)
	if !date.IsZero() {
		parsed.Date = date
	}

	if desc := cleanDescription(remaining); desc != "" {
		parsed.Description = desc
	}

	if e.predictor != nil {
		pred := e.predictor.Predict(parsed.Description)
		parsed.Category = pred.Category
		parsed.Confidence = pred.Confidence
	} else {
		parsed.Category = classify.DefaultCategory
	}

	return parsed
}

// extractAmount takes the first amount match in scan order, removes exactly
// the matched substring and reports the currency marker when one was part of
// the matched form.
func (e *Extractor) extractAmount(text string) (string, *float64, string) {
	loc := amountRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil, ""
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	var raw, currency string
	switch {
	case group(2) != "": // ₹250
		raw = group(2)
		currency = group(1)
	case group(3) != "": // 250 rs
		raw = group(3)
		currency = group(4)
	default: // bare number
		raw = group(5)
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return text, nil, ""
	}

	remaining := text[:loc[0]] + text[loc[1]:]
	return remaining, &amount, currency
}

// extractDate resolves a date only when an explicit cue is present. Relative
// cue phrases are stripped from the text; a bare digit-separator date is
// accepted but left in place, mirroring the cue-or-leave-alone guard.
func (e *Extractor) extractDate(text string) (string, time.Time) {
	cue := dateCueRe.FindStringIndex(text)
	if cue != nil {
		phrase := text[cue[0]:cue[1]]
		if resolved, ok := e.resolvePhrase(phrase); ok {
			return text[:cue[0]] + text[cue[1]:], resolved
		}
		return text, time.Time{}
	}

	if m := digitDateRe.FindString(text); m != "" {
		if resolved, ok := e.parseDigitDate(m); ok {
			return text, resolved
		}
	}
	return text, time.Time{}
}

func (e *Extractor) resolvePhrase(phrase string) (time.Time, bool) {
	if m := digitDateRe.FindString(phrase); m != "" {
		return e.parseDigitDate(m)
	}

	// Ambiguous phrases like "last friday" resolve to the past.
	resolved, err := naturaldate.Parse(phrase, e.now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(resolved), true
}

func (e *Extractor) parseDigitDate(value string) (time.Time, bool) {
	for _, layout := range digitDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(e.now().Year(), 0, 0)
		}
		return dateOnly(t), true
	}
	return time.Time{}, false
}

func cleanDescription(text string) string {
	cleaned := fillerRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
