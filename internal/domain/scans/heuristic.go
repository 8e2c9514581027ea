package scans

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// IndicatorGroup is a set of phrases that all map to one indicator label.
// A group contributes its label at most once per evaluation.
type IndicatorGroup struct {
	Label   string   `yaml:"label" json:"label"`
	Phrases []string `yaml:"phrases" json:"phrases"`
}

// Policy holds the constants of the heuristic scorer.
// The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	Groups []IndicatorGroup

	MinScore      int
	MaxScore      int
	CharsPerPoint int

	// Floors[0] applies to one matched group, Floors[1] to two,
	// Floors[2] to three or more.
	Floors [3]int

	MediumThreshold int
	HighThreshold   int
}

var defaultGroups = []IndicatorGroup{
	{Label: "KYC / verification pressure", Phrases: []string{"kyc", "account suspension", "verification"}},
	{Label: "OTP harvesting attempt", Phrases: []string{"otp", "one time password"}},
	{Label: "Call-to-action clickbait", Phrases: []string{"click", "tap"}},
	{Label: "Unsolicited reward / lottery", Phrases: []string{"lottery", "prize", "winner"}},
	{Label: "UPI / bank transfer request", Phrases: []string{"upi", "imps", "rtgs"}},
}

// DefaultPolicy returns the demo scoring constants.
func DefaultPolicy() Policy {
	groups := make([]IndicatorGroup, len(defaultGroups))
	for i, g := range defaultGroups {
		groups[i] = IndicatorGroup{Label: g.Label, Phrases: append([]string(nil), g.Phrases...)}
	}
	return Policy{
		Groups:          groups,
		MinScore:        5,
		MaxScore:        95,
		CharsPerPoint:   4,
		Floors:          [3]int{45, 60, 80},
		MediumThreshold: 45,
		HighThreshold:   75,
	}
}

// Validate checks that the policy can produce ordered, bounded results.
func (p Policy) Validate() error {
	switch {
	case len(p.Groups) == 0:
		return errors.New("policy needs at least one indicator group")
	case p.CharsPerPoint <= 0:
		return errors.New("charsPerPoint must be positive")
	case p.MinScore < 0 || p.MinScore > p.MaxScore:
		return errors.New("score bounds must satisfy 0 <= min <= max")
	case p.MediumThreshold > p.HighThreshold:
		return errors.New("medium threshold must not exceed high threshold")
	case p.Floors[0] > p.Floors[1] || p.Floors[1] > p.Floors[2]:
		return errors.New("indicator floors must be non-decreasing")
	}
	for _, g := range p.Groups {
		if g.Label == "" || len(g.Phrases) == 0 {
			return errors.New("indicator groups need a label and at least one phrase")
		}
	}
	return nil
}

// Match returns the labels of every group with at least one phrase contained in text.
// Containment is case-insensitive and ignores word boundaries. Labels keep group order.
func (p Policy) Match(text string) []string {
	lowered := strings.ToLower(text)
	out := make([]string, 0, len(p.Groups))
	for _, g := range p.Groups {
		for _, phrase := range g.Phrases {
			if phrase != "" && strings.Contains(lowered, strings.ToLower(phrase)) {
				out = append(out, g.Label)
				break
			}
		}
	}
	return out
}

// Clamp bounds a score to [MinScore, MaxScore].
func (p Policy) Clamp(score int) int {
	if score < p.MinScore {
		return p.MinScore
	}
	if score > p.MaxScore {
		return p.MaxScore
	}
	return score
}

// BaseScore is the length-proportional baseline, rounded half up and clamped.
func (p Policy) BaseScore(text string) int {
	n := utf8.RuneCountInString(text)
	raw := int(math.Floor(float64(n)/float64(p.CharsPerPoint) + 0.5))
	return p.Clamp(raw)
}

// Score raises base to the floor for the given indicator count. It never lowers it.
func (p Policy) Score(base, indicators int) int {
	var floor int
	switch {
	case indicators >= 3:
		floor = p.Floors[2]
	case indicators == 2:
		floor = p.Floors[1]
	case indicators == 1:
		floor = p.Floors[0]
	default:
		return base
	}
	if base > floor {
		return base
	}
	return floor
}

// Level maps a final score to its risk level.
func (p Policy) Level(score int) RiskLevel {
	switch {
	case score >= p.HighThreshold:
		return RiskHigh
	case score >= p.MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Evaluate scores text. It is pure apart from at, which becomes CreatedAt.
// Callers reject empty or short text before calling; empty text scores MinScore with no indicators.
func (p Policy) Evaluate(t ContentType, text string, at time.Time) Result {
	indicators := p.Match(text)
	score := p.Score(p.BaseScore(text), len(indicators))
	level := p.Level(score)
	return Result{
		RiskLevel:   level,
		RiskScore:   score,
		Explanation: Explanation(level),
		Indicators:  indicators,
		Type:        t,
		CreatedAt:   at,
	}
}

// Evaluate scores text with DefaultPolicy at the current time.
func Evaluate(t ContentType, text string) Result {
	return DefaultPolicy().Evaluate(t, text, time.Now().UTC())
}

// Explanation returns the fixed wording for a risk level.
func Explanation(level RiskLevel) string {
	switch level {
	case RiskHigh:
		return "Multiple high-risk patterns detected including urgency, suspicious links and requests for sensitive actions."
	case RiskMedium:
		return "Some scam-like indicators found. Advise the user to independently verify using official channels."
	default:
		return "Limited scam markers detected, but users should still avoid sharing OTPs, passwords or PINs."
	}
}
