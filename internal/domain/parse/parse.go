// Package parse turns raw recognition oracle replies into structured
// per-member contribution extractions.
//
// The oracle is prompted for a bare JSON array but routinely wraps it in a
// Markdown fence, answers with a differently shaped JSON document, or falls
// back to prose. Parse tries a fixed ladder of strategies and returns the
// first that yields records; unparseable input degrades to an empty slice,
// never an error.
package parse

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/tribute/pkg/metrics"
)

// Bilingual keys the oracle is instructed to emit.
const (
	keyMemberID = "會員ID"
	keyCoins    = "金幣捐獻"
	keyActivity = "活躍貢獻"
)

// Strategy labels reported to metrics.
const (
	strategyBilingualJSON   = "bilingual_json"
	strategyPassthroughJSON = "passthrough_json"
	strategyPatternPrimary  = "pattern_primary"
	strategyPatternLoose    = "pattern_loose"
	strategyEmpty           = "empty"
)

// thousandSuffix multiplies values written as "1k" or "5.5K".
const thousandSuffix = 1000

// Primary pattern: a member-id line followed, possibly across lines, by a
// contribution line. Both full-width and ASCII colons appear in replies.
var primaryPattern = regexp.MustCompile(`(?s)會員\s*ID[：:]\s*(.+?)[\n\r].*?(?:金幣捐獻|活躍貢獻)[：:]\s*([0-9.kK]+)`)

// Loose pattern: any "label : value" line, applied only when the primary
// pattern matches nothing.
var loosePattern = regexp.MustCompile(`([^\n\r:：]+)[：:][^\n\r:：]*?(\d+\.?\d*[kK]?|\d*\.?\d+[kK]?)`)

// Extraction is one (member, contribution) pair in reply order.
type Extraction struct {
	MemberID     string  `json:"memberId"`
	Contribution float64 `json:"contribution"`
}

// Parser extracts contribution records from oracle replies.
type Parser struct {
	// dropUnparsable discards a matched row whose value cannot be coerced
	// instead of recording it with contribution 0.
	dropUnparsable bool
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts a raw oracle reply into extractions. It never fails;
// input that matches no strategy yields an empty slice. Ordering follows
// first appearance in the reply and duplicates are kept.
func (p *Parser) Parse(raw string) []Extraction {
	cleaned := stripFence(raw)

	var decoded interface{}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err == nil {
		if out, ok := p.fromBilingualArray(decoded); ok {
			metrics.RecordParseStrategy(strategyBilingualJSON)
			return out
		}
		if out, ok := p.fromTargetShape(cleaned); ok {
			metrics.RecordParseStrategy(strategyPassthroughJSON)
			return out
		}
		// Well-formed JSON in an unusable shape; fall through to the
		// text patterns against the original reply.
	}

	if out := p.fromPattern(raw, primaryPattern); len(out) > 0 {
		metrics.RecordParseStrategy(strategyPatternPrimary)
		return out
	}
	if out := p.fromPattern(raw, loosePattern); len(out) > 0 {
		metrics.RecordParseStrategy(strategyPatternLoose)
		return out
	}

	metrics.RecordParseStrategy(strategyEmpty)
	return nil
}

// stripFence removes a leading ```json or ``` fence line and a trailing
// ``` line. Unfenced input passes through untouched.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	out := s
	switch {
	case strings.HasPrefix(out, "```json\n"):
		out = strings.TrimPrefix(out, "```json\n")
	case strings.HasPrefix(out, "```\n"):
		out = strings.TrimPrefix(out, "```\n")
	default:
		// Fence marker with an unexpected tag; drop the first line.
		if idx := strings.IndexByte(out, '\n'); idx >= 0 {
			out = out[idx+1:]
		}
	}
	out = strings.TrimSuffix(out, "\n```")
	return out
}

// fromBilingualArray maps a non-empty array of objects keyed by the
// bilingual schema. The coin key wins when both are present.
func (p *Parser) fromBilingualArray(decoded interface{}) ([]Extraction, bool) {
	items, ok := decoded.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	first, ok := items[0].(map[string]interface{})
	if !ok {
		return nil, false
	}
	if _, hasID := first[keyMemberID]; !hasID {
		return nil, false
	}
	_, hasCoins := first[keyCoins]
	_, hasActivity := first[keyActivity]
	if !hasCoins && !hasActivity {
		return nil, false
	}

	out := make([]Extraction, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := item[keyMemberID].(string)
		var contribution float64
		if v, ok := item[keyCoins]; ok {
			contribution = p.coerceNumber(v)
		} else if v, ok := item[keyActivity]; ok {
			contribution = p.coerceNumber(v)
		}
		out = append(out, Extraction{MemberID: id, Contribution: contribution})
	}
	return out, true
}

// fromTargetShape accepts JSON already shaped as the target records, but
// only after validating it: non-empty array, non-empty member ids, finite
// non-negative contributions. Anything else is rejected so the text
// patterns get their chance.
func (p *Parser) fromTargetShape(cleaned string) ([]Extraction, bool) {
	var out []Extraction
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, false
	}
	if len(out) == 0 {
		return nil, false
	}
	for _, e := range out {
		if strings.TrimSpace(e.MemberID) == "" {
			return nil, false
		}
		if math.IsNaN(e.Contribution) || math.IsInf(e.Contribution, 0) || e.Contribution < 0 {
			return nil, false
		}
	}
	return out, true
}

// fromPattern collects every match of re over the full reply.
func (p *Parser) fromPattern(raw string, re *regexp.Regexp) []Extraction {
	matches := re.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Extraction, 0, len(matches))
	for _, m := range matches {
		id := strings.TrimSpace(m[1])
		value, ok := parseContribution(m[2])
		if !ok {
			metrics.RecordCoercionFailure()
			if p.dropUnparsable {
				continue
			}
			value = 0
		}
		out = append(out, Extraction{MemberID: id, Contribution: value})
	}
	return out
}

// coerceNumber converts a decoded JSON value to a non-negative finite
// contribution. Values that cannot be coerced count as zero.
func (p *Parser) coerceNumber(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, ok := parseContribution(n)
		if !ok {
			metrics.RecordCoercionFailure()
			return 0
		}
		f = parsed
	default:
		metrics.RecordCoercionFailure()
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		metrics.RecordCoercionFailure()
		return 0
	}
	return f
}

// parseContribution parses a textual value, honoring a trailing k/K
// thousand suffix ("1k" -> 1000, "5.5k" -> 5500).
func parseContribution(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	multiplier := 1.0
	if lower := strings.ToLower(s); strings.Contains(lower, "k") {
		multiplier = thousandSuffix
		s = strings.ReplaceAll(strings.ReplaceAll(s, "k", ""), "K", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f * multiplier, true
}
