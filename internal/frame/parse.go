package frame

import (
	"regexp"
	"strconv"
	"strings"
)

// Options controls how raw cells are turned into a Table.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the file name and header line.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// Unit normalization: convert values to target units using simple mappings.
	UnitNormalize bool
	UnitTargets   map[string]string // map[fromUnit]toUnit, e.g., {"g/L":"mg/L", "°F":"°C"}
}

// DefaultOptions returns reasonable defaults for loading a table. Values keep
// their header unit; set UnitNormalize to convert them to UnitTargets.
func DefaultOptions() Options {
	return Options{
		UnitTargets: map[string]string{
			"g/L":  "mg/L",
			"ug/L": "mg/L",
			"°F":   "°C",
		},
	}
}

var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// IsMissing reports whether a raw cell should be treated as a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

func sniffDelimiter(name, headerLine string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(headerLine, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

// separators picks the decimal and grouping runes for raw. When the
// decimal is not configured, whichever of ',' and '.' appears last is the
// decimal mark; grouping 0 means "strip every other common separator".
func separators(raw string, opt Options) (dec, group rune) {
	dec, group = opt.DecimalSeparator, opt.ThousandsSeparator
	if dec != 0 {
		return dec, group
	}
	comma, dot := strings.LastIndexByte(raw, ','), strings.LastIndexByte(raw, '.')
	switch {
	case comma > dot && dot >= 0:
		return ',', '.'
	case dot > comma && comma >= 0:
		return '.', ','
	case comma >= 0:
		return ',', group
	default:
		return '.', group
	}
}

// parseNumeric parses a locale-formatted number. A '%' sign and
// non-breaking spaces are ignored.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.NewReplacer("%", "", "\u00A0", " ").Replace(s)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec, group := separators(raw, opt)
	raw = strings.Map(func(r rune) rune {
		switch {
		case r == dec:
			return '.'
		case group == 0 && (r == ',' || r == '.' || r == ' '):
			return -1
		case group != 0 && r == group:
			return -1
		}
		return r
	}, raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

type unitPair struct{ from, to string }

var unitConversions = map[unitPair]func(float64) float64{
	{"g/L", "mg/L"}:  func(x float64) float64 { return x * 1000 },
	{"ug/L", "mg/L"}: func(x float64) float64 { return x / 1000 },
	{"°F", "°C"}:     func(x float64) float64 { return (x - 32) * 5 / 9 },
}

// normalizeUnit converts x from unit to the configured target unit when a
// conversion is known.
func normalizeUnit(x float64, unit string, opt Options) (float64, string, bool) {
	to, ok := opt.UnitTargets[unit]
	if !ok {
		return x, unit, false
	}
	conv, ok := unitConversions[unitPair{unit, to}]
	if !ok {
		return x, unit, false
	}
	return conv(x), to, true
}

// Header forms that carry a unit: "Alpha (%)", "Mass [mg/L]", "Conc_mg/L".
var (
	parenUnit   = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`)
	bracketUnit = regexp.MustCompile(`^(.*?)\s*\[([^\]]+)\]\s*$`)
	suffixUnit  = regexp.MustCompile(`^(.*?)[_\s-]+(mg/L|g/L|ug/L|°[CF]|Brix|%|ppm|ppb)$`)
)

// splitUnits separates a trailing unit from a header cell.
func splitUnits(header string) (name, unit string) {
	h := strings.TrimSpace(header)
	for _, re := range []*regexp.Regexp{parenUnit, bracketUnit, suffixUnit} {
		m := re.FindStringSubmatch(h)
		if m == nil {
			continue
		}
		if base, u := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]); base != "" && u != "" {
			return base, u
		}
	}
	return h, ""
}
