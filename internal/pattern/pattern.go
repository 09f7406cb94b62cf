// Package pattern implements vanity pattern validation, matching and
// analytic difficulty estimation.
package pattern

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the pattern's position requirement.
type Kind int

const (
	Prefix Kind = iota
	Suffix
	Contains
)

func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Pattern is a validated vanity search target.
type Pattern struct {
	Value          string
	Kind           Kind
	CaseInsensitive bool
}

// representativeAddressLen is used for the Contains difficulty formula,
// which needs a concrete address length to count the sliding-window
// positions a match could start at.
const representativeAddressLen = 40

// New validates value against alphabet (case-folded when caseInsensitive)
// and returns a Pattern, or an error describing the first invalid
// character — configuration errors are surfaced synchronously, before any
// search starts.
func New(value string, kind Kind, caseInsensitive bool, alphabet map[rune]bool) (*Pattern, error) {
	if value == "" {
		return nil, fmt.Errorf("pattern: value must not be empty")
	}

	test := value
	if caseInsensitive {
		test = strings.ToLower(value)
	}
	for _, r := range test {
		if alphabet[r] {
			continue
		}
		if caseInsensitive {
			upper := []rune(strings.ToUpper(string(r)))[0]
			if alphabet[upper] {
				continue
			}
		}
		return nil, fmt.Errorf("pattern: invalid character %q for this chain's alphabet", r)
	}

	return &Pattern{Value: value, Kind: kind, CaseInsensitive: caseInsensitive}, nil
}

// Matches reports whether address (after stripping visiblePrefix for Prefix
// patterns, satisfies the pattern.
func (p *Pattern) Matches(address string, visiblePrefix string) bool {
	addr := address
	target := p.Value
	if p.CaseInsensitive {
		addr = strings.ToLower(addr)
		target = strings.ToLower(target)
	}

	switch p.Kind {
	case Prefix:
		searchable := addr
		if visiblePrefix != "" {
			vp := visiblePrefix
			if p.CaseInsensitive {
				vp = strings.ToLower(vp)
			}
			if !strings.HasPrefix(searchable, vp) {
				return false
			}
			searchable = searchable[len(vp):]
		}
		return strings.HasPrefix(searchable, target)
	case Suffix:
		return strings.HasSuffix(addr, target)
	case Contains:
		return strings.Contains(addr, target)
	default:
		return false
	}
}

// Difficulty estimates the expected number of independent trials before a
// uniformly random address satisfies the pattern.
func (p *Pattern) Difficulty(alphabetSize int) float64 {
	n := float64(alphabetSize)
	l := float64(len([]rune(p.Value)))

	switch p.Kind {
	case Prefix, Suffix:
		d := math.Pow(n, l)
		if p.CaseInsensitive {
			alphaCount := 0
			for _, r := range p.Value {
				if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
					alphaCount++
				}
			}
			d /= math.Pow(2, float64(alphaCount))
		}
		return d
	case Contains:
		d := math.Pow(n, l)
		positions := float64(representativeAddressLen) - l + 1
		if positions < 1 {
			positions = 1
		}
		return d / positions
	default:
		return math.Inf(1)
	}
}

// HitProbability returns 1 - exp(-keysTested / difficulty), the calibrated
// cumulative hit probability used by the progress reporter.
func HitProbability(keysTested uint64, difficulty float64) float64 {
	if difficulty <= 0 {
		return 1
	}
	return 1 - math.Exp(-float64(keysTested)/difficulty)
}

// ProjectedRemaining50 returns the projected remaining time, in seconds, to
// reach a 50% cumulative hit probability at the given rate (keys/sec).
func ProjectedRemaining50(keysTested uint64, difficulty float64, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	remaining := difficulty*math.Ln2 - float64(keysTested)
	if remaining < 0 {
		remaining = 0
	}
	return remaining / rate
}
