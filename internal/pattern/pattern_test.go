package pattern

import (
	"math"
	"testing"
)

func hexAlphabet() map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range "0123456789abcdefABCDEF" {
		set[r] = true
	}
	return set
}

func TestNewRejectsEmptyValue(t *testing.T) {
	if _, err := New("", Prefix, false, hexAlphabet()); err == nil {
		t.Error("expected error for empty pattern value")
	}
}

func TestNewRejectsInvalidCharacter(t *testing.T) {
	if _, err := New("zz", Prefix, false, hexAlphabet()); err == nil {
		t.Error("expected error for character outside alphabet")
	}
}

func TestNewAcceptsCaseFoldedCharacter(t *testing.T) {
	alphabet := map[rune]bool{'a': true, 'b': true}
	if _, err := New("AB", Prefix, true, alphabet); err != nil {
		t.Errorf("expected case-insensitive match to accept uppercase: %v", err)
	}
	if _, err := New("AB", Prefix, false, alphabet); err == nil {
		t.Error("expected case-sensitive match to reject uppercase")
	}
}

func TestMatchesPrefixStripsVisiblePrefix(t *testing.T) {
	p, err := New("cafe", Prefix, false, hexAlphabet())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.Matches("0xcafebabe", "0x") {
		t.Error("expected match after stripping visible prefix")
	}
	if p.Matches("0xbabecafe", "0x") {
		t.Error("expected no match: pattern only applies right after the visible prefix")
	}
}

func TestMatchesSuffixAndContainsIgnoreVisiblePrefix(t *testing.T) {
	suffix, _ := New("babe", Suffix, false, hexAlphabet())
	if !suffix.Matches("0xcafebabe", "0x") {
		t.Error("suffix match failed")
	}

	contains, _ := New("feba", Contains, false, hexAlphabet())
	if !contains.Matches("0xcafebabe", "0x") {
		t.Error("contains match failed")
	}
}

func TestDifficultyPrefixCaseInsensitive(t *testing.T) {
	p, _ := New("aB", Prefix, true, hexAlphabet())
	got := p.Difficulty(16)
	want := math.Pow(16, 2) / math.Pow(2, 2) // 2 alphabetic chars
	if got != want {
		t.Errorf("difficulty = %v, want %v", got, want)
	}
}

func TestDifficultyContainsUsesRepresentativeLength(t *testing.T) {
	p, _ := New("ab", Contains, false, hexAlphabet())
	got := p.Difficulty(16)
	want := math.Pow(16, 2) / float64(representativeAddressLen-2+1)
	if got != want {
		t.Errorf("difficulty = %v, want %v", got, want)
	}
}

func TestHitProbabilityMonotonic(t *testing.T) {
	low := HitProbability(10, 1000)
	high := HitProbability(1000, 1000)
	if !(low < high) {
		t.Errorf("expected hit probability to increase with keys tested: low=%v high=%v", low, high)
	}
	if HitProbability(0, 1000) != 0 {
		t.Error("hit probability at 0 keys should be 0")
	}
}

func TestProjectedRemaining50NeverNegative(t *testing.T) {
	r := ProjectedRemaining50(1_000_000, 10, 1000)
	if r < 0 {
		t.Errorf("projected remaining time should clamp at 0, got %v", r)
	}
}
