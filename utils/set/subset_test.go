package set

import (
	"strings"
	"testing"
)

func compareResults(t *testing.T, found, expected map[string]struct{}) {
	for str := range expected {
		if _, ok := found[str]; !ok {
			t.Errorf("Subset %q expected but not found", str)
		}
	}

	for str := range found {
		if _, ok := expected[str]; !ok {
			t.Errorf("Subset %q found but not expected", str)
		}
	}
}

func TestSubset(t *testing.T) {
	S := SubsetsV("A", "B", "C", "D")

	expected := map[string]struct{}{
		"":     {},
		"A":    {},
		"B":    {},
		"C":    {},
		"D":    {},
		"AB":   {},
		"AC":   {},
		"AD":   {},
		"BC":   {},
		"BD":   {},
		"CD":   {},
		"ABC":  {},
		"ABD":  {},
		"ACD":  {},
		"BCD":  {},
		"ABCD": {},
	}

	found := make(map[string]struct{})

	S.ForEach(func(ss []string) {
		found[strings.Join(ss, "")] = struct{}{}
	})

	compareResults(t, found, expected)
}

func TestEmpty(t *testing.T) {
	S := SubsetsV[string]()

	expected := map[string]struct{}{
		"": {},
	}

	found := make(map[string]struct{})

	S.ForEach(func(ss []string) {
		found[strings.Join(ss, "")] = struct{}{}
	})

	compareResults(t, found, expected)
}
