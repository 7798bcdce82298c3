package test

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/onsi/gomega/matchers"
	"github.com/onsi/gomega/types"
)

// EqualDiff is like Equal but gives cmp.Diff style output.
func EqualDiff(expect interface{}) types.GomegaMatcher {
	return &diffMatcher{matchers.EqualMatcher{Expected: expect}}
}

type diffMatcher struct{ matchers.EqualMatcher }

func (m *diffMatcher) FailureMessage(actual interface{}) (message string) {
	return "Unexpected diff (-expected, +actual):\n" + cmp.Diff(m.EqualMatcher.Expected, actual)
}

// EqualTrimLines matches multi-line text ignoring blank lines and leading/trailing space.
// On failure gives a diff-style message useful for long rendered config files.
func EqualTrimLines(expected string) types.GomegaMatcher {
	return &lineMatcher{expected: expected}
}

type lineMatcher struct {
	expected string
	diff     string
}

func (m *lineMatcher) Match(actual interface{}) (success bool, err error) {
	s, ok := actual.(string)
	if !ok {
		return false, fmt.Errorf("EqualTrimLines expects a string, got %T", actual)
	}
	m.diff = cmp.Diff(trimLines(m.expected), trimLines(s))
	return m.diff == "", nil
}

func (m *lineMatcher) FailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Unexpected diff (-expected, +actual):\n%s\n====\nActual value:\n%s\n", m.diff, actual)
}

func (m *lineMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return "Expected differences but none found."
}

func trimLines(in string) []string {
	out := []string{}
	for _, line := range strings.Split(in, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
