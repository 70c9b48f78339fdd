package catalog

import (
	"regexp"
	"strings"
)

// matcher is a predicate over page content.
type matcher func(content string) bool

// pattern compiles a case-insensitive regular expression.
func pattern(expr string) matcher {
	re := regexp.MustCompile("(?i)" + expr)
	return re.MatchString
}

// contains matches when any of the substrings appears, case-sensitively.
func contains(subs ...string) matcher {
	return func(content string) bool {
		for _, s := range subs {
			if strings.Contains(content, s) {
				return true
			}
		}
		return false
	}
}

func anyOf(ms ...matcher) matcher {
	return func(content string) bool {
		for _, m := range ms {
			if m(content) {
				return true
			}
		}
		return false
	}
}

func allOf(ms ...matcher) matcher {
	return func(content string) bool {
		for _, m := range ms {
			if !m(content) {
				return false
			}
		}
		return true
	}
}
