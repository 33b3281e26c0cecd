package github_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-revshare-engine/internal/github"
)

func TestParseLinkedIssues(t *testing.T) {
	const repo = "b0ase/kintsugi"

	tests := []struct {
		name     string
		body     string
		expected []int
	}{
		{name: "empty body", body: "", expected: nil},
		{name: "no keywords", body: "Refactors #12 and mentions #13", expected: nil},
		{name: "all keyword forms", body: "close #1, closes #2, closed #3, fix #4, fixes #5, fixed #6, resolve #7, resolves #8, resolved #9", expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "case insensitive", body: "FIXES #10\nCloses #11", expected: []int{10, 11}},
		{name: "same repository qualified", body: "Fixes b0ase/kintsugi#21", expected: []int{21}},
		{name: "qualified repository case insensitive", body: "Fixes B0ase/Kintsugi#22", expected: []int{22}},
		{name: "other repository ignored", body: "Fixes someone/else#5 and closes #6", expected: []int{6}},
		{name: "duplicates collapsed", body: "Fixes #7. Also fixes #7 and closes #8", expected: []int{7, 8}},
		{name: "keyword inside a word", body: "prefixes #3", expected: nil},
		{name: "keyword needs whitespace", body: "fixes#3", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, github.ParseLinkedIssues(tt.body, repo))
		})
	}
}
