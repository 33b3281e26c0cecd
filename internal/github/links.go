package github

import (
	"regexp"
	"strconv"
	"strings"
)

var linkPattern = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+([\w.-]+/[\w.-]+)?#(\d+)`)

// ParseLinkedIssues returns the issue numbers a pull request body closes, in order of first mention.
// References qualified with another repository than repoFullName are ignored.
func ParseLinkedIssues(body, repoFullName string) []int {
	var issues []int
	seen := make(map[int]struct{})

	for _, m := range linkPattern.FindAllStringSubmatch(body, -1) {
		if m[1] != "" && !strings.EqualFold(m[1], repoFullName) {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n <= 0 {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		issues = append(issues, n)
	}

	return issues
}
