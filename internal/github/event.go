package github

import "time"

// EventKind is the class of a webhook delivery
type EventKind string

const (
	EventKindIssue       EventKind = "issues"
	EventKindPullRequest EventKind = "pull_request"
	EventKindPing        EventKind = "ping"
	EventKindUnknown     EventKind = "unknown"
)

// Actions acted upon
const (
	ActionClosed   = "closed"
	ActionReopened = "reopened"
)

// HandledEvents lists the X-GitHub-Event values that are processed
var HandledEvents = []string{string(EventKindIssue), string(EventKindPullRequest), string(EventKindPing)}

// ClassifyEvent maps the X-GitHub-Event header to an EventKind
func ClassifyEvent(header string) EventKind {
	switch EventKind(header) {
	case EventKindIssue, EventKindPullRequest, EventKindPing:
		return EventKind(header)
	default:
		return EventKindUnknown
	}
}

// Repository is the repository block of a payload
type Repository struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// Issue is the issue block of an issues payload
type Issue struct {
	Number    int        `json:"number"`
	State     string     `json:"state"`
	ClosedAt  *time.Time `json:"closed_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// PullRequest is the pull_request block of a pull_request payload
type PullRequest struct {
	Number   int        `json:"number"`
	Merged   bool       `json:"merged"`
	Body     *string    `json:"body"`
	MergedAt *time.Time `json:"merged_at"`
}

// IssuesEvent is the payload of an issues delivery
type IssuesEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Repository Repository `json:"repository"`
}

// PullRequestEvent is the payload of a pull_request delivery
type PullRequestEvent struct {
	Action      string      `json:"action"`
	PullRequest PullRequest `json:"pull_request"`
	Repository  Repository  `json:"repository"`
}

// PingEvent is the payload GitHub sends when a hook is first configured
type PingEvent struct {
	Zen    string `json:"zen"`
	HookID int64  `json:"hook_id"`
}

// MergedClose reports whether the delivery is a merge of the pull request
func (e PullRequestEvent) MergedClose() bool {
	return e.Action == ActionClosed && e.PullRequest.Merged
}

// BodyText returns the pull request description, empty when null
func (e PullRequestEvent) BodyText() string {
	if e.PullRequest.Body == nil {
		return ""
	}
	return *e.PullRequest.Body
}
