package models

import (
	"fmt"
	"strings"
	"time"
)

// Repo is a GitHub repository identified by its owner and name.
type Repo struct {
	Owner string
	Name  string
}

// NewRepo parses a repository identifier in "owner/name" form.
func NewRepo(fullName string) (Repo, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("invalid repo format %q, expected owner/name", fullName)
	}
	return Repo{
		Owner: parts[0],
		Name:  parts[1],
	}, nil
}

// FullName returns the repo in "owner/name" form.
func (r Repo) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// MergeableState is GitHub's answer to whether a pull request can be merged
// cleanly. Unknown means the computation hasn't finished yet and is a
// transient state, not a third stable outcome.
type MergeableState int

const (
	MergeableStateUnknown MergeableState = iota
	MergeableStateMergeable
	MergeableStateConflicting
)

func (s MergeableState) String() string {
	switch s {
	case MergeableStateMergeable:
		return "mergeable"
	case MergeableStateConflicting:
		return "conflicting"
	}
	return "unknown"
}

// PullRequest is an immutable snapshot of one open pull request's observable
// state, captured once per run. All durable bot state lives in Labels and
// UpdatedAt on the remote PR; nothing survives between runs inside the bot.
type PullRequest struct {
	// Num is the pull request number, unique within a repo.
	Num int

	// HeadSHA is the SHA of the head commit, used to look up check runs.
	HeadSHA string

	// Labels holds the names of all labels currently on the PR.
	Labels []string

	// UpdatedAt is the last-activity timestamp, normalized to UTC.
	UpdatedAt time.Time

	// PendingReviewers and PendingTeamReviewers count requested reviewers
	// and teams that have not yet submitted a review.
	PendingReviewers     int
	PendingTeamReviewers int

	// Approved is true if any review on the PR is currently in the
	// APPROVED state.
	Approved bool

	Mergeable MergeableState
}

// HasLabel returns true if the PR currently carries the named label.
func (p PullRequest) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// AwaitingReview returns true if at least one requested reviewer or team has
// not responded yet.
func (p PullRequest) AwaitingReview() bool {
	return p.PendingReviewers > 0 || p.PendingTeamReviewers > 0
}
