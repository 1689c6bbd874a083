package domain

import "time"

// RequestStatus is the lifecycle state of a membership request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusDeclined, RequestStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the request can no longer transition
func (s RequestStatus) Terminal() bool {
	return s.Valid() && s != RequestStatusPending
}

// MembershipRequest is an invitation into a church. It is created by the
// invite flow and resolved exactly once via accept or decline.
type MembershipRequest struct {
	ID        string        `json:"id"`
	ChurchID  string        `json:"church_id"`
	Status    RequestStatus `json:"status"`
	User      Member        `json:"user"`
	Message   string        `json:"message,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// CountRequestsByStatus groups the unfiltered collection by status for the
// per-status count badges.
func CountRequestsByStatus(requests []MembershipRequest) map[RequestStatus]int {
	counts := make(map[RequestStatus]int)
	for _, r := range requests {
		counts[r.Status]++
	}
	return counts
}

// FilterRequestsByStatus returns the requests with the given status
func FilterRequestsByStatus(requests []MembershipRequest, status RequestStatus) []MembershipRequest {
	filtered := make([]MembershipRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
