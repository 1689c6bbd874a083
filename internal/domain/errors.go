package domain

import "errors"

var (
	// ErrEndBeforeStart is returned when an edited end time would not be
	// after the event's start time.
	ErrEndBeforeStart = errors.New("end time must be after start time")

	// ErrAlreadyInGroup is returned when a team member is added to a group
	// while already belonging to another group of the same team.
	ErrAlreadyInGroup = errors.New("member already belongs to a group in this team")

	// ErrNotTeamMember is returned when a group operation targets a user who
	// is not a member of the parent team.
	ErrNotTeamMember = errors.New("user is not a member of this team")

	// ErrRequestResolved is returned when accepting or declining a request
	// that is no longer pending.
	ErrRequestResolved = errors.New("membership request has already been resolved")
)
