package models

import "errors"

var (
	// ErrIllegalAction is returned when a pick, placement or swap breaks a
	// position cap, slot eligibility or bench capacity.
	ErrIllegalAction = errors.New("illegal action")
	// ErrNoEligibleCandidate is returned when a draft or waiver search finds nothing.
	ErrNoEligibleCandidate = errors.New("no eligible candidate")
	ErrConfiguration       = errors.New("invalid configuration")
)
