package espn

import "errors"

// Sentinel kinds for ESPN league errors.
var (
	ErrNotConfigured    = errors.New("espn league not configured")
	ErrUnexpectedStatus = errors.New("unexpected espn status")
	ErrTeamNotFound     = errors.New("fantasy team not found")
)
