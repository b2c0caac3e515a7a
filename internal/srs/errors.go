package srs

import "errors"

var (
	ErrInvalidQuality  = errors.New("quality must be between 0 and 5")
	ErrSessionOpen     = errors.New("a study session is already open")
	ErrNoOpenSession   = errors.New("no study session is open")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
