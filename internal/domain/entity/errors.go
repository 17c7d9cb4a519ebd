package entity

import "errors"

var (
	// Agent errors
	ErrInvalidCreatorID = errors.New("invalid creator id")
	ErrInvalidAgentName = errors.New("invalid agent name")

	// Voice errors
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrInvalidVoiceID = errors.New("invalid voice id")
)
