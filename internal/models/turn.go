// ABOUTME: TurnResult is the immutable output of one assistant turn
// ABOUTME: Its tag becomes the previous-tag input of the next turn
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TurnResult is what the core hands back to an orchestrator
type TurnResult struct {
	Text string `json:"text"`
	Exit bool   `json:"exit"`
	// Tag is empty when no intent could be resolved
	Tag Tag `json:"tag,omitempty"`
}

// HasTag reports whether the turn resolved to an intent
func (r TurnResult) HasTag() bool {
	return r.Tag != ""
}

// NewSessionID generates a unique conversation identifier
func NewSessionID() string {
	return fmt.Sprintf("session_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
