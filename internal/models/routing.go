// ABOUTME: Resolution types produced by the intent resolution cascade
// ABOUTME: Names the 5 ordered stages and carries the tag plus optional query override
package models

// Stage identifies which step of the resolution cascade produced the tag
type Stage string

const (
	// StageFollowUp - Previous turn was a search and the utterance continues it ("а теперь ...")
	StageFollowUp Stage = "follow_up"

	// StageImplicitSearch - Task description ("как сделать ...") searched verbatim
	StageImplicitSearch Stage = "implicit_search"

	// StageSearchCommand - Explicit search verb ("найди ...")
	StageSearchCommand Stage = "search_command"

	// StageOpenApp - Explicit open verb ("открой ...")
	StageOpenApp Stage = "open_app"

	// StageClassifier - No rule matched, tag came from the classifier
	StageClassifier Stage = "classifier"
)

// Stages lists every stage in evaluation order
var Stages = []Stage{
	StageFollowUp,
	StageImplicitSearch,
	StageSearchCommand,
	StageOpenApp,
	StageClassifier,
}

// IsValid reports whether s is one of the known stages
func (s Stage) IsValid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// IsRule reports whether the stage is a deterministic rule (not the classifier)
func (s Stage) IsRule() bool {
	return s.IsValid() && s != StageClassifier
}

// Resolution is the outcome of one pass through the cascade
type Resolution struct {
	Tag   Tag   `json:"tag"`
	Stage Stage `json:"stage"`

	// QueryOverride, when HasOverride is set, replaces slot extraction for search
	QueryOverride string `json:"query_override,omitempty"`
	HasOverride   bool   `json:"has_override,omitempty"`
}
