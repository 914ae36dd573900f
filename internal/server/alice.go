// ABOUTME: Request and response models of the Yandex Alice skill protocol
// ABOUTME: See https://yandex.ru/dev/dialogs/alice/doc/request.html
package server

const (
	TypeSimpleUtterance = "SimpleUtterance"
	aliceVersion        = "1.0"
)

// AliceRequest describes an incoming skill call
type AliceRequest struct {
	Meta    AliceMeta    `json:"meta"`
	Request AliceCommand `json:"request"`
	Session AliceSession `json:"session"`
	Version string       `json:"version"`
}

// AliceMeta carries client details
type AliceMeta struct {
	Locale   string `json:"locale"`
	Timezone string `json:"timezone"`
}

// AliceCommand is the recognized user phrase
type AliceCommand struct {
	Type              string `json:"type"`
	Command           string `json:"command"`
	OriginalUtterance string `json:"original_utterance"`
}

// AliceSession identifies the conversation
type AliceSession struct {
	SessionID string    `json:"session_id"`
	MessageID int       `json:"message_id"`
	New       bool      `json:"new"`
	User      AliceUser `json:"user"`
}

// AliceUser is the authenticated Yandex user, if any
type AliceUser struct {
	UserID string `json:"user_id"`
}

// AliceResponse is the skill's answer
type AliceResponse struct {
	Response AliceResponsePayload `json:"response"`
	Version  string               `json:"version"`
}

// AliceResponsePayload is the text Alice speaks
type AliceResponsePayload struct {
	Text       string `json:"text"`
	EndSession bool   `json:"end_session"`
}

// utterance prefers the raw phrase so case survives for implicit searches
func (r AliceRequest) utterance() string {
	if r.Request.OriginalUtterance != "" {
		return r.Request.OriginalUtterance
	}
	return r.Request.Command
}
