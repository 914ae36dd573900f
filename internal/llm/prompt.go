// ABOUTME: Prompts shared by every generative backend
// ABOUTME: Replies are short Russian speech without markup
package llm

import (
	"errors"
	"fmt"

	"github.com/harper/vegra/internal/models"
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("llm returned an empty response")

// ReplySystemPrompt frames the model as a spoken voice assistant
const ReplySystemPrompt = `Ты голосовой помощник на компьютере пользователя.
Отвечай по-русски, коротко и по делу: одно-три предложения.
Ответ будет озвучен, поэтому не используй списки, разметку, эмодзи и ссылки.`

// ReplyUserPrompt renders the utterance together with the detected intent
func ReplyUserPrompt(utterance string, tag models.Tag) string {
	if tag == "" {
		return utterance
	}
	return fmt.Sprintf("Намерение: %s\nПользователь сказал: %s", tag, utterance)
}
