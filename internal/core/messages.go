// ABOUTME: Fixed user-facing texts for failure and clarification paths
// ABOUTME: These bypass the catalog because they fire when the catalog cannot help
package core

const (
	msgUnknownIntent   = "Не удалось определить намерение."
	msgNotHeard        = "Не расслышал. Попробуй ещё раз."
	msgWhichApp        = "Не понял, какое приложение открыть. Назови, например: блокнот, калькулятор, браузер."
	msgAppFailed       = "Не получилось открыть %s. Проверь название в списке приложений."
	msgWhatToSearch    = "Уточни, что искать в интернете."
	msgBrowserFailed   = "Не удалось открыть браузер."
	msgDefaultResponse = "Понял."
)

// Texts the orchestrators show outside a turn
const (
	Greeting       = "Вегра на связи. Слушаю тебя."
	NotTrainedText = "Модель не обучена. Сначала выполни: vegra train"
)
