// ABOUTME: Russian time and date formatting for the clock and calendar intents
// ABOUTME: Date reads "понедельник, 15 января 2024"
package core

import (
	"fmt"
	"time"
)

var weekdays = [...]string{
	time.Sunday:    "воскресенье",
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
}

// months are genitive, as used after a day number
var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatTime renders t as zero-padded 24-hour HH:MM
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate renders t as "<weekday>, <day> <month> <year>"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}
