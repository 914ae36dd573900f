// ABOUTME: Tests for clock and calendar formatting and reply truncation
// ABOUTME: Dates cover every weekday and month table entry boundary
package core

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "00:00"},
		{time.Date(2024, 1, 1, 9, 5, 59, 0, time.UTC), "09:05"},
		{time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), "23:59"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), "понедельник, 15 января 2024"},
		{time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC), "пятница, 8 марта 2024"},
		{time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC), "воскресенье, 31 декабря 2023"},
		{time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), "среда, 1 мая 2024"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateReply(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"under cap", "Короткий ответ.", 100, "Короткий ответ."},
		{"trims", "  ответ  ", 100, "ответ"},
		{"no cap", strings.Repeat("а", 1000), 0, strings.Repeat("а", 1000)},
		{"cuts at late sentence end", "Первое предложение. Второе предложение тут.", 30, "Первое предложение."},
		{"early boundary ignored", "Да. " + strings.Repeat("б", 30), 20, "Да. " + strings.Repeat("б", 13) + "..."},
		{"hard cut", strings.Repeat("в", 30), 10, strings.Repeat("в", 7) + "..."},
		{"exclamation boundary", "Отлично! Продолжаю рассказ дальше", 12, "Отлично!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateReply(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("TruncateReply() = %q, want %q", got, tt.want)
			}
		})
	}
}
