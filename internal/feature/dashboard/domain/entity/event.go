package entity

import "strings"

// Impact は経済指標イベントの重要度です。
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// ParseImpact は大文字小文字を区別せずに重要度を解釈します。
// High / Medium 以外はすべて Low として扱います。
func ParseImpact(s string) Impact {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ImpactHigh
	case "medium":
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// CalendarEvent は経済カレンダーの1イベントを表します。
// IDは "event-<index>" 形式で、同一取得バッチ内でのみ一意です。
type CalendarEvent struct {
	ID       string
	Date     string
	Time     string
	Event    string
	Impact   Impact
	Actual   string // 任意
	Forecast string // 任意
	Previous string // 任意
}
