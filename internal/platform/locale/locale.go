// Package locale は表示ロケールに応じた書式とメッセージを提供します。
package locale

import (
	"golang.org/x/text/language"
)

// EmptyTimeLabel は未取得時に表示する時刻ラベルです。
const EmptyTimeLabel = "--:--:--"

// Locale は1つの表示ロケールの書式とメッセージです。
type Locale struct {
	Tag            language.Tag
	TimeLayout     string            // 時刻ラベルの書式（time.Format 形式）
	FailureMessage string            // 取得失敗時の汎用メッセージ
	impactLabels   map[string]string // 重要度の表示ラベル
}

// ImpactLabel は重要度（High / Medium / Low）の表示ラベルを返します。
// 未知の値は Low のラベルになります。
func (l Locale) ImpactLabel(impact string) string {
	if s, ok := l.impactLabels[impact]; ok {
		return s
	}
	return l.impactLabels["Low"]
}

// locales は対応ロケールの一覧です。先頭はマッチしなかった場合の既定値になります。
var locales = []Locale{
	{
		Tag:            language.SimplifiedChinese,
		TimeLayout:     "15:04:05",
		FailureMessage: "数据更新失败，请检查网络或 API Key (Failed to update data)",
		impactLabels:   map[string]string{"High": "高", "Medium": "中", "Low": "低"},
	},
	{
		Tag:            language.Japanese,
		TimeLayout:     "15:04:05",
		FailureMessage: "データの更新に失敗しました。ネットワークまたはAPIキーを確認してください",
		impactLabels:   map[string]string{"High": "高", "Medium": "中", "Low": "低"},
	},
	{
		Tag:            language.AmericanEnglish,
		TimeLayout:     "3:04:05 PM",
		FailureMessage: "Failed to update data. Check your network or API key.",
		impactLabels:   map[string]string{"High": "High", "Medium": "Medium", "Low": "Low"},
	},
}

var matcher = language.NewMatcher(tags())

func tags() []language.Tag {
	out := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		out = append(out, l.Tag)
	}
	return out
}

// Resolve はBCP 47のロケール文字列（例: "zh-CN", "ja", "en-US"）に最も近いLocaleを返します。
// 解釈できない場合は簡体字中国語を返します。
func Resolve(s string) Locale {
	tag, err := language.Parse(s)
	if err != nil {
		return locales[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return locales[0]
	}
	return locales[idx]
}
