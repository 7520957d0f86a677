package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"market_dashboard/internal/feature/dashboard/domain/entity"
)

const (
	// DefaultTimeLayout は取得時刻ラベルのデフォルト書式です（zh-CN の時刻表記）。
	DefaultTimeLayout = "15:04:05"
)

// leadingNumber は文字列先頭の数値部分にマッチします。
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Normalizer は応答テキストを型付きのBriefに変換します。
// I/Oは行わず、取得時刻ラベル以外は入力に対して決定的です。
type Normalizer struct {
	loc    *time.Location
	layout string
	now    func() time.Time
}

// NewNormalizer はNormalizerの新しいインスタンスを生成します。
// locがnilならUTC、layoutが空なら DefaultTimeLayout を使用します。
func NewNormalizer(loc *time.Location, layout string) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return &Normalizer{loc: loc, layout: layout, now: time.Now}
}

// Normalize は応答テキストからJSONを抽出し、3つのコレクションに変換します。
// JSONが見つからない・解釈できない場合は *IngestionError を返します。
func (n *Normalizer) Normalize(text string) (entity.Brief, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return entity.Brief{}, &IngestionError{Cause: err}
	}
	p, err := decodePayload(raw)
	if err != nil {
		return entity.Brief{}, &IngestionError{Cause: err}
	}

	stamp := n.now().In(n.loc).Format(n.layout)

	quotes := make([]entity.Quote, 0, len(p.MarketData))
	for _, q := range p.MarketData {
		quotes = append(quotes, entity.Quote{
			Symbol:        string(q.Symbol),
			Name:          string(q.Name),
			Price:         string(q.Price),
			Change:        string(q.Change),
			ChangePercent: string(q.ChangePercent),
			IsUp:          ParsePercent(string(q.ChangePercent)) >= 0,
			Timestamp:     stamp,
		})
	}

	news := make([]entity.NewsItem, 0, len(p.News))
	for i, item := range p.News {
		news = append(news, entity.NewsItem{
			ID:     fmt.Sprintf("news-%d", i),
			Time:   string(item.Time),
			Title:  string(item.Title),
			Source: string(item.Source),
		})
	}

	events := make([]entity.CalendarEvent, 0, len(p.Events))
	for i, ev := range p.Events {
		events = append(events, entity.CalendarEvent{
			ID:       fmt.Sprintf("event-%d", i),
			Date:     string(ev.Date),
			Time:     string(ev.Time),
			Event:    string(ev.Event),
			Impact:   entity.ParseImpact(string(ev.Impact)),
			Actual:   string(ev.Actual),
			Forecast: string(ev.Forecast),
			Previous: string(ev.Previous),
		})
	}

	return entity.Brief{Quotes: quotes, News: news, Events: events}, nil
}

// ParsePercent は "+0.33%" のような騰落率を数値に変換します。
// 先頭の数値部分のみを読み取り、読み取れない場合は 0 を返します。
func ParsePercent(s string) float64 {
	s = strings.Replace(s, "%", "", 1)
	// U+2212 (MINUS SIGN) はASCIIのハイフンとして扱う
	s = strings.ReplaceAll(s, "−", "-")
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
