package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// looseString はJSONの文字列・数値・真偽値・nullを文字列として受け取ります。
// モデルが価格を数値で返すことがあるため、数値はリテラルのまま保持します。
type looseString string

// UnmarshalJSON はjson.Unmarshalerを実装します。
func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case '{', '[':
		return fmt.Errorf("expected scalar value, got %s", b[:1])
	default:
		*s = looseString(b)
	}
	return nil
}

// rawQuote は応答JSONの marketData 要素です。
type rawQuote struct {
	Name          looseString `json:"name"`
	Symbol        looseString `json:"symbol"`
	Price         looseString `json:"price"`
	Change        looseString `json:"change"`
	ChangePercent looseString `json:"changePercent"`
}

// rawNews は応答JSONの news 要素です。
type rawNews struct {
	Time   looseString `json:"time"`
	Title  looseString `json:"title"`
	Source looseString `json:"source"`
}

// rawEvent は応答JSONの events 要素です。
type rawEvent struct {
	Date     looseString `json:"date"`
	Time     looseString `json:"time"`
	Event    looseString `json:"event"`
	Impact   looseString `json:"impact"`
	Actual   looseString `json:"actual"`
	Forecast looseString `json:"forecast"`
	Previous looseString `json:"previous"`
}

// rawPayload は応答JSON全体です。欠けたキーは空のコレクションとして扱います。
type rawPayload struct {
	MarketData []rawQuote `json:"marketData"`
	News       []rawNews  `json:"news"`
	Events     []rawEvent `json:"events"`
}

// decodePayload は抽出済みJSONをrawPayloadに変換します。
// トップレベルがオブジェクト以外（配列など）の場合は空のペイロードとし、null は ErrNoPayload です。
func decodePayload(raw json.RawMessage) (rawPayload, error) {
	var p rawPayload
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, ErrNoPayload
	}
	if trimmed[0] != '{' {
		return p, nil
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return p, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}
