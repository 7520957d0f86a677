package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// fencedJSON は ```json で始まるコードブロックの中身にマッチします。
	fencedJSON = regexp.MustCompile("(?is)```json[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
	// looseJSON は最初の { または [ から最後の } または ] までに貪欲にマッチします。
	looseJSON = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// ExtractJSON は自由形式の応答テキストからJSONを取り出します。
//
// 1. ```json のコードブロックがあればその中身を使います。
// 2. 無ければ最初の { / [ から最後の } / ] までを使います。
//
// いずれも見つからない、または見つかった部分がJSONとして不正な場合は ErrNoPayload を返します。
// コードブロックが見つかった場合は、その中身が不正でも 2 へはフォールバックしません。
func ExtractJSON(text string) (json.RawMessage, error) {
	var candidate string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		candidate = looseJSON.FindString(text)
	}

	candidate = strings.TrimSpace(candidate)
	if candidate == "" || !json.Valid([]byte(candidate)) {
		return nil, ErrNoPayload
	}
	return json.RawMessage(candidate), nil
}
