package entity

// NewsItem は1件のニュース見出しを表します。
// IDは "news-<index>" 形式で、同一取得バッチ内でのみ一意です。
type NewsItem struct {
	ID     string
	Time   string
	Title  string
	Source string
}
