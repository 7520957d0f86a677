package dto

// QuoteResponse は相場1件のレスポンスDTOです。
type QuoteResponse struct {
	Symbol               string `json:"symbol"`               // 銘柄コード
	Name                 string `json:"name"`                 // 表示名
	Price                string `json:"price"`                // 価格
	Change               string `json:"change"`               // 前日比
	ChangePercent        string `json:"changePercent"`        // 前日比（%）、受信したまま
	ChangePercentDisplay string `json:"changePercentDisplay"` // "%" を補った表示用
	IsUp                 bool   `json:"isUp"`                 // 上昇（0以上）か
	Timestamp            string `json:"timestamp"`            // 取得時刻ラベル
}

// NewsResponse はニュース1件のレスポンスDTOです。
type NewsResponse struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// EventResponse は経済カレンダー1件のレスポンスDTOです。
type EventResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Event       string `json:"event"`
	Impact      string `json:"impact"`      // High / Medium / Low
	ImpactLabel string `json:"impactLabel"` // 表示ロケールでのラベル
	Actual      string `json:"actual,omitempty"`
	Forecast    string `json:"forecast,omitempty"`
	Previous    string `json:"previous,omitempty"`
}

// DashboardResponse はダッシュボード全体のレスポンスDTOです。
// コレクションは常に配列で、null にはなりません。
type DashboardResponse struct {
	MarketData       []QuoteResponse `json:"marketData"`
	News             []NewsResponse  `json:"news"`
	Events           []EventResponse `json:"events"`
	LastUpdated      *string         `json:"lastUpdated"`      // RFC3339。未取得なら null
	LastUpdatedLabel string          `json:"lastUpdatedLabel"` // 表示用の時刻ラベル
	IsLoading        bool            `json:"isLoading"`
	Error            *string         `json:"error"`
	Status           string          `json:"status"` // idle / loading / error
}

// ErrorResponse はエラーレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
