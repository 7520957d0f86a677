// Package usecase はdashboardフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"market_dashboard/internal/feature/dashboard/domain/entity"
)

// DashboardPrompt は相場・ニュース・経済カレンダーを要求する固定プロンプトです。
const DashboardPrompt = `
Role: Financial Data Aggregator for a Chinese Investment Dashboard.
Task: Retrieve real-time market data, latest financial news (China/US), and upcoming economic events.

1. **Market Data**: Find current price and daily percentage change for:
   - Shanghai Composite (000001.SS)
   - Shenzhen Component (399001.SZ)
   - CBOE VIX (^VIX)
   - Gold Futures (GC=F)
   - Bitcoin (BTC-USD)
   - USD/CNY (CNY=X)

2. **News**: Find 5 latest key financial headlines impacting Chinese or US markets.

3. **Calendar**: Find 3-5 key economic events for this week (e.g., US CPI, Non-Farm, Fed Rates, China GDP, PMI).

Output Format: Provide a single JSON object inside a ` + "```json" + ` code block.
Structure:
{
  "marketData": [
    { "name": "上证指数", "symbol": "000001.SS", "price": "3000.00", "change": "+10.00", "changePercent": "+0.33%" },
    ...
  ],
  "news": [
    { "time": "10:00", "title": "Headline in Chinese", "source": "Source Name" }
  ],
  "events": [
    { "date": "2023-10-27", "time": "20:30", "event": "Event Name in Chinese", "impact": "High", "actual": "", "forecast": "", "previous": "" }
  ]
}
Ensure all text is in Simplified Chinese.
For 'changePercent', ensure the sign (+/-) is present.
`

// ReplyGenerator は検索拡張付きでテキスト生成を行うリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ReplyGenerator interface {
	// Generate はプロンプトに対するモデルの応答テキストを返します。
	Generate(ctx context.Context, prompt string) (string, error)
}

// DashboardUsecase はAIへの問い合わせと応答の正規化を行います。
type DashboardUsecase struct {
	generator  ReplyGenerator
	normalizer *Normalizer
}

// NewDashboardUsecase はDashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(g ReplyGenerator, n *Normalizer) *DashboardUsecase {
	if n == nil {
		n = NewNormalizer(nil, "")
	}
	return &DashboardUsecase{generator: g, normalizer: n}
}

// FetchBrief は固定プロンプトで応答を取得し、Briefに変換します。
// 通信・認証エラーはそのまま返し、リトライは行いません。
func (u *DashboardUsecase) FetchBrief(ctx context.Context) (entity.Brief, error) {
	text, err := u.generator.Generate(ctx, DashboardPrompt)
	if err != nil {
		return entity.Brief{}, err
	}

	brief, err := u.normalizer.Normalize(text)
	if err != nil {
		slog.Warn("応答からデータを抽出できません", "error", err, "reply_length", len(text))
		return entity.Brief{}, err
	}
	return brief, nil
}
