package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"market_dashboard/internal/feature/dashboard/domain/entity"
)

const (
	// DefaultRefreshInterval は定期取得の間隔です。
	DefaultRefreshInterval = 60 * time.Second
	// DefaultFailureMessage は抽出失敗時に表示する汎用メッセージです。
	DefaultFailureMessage = "数据更新失败，请检查网络或 API Key (Failed to update data)"
)

// BriefFetcher は1回分のBriefを取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type BriefFetcher interface {
	FetchBrief(ctx context.Context) (entity.Brief, error)
}

// RefreshController は最新のSnapshotを保持し、定期・手動の取得サイクルを制御します。
//
// 状態は Idle / Loading / Error の3つで、Loading中に新しいサイクルは開始しません。
// 失敗時は直前に成功したコレクションを保持し、エラーメッセージのみ更新します。
type RefreshController struct {
	fetcher        BriefFetcher
	interval       time.Duration
	failureMessage string
	now            func() time.Time

	mu    sync.RWMutex
	state entity.Snapshot

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefreshController はRefreshControllerの新しいインスタンスを生成します。
// intervalが0以下なら60秒、failureMessageが空なら DefaultFailureMessage を使用します。
func NewRefreshController(fetcher BriefFetcher, interval time.Duration, failureMessage string) *RefreshController {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if failureMessage == "" {
		failureMessage = DefaultFailureMessage
	}
	return &RefreshController{
		fetcher:        fetcher,
		interval:       interval,
		failureMessage: failureMessage,
		now:            time.Now,
		state:          entity.Snapshot{Brief: entity.EmptyBrief()},
	}
}

// Interval は定期取得の間隔を返します。
func (c *RefreshController) Interval() time.Duration {
	return c.interval
}

// Snapshot は現在の状態のコピーを返します。
func (c *RefreshController) Snapshot() entity.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.state
	out.Brief = c.state.Brief.Clone()
	if c.state.LastUpdated != nil {
		t := *c.state.LastUpdated
		out.LastUpdated = &t
	}
	return out
}

// Start は直ちに1回取得し、以降 interval ごとに取得するバックグラウンドループを開始します。
// 既に開始済みの場合は何もしません。
func (c *RefreshController) Start(ctx context.Context) {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.loop(loopCtx, c.done)
}

// Stop は定期取得のタイマーを停止し、ループの終了を待ちます。
// 実行中の取得はキャンセルしません。複数回呼んでも安全です。
func (c *RefreshController) Stop() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *RefreshController) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	// 実行中の取得はタイマー停止後も完了させる
	cycleCtx := context.WithoutCancel(ctx)
	c.trigger(cycleCtx, "startup")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("定期取得を停止しました")
			return
		case <-ticker.C:
			c.trigger(cycleCtx, "timer")
		}
	}
}

// Trigger は手動取得を開始します。取得はバックグラウンドで実行されます。
// 既にLoading中であれば何もせず false を返します。
func (c *RefreshController) Trigger() bool {
	return c.trigger(context.Background(), "manual")
}

func (c *RefreshController) trigger(ctx context.Context, reason string) bool {
	if !c.begin() {
		slog.Info("取得中のためスキップしました", "reason", reason)
		return false
	}
	go c.run(ctx, reason)
	return true
}

// Refresh は取得サイクルを同期的に実行します。
// Loading中であれば ErrRefreshInProgress を返します。取得自体の失敗は状態に記録され、戻り値にはなりません。
func (c *RefreshController) Refresh(ctx context.Context) error {
	if !c.begin() {
		return ErrRefreshInProgress
	}
	c.run(ctx, "sync")
	return nil
}

// begin はLoadingでなければLoadingへ遷移して true を返します。
func (c *RefreshController) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Loading {
		return false
	}
	c.state.Loading = true
	return true
}

func (c *RefreshController) run(ctx context.Context, reason string) {
	slog.Info("ダッシュボードデータの取得を開始", "reason", reason)
	brief, err := c.fetcher.FetchBrief(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Loading = false
	if err != nil {
		c.state.Error = c.messageFor(err)
		slog.Error("ダッシュボードデータの取得に失敗", "reason", reason, "kind", failureKind(err), "error", err)
		return
	}

	c.state.Brief = withDefaults(brief)
	now := c.now()
	c.state.LastUpdated = &now
	c.state.Error = ""
	slog.Info("ダッシュボードデータを更新しました",
		"reason", reason,
		"quotes", len(brief.Quotes),
		"news", len(brief.News),
		"events", len(brief.Events),
	)
}

// messageFor は抽出失敗には汎用メッセージを、それ以外はエラー文字列をそのまま返します。
func (c *RefreshController) messageFor(err error) string {
	var ie *IngestionError
	if errors.As(err, &ie) {
		return c.failureMessage
	}
	return err.Error()
}

func failureKind(err error) string {
	var ie *IngestionError
	if errors.As(err, &ie) {
		return "ingestion"
	}
	return "transport"
}

// withDefaults はnilのスライスを空スライスに置き換えます。
func withDefaults(b entity.Brief) entity.Brief {
	if b.Quotes == nil {
		b.Quotes = []entity.Quote{}
	}
	if b.News == nil {
		b.News = []entity.NewsItem{}
	}
	if b.Events == nil {
		b.Events = []entity.CalendarEvent{}
	}
	return b
}
