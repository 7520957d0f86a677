// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market_dashboard/internal/feature/dashboard/domain/entity"
	"market_dashboard/internal/feature/dashboard/transport/http/dto"
	"market_dashboard/internal/platform/locale"
)

// RefreshController はダッシュボード状態の参照と手動取得のインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RefreshController interface {
	Snapshot() entity.Snapshot
	Trigger() bool
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	ctrl   RefreshController
	locale locale.Locale
	tz     *time.Location
}

// NewDashboardHandler はDashboardHandlerの新しいインスタンスを生成します。
// tzがnilの場合はUTCを使用します。
func NewDashboardHandler(ctrl RefreshController, loc locale.Locale, tz *time.Location) *DashboardHandler {
	if tz == nil {
		tz = time.UTC
	}
	return &DashboardHandler{ctrl: ctrl, locale: loc, tz: tz}
}

// GetDashboard は現在のダッシュボード状態を返します。
//
// エンドポイント: GET /v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.toResponse(h.ctrl.Snapshot()))
}

// GetMarkets は相場一覧を返します。
//
// エンドポイント: GET /v1/dashboard/markets
func (h *DashboardHandler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, h.toResponse(h.ctrl.Snapshot()).MarketData)
}

// GetNews はニュース一覧を返します。
//
// エンドポイント: GET /v1/dashboard/news
func (h *DashboardHandler) GetNews(c *gin.Context) {
	c.JSON(http.StatusOK, h.toResponse(h.ctrl.Snapshot()).News)
}

// GetEvents は経済カレンダーを返します。
//
// エンドポイント: GET /v1/dashboard/events
func (h *DashboardHandler) GetEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.toResponse(h.ctrl.Snapshot()).Events)
}

// Refresh は手動で取得を開始します。
// 取得中の場合はリクエストを積まずに 409 を返します。
//
// エンドポイント: POST /v1/dashboard/refresh
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if !h.ctrl.Trigger() {
		slog.Info("取得中のため手動リフレッシュを無視", "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, h.toResponse(h.ctrl.Snapshot()))
		return
	}
	c.JSON(http.StatusAccepted, h.toResponse(h.ctrl.Snapshot()))
}

// HealthDetails はヘルスチェックに含める取得状態を返します。
func (h *DashboardHandler) HealthDetails() map[string]any {
	s := h.ctrl.Snapshot()
	out := map[string]any{"refresh": string(s.Status())}
	if s.LastUpdated != nil {
		out["last_updated"] = s.LastUpdated.UTC().Format(time.RFC3339)
	}
	return out
}

func (h *DashboardHandler) toResponse(s entity.Snapshot) dto.DashboardResponse {
	quotes := make([]dto.QuoteResponse, 0, len(s.Quotes))
	for _, q := range s.Quotes {
		quotes = append(quotes, dto.QuoteResponse{
			Symbol:               q.Symbol,
			Name:                 q.Name,
			Price:                q.Price,
			Change:               q.Change,
			ChangePercent:        q.ChangePercent,
			ChangePercentDisplay: q.PercentLabel(),
			IsUp:                 q.IsUp,
			Timestamp:            q.Timestamp,
		})
	}

	news := make([]dto.NewsResponse, 0, len(s.News))
	for _, n := range s.News {
		news = append(news, dto.NewsResponse{
			ID:     n.ID,
			Time:   n.Time,
			Title:  n.Title,
			Source: n.Source,
		})
	}

	events := make([]dto.EventResponse, 0, len(s.Events))
	for _, e := range s.Events {
		events = append(events, dto.EventResponse{
			ID:          e.ID,
			Date:        e.Date,
			Time:        e.Time,
			Event:       e.Event,
			Impact:      string(e.Impact),
			ImpactLabel: h.locale.ImpactLabel(string(e.Impact)),
			Actual:      e.Actual,
			Forecast:    e.Forecast,
			Previous:    e.Previous,
		})
	}

	out := dto.DashboardResponse{
		MarketData:       quotes,
		News:             news,
		Events:           events,
		LastUpdatedLabel: locale.EmptyTimeLabel,
		IsLoading:        s.Loading,
		Status:           string(s.Status()),
	}
	if s.LastUpdated != nil {
		ts := s.LastUpdated.UTC().Format(time.RFC3339)
		out.LastUpdated = &ts
		out.LastUpdatedLabel = s.LastUpdated.In(h.tz).Format(h.locale.TimeLayout)
	}
	if s.Error != "" {
		msg := s.Error
		out.Error = &msg
	}
	return out
}
