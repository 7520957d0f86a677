package entity

import "time"

// Brief は1回の取得で得られた3つのコレクションです。
// 正規化後は各スライスが nil になることはありません。
type Brief struct {
	Quotes []Quote
	News   []NewsItem
	Events []CalendarEvent
}

// EmptyBrief は空のコレクションを持つBriefを返します。
func EmptyBrief() Brief {
	return Brief{
		Quotes: []Quote{},
		News:   []NewsItem{},
		Events: []CalendarEvent{},
	}
}

// Clone はスライスを複製したBriefを返します。
func (b Brief) Clone() Brief {
	out := Brief{
		Quotes: make([]Quote, len(b.Quotes)),
		News:   make([]NewsItem, len(b.News)),
		Events: make([]CalendarEvent, len(b.Events)),
	}
	copy(out.Quotes, b.Quotes)
	copy(out.News, b.News)
	copy(out.Events, b.Events)
	return out
}

// Status はリフレッシュコントローラーの状態です。
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// Snapshot は画面に表示される現在のダッシュボード状態です。
// 取得失敗時も直前に成功したBriefは保持されます。
type Snapshot struct {
	Brief
	LastUpdated *time.Time // 最後に成功した取得の時刻。未取得なら nil
	Loading     bool
	Error       string // 空文字ならエラーなし
}

// Status はSnapshotの状態を返します。Loadingが最優先です。
func (s Snapshot) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Error != "":
		return StatusError
	default:
		return StatusIdle
	}
}
