// Package entity はdashboardフィーチャーのドメインモデルを定義します。
package entity

import "strings"

// Quote は1銘柄（指数・先物・為替など）の相場スナップショットを表します。
// 価格や騰落は表示用に整形済みの文字列のまま保持します。
type Quote struct {
	Symbol        string // 銘柄コード（例: "000001.SS"）。1回の取得内で一意
	Name          string // 表示名（例: "上证指数"）
	Price         string // 価格
	Change        string // 前日比（絶対値）
	ChangePercent string // 前日比（%）。符号付き
	IsUp          bool   // ChangePercent >= 0 のとき true
	Timestamp     string // 取得時刻ラベル（表示ロケールの時刻書式）
}

// PercentLabel はChangePercentに "%" が無ければ付与した表示用文字列を返します。
func (q Quote) PercentLabel() string {
	if q.ChangePercent == "" || strings.Contains(q.ChangePercent, "%") {
		return q.ChangePercent
	}
	return q.ChangePercent + "%"
}
