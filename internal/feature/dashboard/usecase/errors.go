package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPayload は応答テキストからJSONを抽出できなかったことを表すセンチネルです。
	ErrNoPayload = errors.New("no JSON payload found in reply")
	// ErrRefreshInProgress は取得サイクルが既に実行中であることを表します。
	ErrRefreshInProgress = errors.New("refresh already in progress")
)

// IngestionError は応答テキストは受信できたが、構造化データを復元できなかったことを表します。
// 通信・認証エラーとは区別されます。
type IngestionError struct {
	Cause error
}

// Error はerrorインターフェースを実装します。
func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed: %v", e.Cause)
}

// Unwrap はerrors.Is / errors.As のために原因を返します。
func (e *IngestionError) Unwrap() error {
	return e.Cause
}
