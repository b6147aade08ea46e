// Package http は外部のマーケットデータ API 呼び出しに使う HTTP クライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// 接続まわりの上限。リクエスト全体の timeout とは別に効きます。
const (
	dialTimeout         = 5 * time.Second
	keepAlive           = 30 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConnsPerHost = 10
)

// NewHTTPClient は timeout でリクエスト全体を打ち切る HTTP クライアントを作成します。
//
// 呼び出し先はほぼ単一ホスト (Alpha Vantage) なので、ホストあたりのアイドル接続数を
// 既定の 2 から引き上げています。timeout が 0 以下の場合は呼び出し元の context だけで打ち切られます。
// プロキシは HTTP_PROXY などの環境変数に従います。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: keepAlive,
		}).DialContext,
		MaxIdleConns:          maxIdleConnsPerHost * 2,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: timeout,
	}
	if timeout <= 0 {
		timeout = 0
		t.ResponseHeaderTimeout = 0
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
