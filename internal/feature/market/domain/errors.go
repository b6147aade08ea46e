// Package domain defines domain-level errors for the market feature.
package domain

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Validation errors. These never reach the remote service.
var (
	// ErrInvalidSymbol indicates an empty or malformed ticker symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidGranularity indicates an unknown time-series granularity.
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrInvalidRange indicates an unknown chart range label.
	ErrInvalidRange = errors.New("invalid range")
)

// Category sentinels. A *FetchError matches exactly one of these with errors.Is.
var (
	ErrConnectivity   = errors.New("no connectivity")
	ErrTimeout        = errors.New("request timed out")
	ErrTransportIO    = errors.New("transport i/o failure")
	ErrQuotaExhausted = errors.New("api quota exhausted")
	ErrUnexpected     = errors.New("unexpected failure")
)

// Category は取得失敗の分類です。
type Category string

const (
	CategoryConnectivity   Category = "connectivity"
	CategoryTimeout        Category = "timeout"
	CategoryTransportIO    Category = "transport_io"
	CategoryQuotaExhausted Category = "quota_exhausted"
	CategoryUnexpected     Category = "unexpected"
)

func (c Category) sentinel() error {
	switch c {
	case CategoryConnectivity:
		return ErrConnectivity
	case CategoryTimeout:
		return ErrTimeout
	case CategoryTransportIO:
		return ErrTransportIO
	case CategoryQuotaExhausted:
		return ErrQuotaExhausted
	default:
		return ErrUnexpected
	}
}

// ユーザー向けメッセージ。
const (
	MessageConnectivity   = "Unable to connect to server. Please check your internet connection."
	MessageTimeout        = "Request timed out. Please try again."
	MessageTransportIO    = "Network error occurred. Please check your connection."
	MessageQuotaExhausted = "API limit reached. Please try again later."
	messageUnexpected     = "An unexpected error occurred: "
)

// FetchError はリモート取得の失敗を分類し、利用者に見せるメッセージを添えたエラーです。
type FetchError struct {
	Category Category
	Message  string
	Cause    error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of e's category.
func (e *FetchError) Is(target error) bool {
	return target == e.Category.sentinel()
}

// Classify は任意のエラーを FetchError に分類します。
// 既に FetchError であればそのまま返し、nil には nil を返します。
func Classify(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	switch {
	case errors.Is(err, ErrQuotaExhausted):
		return &FetchError{Category: CategoryQuotaExhausted, Message: MessageQuotaExhausted, Cause: err}
	case isConnectivity(err):
		return &FetchError{Category: CategoryConnectivity, Message: MessageConnectivity, Cause: err}
	case isTimeout(err):
		return &FetchError{Category: CategoryTimeout, Message: MessageTimeout, Cause: err}
	case isTransport(err):
		return &FetchError{Category: CategoryTransportIO, Message: MessageTransportIO, Cause: err}
	default:
		return &FetchError{Category: CategoryUnexpected, Message: messageUnexpected + err.Error(), Cause: err}
	}
}

func isConnectivity(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTransport(err error) bool {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
