package usecase

import "errors"

var (
	// ErrWatchlistNotFound は指定したウォッチリストが存在しないことを示します。
	ErrWatchlistNotFound = errors.New("watchlist not found")
	// ErrMemberNotFound はウォッチリストに指定した銘柄が登録されていないことを示します。
	ErrMemberNotFound = errors.New("symbol is not in the watchlist")
	// ErrInvalidName はウォッチリスト名が空であることを示します。
	ErrInvalidName = errors.New("watchlist name must not be empty")
	// ErrInvalidSymbol は銘柄シンボルが空であることを示します。
	ErrInvalidSymbol = errors.New("symbol must not be empty")
)
