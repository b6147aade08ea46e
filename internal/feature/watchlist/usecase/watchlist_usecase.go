// Package usecase はウォッチリストのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"stockwatch_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// ListWatchlists は作成日時の新しい順に返します。
	ListWatchlists(ctx context.Context) ([]entity.Watchlist, error)
	CreateWatchlist(ctx context.Context, w entity.Watchlist) (entity.Watchlist, error)
	// DeleteWatchlist は登録銘柄もあわせて削除します。存在しなければ ErrWatchlistNotFound を返します。
	DeleteWatchlist(ctx context.Context, id int64) error

	ListMembers(ctx context.Context, watchlistID int64) ([]entity.Member, error)
	// AddMember はウォッチリストが存在しなければ ErrWatchlistNotFound を返します。
	AddMember(ctx context.Context, m entity.Member) (entity.Member, error)
	// RemoveMember は削除した行数を返します。
	RemoveMember(ctx context.Context, watchlistID int64, symbol string) (int64, error)

	MembershipsBySymbol(ctx context.Context, symbol string) ([]entity.Member, error)
	ExistsBySymbol(ctx context.Context, symbol string) (bool, error)
	// RemoveSymbolEverywhere は銘柄を全ウォッチリストから外し、影響を受けたウォッチリストの数を返します。
	RemoveSymbolEverywhere(ctx context.Context, symbol string) (int, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// WatchlistUsecase はウォッチリストの作成、銘柄の登録、変更の購読を提供します。
type WatchlistUsecase struct {
	repo WatchlistRepository
	now  func() time.Time
	feed *changeFeed
}

// Option configures a WatchlistUsecase.
type Option func(*WatchlistUsecase)

// WithClock は作成日時と登録日時に使う時刻源を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *WatchlistUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewWatchlistUsecase は新しい WatchlistUsecase を作成します。
func NewWatchlistUsecase(repo WatchlistRepository, opts ...Option) *WatchlistUsecase {
	u := &WatchlistUsecase{repo: repo, now: time.Now, feed: newChangeFeed()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ListWatchlists は作成日時の新しい順にウォッチリストを返します。
func (u *WatchlistUsecase) ListWatchlists(ctx context.Context) ([]entity.Watchlist, error) {
	return u.repo.ListWatchlists(ctx)
}

// ObserveWatchlists は現在のウォッチリスト一覧を送り、変更のたびに最新の一覧を送ります。
func (u *WatchlistUsecase) ObserveWatchlists(ctx context.Context) (<-chan []entity.Watchlist, error) {
	return observe(ctx, u.feed, "watchlists", u.repo.ListWatchlists)
}

// CreateWatchlist は名前の前後の空白を取り除いてウォッチリストを作成します。
func (u *WatchlistUsecase) CreateWatchlist(ctx context.Context, name string) (entity.Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Watchlist{}, ErrInvalidName
	}

	w, err := u.repo.CreateWatchlist(ctx, entity.Watchlist{Name: name, CreatedAt: u.now()})
	if err != nil {
		return entity.Watchlist{}, err
	}
	slog.Info("watchlist created", "id", w.ID, "name", w.Name)
	u.feed.publish()
	return w, nil
}

// DeleteWatchlist はウォッチリストを登録銘柄ごと削除します。
func (u *WatchlistUsecase) DeleteWatchlist(ctx context.Context, id int64) error {
	if err := u.repo.DeleteWatchlist(ctx, id); err != nil {
		return err
	}
	slog.Info("watchlist deleted", "id", id)
	u.feed.publish()
	return nil
}

// ListStocks はウォッチリストの登録銘柄を登録順に返します。
func (u *WatchlistUsecase) ListStocks(ctx context.Context, watchlistID int64) ([]entity.Member, error) {
	return u.repo.ListMembers(ctx, watchlistID)
}

// ObserveStocks は登録銘柄を送り、変更のたびに最新の登録銘柄を送ります。
func (u *WatchlistUsecase) ObserveStocks(ctx context.Context, watchlistID int64) (<-chan []entity.Member, error) {
	return observe(ctx, u.feed, "watchlist_stocks", func(ctx context.Context) ([]entity.Member, error) {
		return u.repo.ListMembers(ctx, watchlistID)
	})
}

// AddStock は銘柄をウォッチリストに登録します。表示名が空の場合はシンボルを使います。
func (u *WatchlistUsecase) AddStock(ctx context.Context, watchlistID int64, symbol, name string) (entity.Member, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return entity.Member{}, ErrInvalidSymbol
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = symbol
	}

	m, err := u.repo.AddMember(ctx, entity.Member{
		WatchlistID: watchlistID,
		Symbol:      symbol,
		Name:        name,
		AddedAt:     u.now(),
	})
	if err != nil {
		return entity.Member{}, err
	}
	u.feed.publish()
	return m, nil
}

// RemoveStock はウォッチリストから銘柄を外します。重複して登録されていればすべて外します。
func (u *WatchlistUsecase) RemoveStock(ctx context.Context, watchlistID int64, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return ErrInvalidSymbol
	}

	n, err := u.repo.RemoveMember(ctx, watchlistID, symbol)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	u.feed.publish()
	return nil
}

// IsInAnyWatchlist は銘柄がいずれかのウォッチリストに登録されているかを返します。
func (u *WatchlistUsecase) IsInAnyWatchlist(ctx context.Context, symbol string) (bool, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return false, ErrInvalidSymbol
	}
	return u.repo.ExistsBySymbol(ctx, symbol)
}

// WatchlistsContaining は銘柄の登録をすべて返します。
func (u *WatchlistUsecase) WatchlistsContaining(ctx context.Context, symbol string) ([]entity.Member, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	return u.repo.MembershipsBySymbol(ctx, symbol)
}

// RemoveFromAllWatchlists は銘柄を全ウォッチリストから外し、影響を受けたウォッチリストの数を返します。
func (u *WatchlistUsecase) RemoveFromAllWatchlists(ctx context.Context, symbol string) (int, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return 0, ErrInvalidSymbol
	}

	n, err := u.repo.RemoveSymbolEverywhere(ctx, symbol)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("symbol removed from watchlists", "symbol", symbol, "watchlists", n)
		u.feed.publish()
	}
	return n, nil
}

// WatchedSymbols はいずれかのウォッチリストに登録されている銘柄を重複なく返します。
func (u *WatchlistUsecase) WatchedSymbols(ctx context.Context) ([]string, error) {
	return u.repo.DistinctSymbols(ctx)
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
