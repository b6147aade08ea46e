package usecase

import (
	"context"
	"log/slog"
	"sync"
)

// changeFeed はウォッチリストの更新を購読者に通知します。
// 通知は内容を持たず、受け取った側が最新の状態を読み直します。
type changeFeed struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{subs: make(map[chan struct{}]struct{})}
}

// subscribe は通知チャネルと購読解除関数を返します。
// チャネルのバッファは1なので、読み直しの前に重なった通知は1回にまとまります。
func (f *changeFeed) subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
		})
	}
}

func (f *changeFeed) publish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// observe は現在の値をすぐに送り、その後は更新のたびに読み直した値を送ります。
// ctx が終わるとチャネルを閉じます。
func observe[T any](ctx context.Context, feed *changeFeed, view string, load func(context.Context) (T, error)) (<-chan T, error) {
	changed, unsubscribe := feed.subscribe()

	current, err := load(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan T, 1)
	go func() {
		defer close(out)
		defer unsubscribe()

		pending := true
		for {
			if pending {
				select {
				case out <- current:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-changed:
			case <-ctx.Done():
				return
			}

			next, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("failed to reload watchlist view", "view", view, "error", err)
				pending = false
				continue
			}
			current, pending = next, true
		}
	}()
	return out, nil
}
