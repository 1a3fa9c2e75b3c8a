package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/arena/internal/listing"
	"github.com/naveenspark/arena/pkg/domain"
)

// listChangedMsg carries the newest list store snapshot into the program.
type listChangedMsg struct {
	state listing.State[domain.Problem]
}

// reportedErrMsg carries a failure reported by the browsing session,
// including debounced searches that no command waits on.
type reportedErrMsg struct {
	err error
}

// listWatch forwards list store changes into the program. The store notifies
// from whichever goroutine mutated it; only the newest snapshot is kept, so a
// slow render never blocks a fetch.
type listWatch struct {
	mu    sync.Mutex
	ch    chan listing.State[domain.Problem]
	unsub func()
}

func watchList(s *listing.Store[domain.Problem]) *listWatch {
	w := &listWatch{ch: make(chan listing.State[domain.Problem], 1)}
	w.unsub = s.Subscribe(w.push)
	return w
}

func (w *listWatch) push(st listing.State[domain.Problem]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.ch:
	default:
	}
	w.ch <- st
}

// next waits for the next snapshot. The model re-issues it after every
// listChangedMsg.
func (w *listWatch) next() tea.Cmd {
	return func() tea.Msg {
		return listChangedMsg{state: <-w.ch}
	}
}

func (w *listWatch) stop() {
	if w.unsub != nil {
		w.unsub()
	}
}

// errorFeed buffers session failures until the program picks them up. When
// the buffer is full new failures are dropped.
type errorFeed struct {
	ch chan error
}

func newErrorFeed() *errorFeed {
	return &errorFeed{ch: make(chan error, 8)}
}

func (f *errorFeed) report(err error) {
	select {
	case f.ch <- err:
	default:
	}
}

func (f *errorFeed) next() tea.Cmd {
	return func() tea.Msg {
		return reportedErrMsg{err: <-f.ch}
	}
}
