// Package feed simulates the paginated content feeds behind catalog rows.
// Pages arrive as bubbletea messages after a configurable latency, so data
// lands on the same update loop as input and restoration.
package feed

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/zhubert/tenfoot/internal/focus"
)

// ErrUnavailable is the error a failing row reports.
var ErrUnavailable = errors.New("feed unavailable")

// PageMsg delivers one page for a row. Feed names the Set the row belongs
// to, since row keys repeat across layouts.
type PageMsg struct {
	Feed  string
	Key   string
	Page  int
	Items []focus.Item
	Err   error
}

// Row is one paginated feed. It implements focus.RowSource.
type Row struct {
	feed     string
	key      string
	title    string
	label    string
	total    int
	pageSize int
	failing  bool

	items   []focus.Item
	pages   int
	loading bool
	err     error
}

var _ focus.RowSource = (*Row)(nil)

// NewRow creates a feed with total items served pageSize at a time. label
// prefixes generated item titles.
func NewRow(key, title, label string, total, pageSize int) *Row {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Row{
		key:      key,
		title:    title,
		label:    label,
		total:    total,
		pageSize: pageSize,
	}
}

// NewStaticRow creates a fully materialized row from fixed titles.
func NewStaticRow(key, title string, names []string) *Row {
	r := &Row{key: key, title: title, total: len(names), pageSize: max(len(names), 1)}
	for i, name := range names {
		r.items = append(r.items, focus.Item{ID: itemID(key, i), Title: name})
	}
	r.pages = 1
	return r
}

// SetFailing makes every future page request fail.
func (r *Row) SetFailing(failing bool) {
	r.failing = failing
}

func (r *Row) Key() string { return r.key }
func (r *Row) Title() string { return r.title }
func (r *Row) LiveItemCount() int { return len(r.items) }
func (r *Row) HasError() bool { return r.err != nil }
func (r *Row) IsLoading() bool { return r.loading }
func (r *Row) Err() error { return r.err }

func (r *Row) ItemAt(i int) (focus.Item, bool) {
	if i < 0 || i >= len(r.items) {
		return focus.Item{}, false
	}
	return r.items[i], true
}

// Exhausted reports whether every item has been delivered.
func (r *Row) Exhausted() bool {
	return len(r.items) >= r.total && r.pages > 0
}

// Total is the number of items the feed will eventually serve.
func (r *Row) Total() int {
	return r.total
}

// NextPage marks the row loading and returns a command delivering the next
// page after latency. It returns nil while a page is in flight, after the
// feed is exhausted, or once the row has errored.
func (r *Row) NextPage(latency time.Duration) tea.Cmd {
	if r.loading || r.err != nil || r.Exhausted() {
		return nil
	}
	r.loading = true

	msg := r.page(r.pages)
	if latency <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(latency, func(time.Time) tea.Msg {
		return msg
	})
}

// page builds page n. Items are deterministic per key and index.
func (r *Row) page(n int) PageMsg {
	if r.failing {
		return PageMsg{Feed: r.feed, Key: r.key, Page: n, Err: fmt.Errorf("%s page %d: %w", r.key, n, ErrUnavailable)}
	}
	start := n * r.pageSize
	end := min(start+r.pageSize, r.total)
	items := make([]focus.Item, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		items = append(items, focus.Item{
			ID:    itemID(r.key, i),
			Title: fmt.Sprintf("%s %d", r.label, i+1),
		})
	}
	return PageMsg{Feed: r.feed, Key: r.key, Page: n, Items: items}
}

// Apply records a delivered page. It reports whether the row changed.
// Pages arriving out of order are ignored.
func (r *Row) Apply(msg PageMsg) bool {
	if msg.Feed != r.feed || msg.Key != r.key || !r.loading || msg.Page != r.pages {
		return false
	}
	r.loading = false
	if msg.Err != nil {
		r.err = msg.Err
		return true
	}
	r.items = append(r.items, msg.Items...)
	r.pages++
	return true
}

// Retry clears a row error so the next NextPage tries again.
func (r *Row) Retry() {
	r.err = nil
}

func itemID(key string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("tenfoot:%s/%d", key, i))).String()
}
