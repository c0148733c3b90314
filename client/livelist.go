package client

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/KingCuz/GrindLink/internal/models"
	ws "github.com/KingCuz/GrindLink/internal/websocket"
	"github.com/gorilla/websocket"
)

// Record is any entity carrying a store-assigned id.
type Record interface {
	RecordID() string
}

// ListState is the lifecycle state of a LiveList.
type ListState int

const (
	// Loading means the initial snapshot fetch has not completed yet.
	Loading ListState = iota
	// Ready means the snapshot loaded and broadcast events are being applied.
	Ready
	// Errored means the initial fetch or the subscription failed; the list
	// never leaves this state.
	Errored
)

// LiveList is a live view of one entity's records: a snapshot fetched once at
// open, then every matching broadcast event prepended for the rest of its
// lifetime. The view never re-sorts or re-fetches.
type LiveList[T Record] struct {
	event string

	mu       sync.Mutex
	state    ListState
	err      error
	records  []T
	seen     map[string]bool
	watchers map[int]func([]T)
	nextID   int

	conn   *websocket.Conn
	closed bool
	done   chan struct{}
}

// WatchAssignments opens a live assignment list against the server.
func (c *Client) WatchAssignments(ctx context.Context) (*LiveList[models.Assignment], error) {
	return openLiveList(ctx, c, ws.EventNewAssignment, c.ListAssignments)
}

// WatchUsers opens a live user profile list against the server.
func (c *Client) WatchUsers(ctx context.Context) (*LiveList[models.UserProfile], error) {
	return openLiveList(ctx, c, ws.EventNewUser, c.ListUsers)
}

func openLiveList[T Record](ctx context.Context, c *Client, event string, fetch func(context.Context) ([]T, error)) (*LiveList[T], error) {
	l := &LiveList[T]{
		event:    event,
		state:    Loading,
		seen:     make(map[string]bool),
		watchers: make(map[int]func([]T)),
		done:     make(chan struct{}),
	}

	// Subscribe before fetching the snapshot. A record created after the
	// list response but before the subscription would otherwise be in
	// neither, lost to the view; with the subscription already live, the
	// worst case is an overlapping delivery, which the seen-id check in
	// prepend resolves.
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.websocketURL(), nil)
	if err != nil {
		l.state = Errored
		l.err = err
		close(l.done)
		return l, err
	}

	records, err := fetch(ctx)
	if err != nil {
		conn.Close()
		l.state = Errored
		l.err = err
		close(l.done)
		return l, err
	}

	l.records = records
	for _, r := range records {
		l.seen[r.RecordID()] = true
	}
	l.state = Ready
	l.conn = conn

	go l.readLoop()
	return l, nil
}

func (c *Client) websocketURL() string {
	url := c.baseURL
	if strings.HasPrefix(url, "https://") {
		url = "wss://" + strings.TrimPrefix(url, "https://")
	} else {
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/ws"
}

func (l *LiveList[T]) readLoop() {
	defer close(l.done)
	for {
		_, message, err := l.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Event != l.event {
			continue
		}
		var record T
		if err := json.Unmarshal(msg.Data, &record); err != nil {
			continue
		}
		l.prepend(record)
	}
}

// prepend puts a newly broadcast record at the front of the view. Records the
// view has already seen are skipped, which covers the race where the initial
// fetch and the first broadcast both deliver the same record.
func (l *LiveList[T]) prepend(record T) {
	l.mu.Lock()
	if l.seen[record.RecordID()] {
		l.mu.Unlock()
		return
	}
	l.seen[record.RecordID()] = true
	l.records = append([]T{record}, l.records...)
	snapshot := make([]T, len(l.records))
	copy(snapshot, l.records)
	watchers := make([]func([]T), 0, len(l.watchers))
	for _, w := range l.watchers {
		watchers = append(watchers, w)
	}
	l.mu.Unlock()

	for _, w := range watchers {
		w(snapshot)
	}
}

// Records returns the current displayed sequence, newest first.
func (l *LiveList[T]) Records() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.records))
	copy(out, l.records)
	return out
}

// State reports the lifecycle state of the view.
func (l *LiveList[T]) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the fetch or subscription error for an Errored list.
func (l *LiveList[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Watch registers a callback invoked with the full sequence after every
// change. It returns an unsubscribe function.
func (l *LiveList[T]) Watch(fn func([]T)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.watchers[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.watchers, id)
		l.mu.Unlock()
	}
}

// Close tears down the subscription and waits for the read loop to exit.
// The last snapshot stays readable through Records.
func (l *LiveList[T]) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return nil
	}
	l.closed = true
	conn := l.conn
	l.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	<-l.done
	return nil
}
