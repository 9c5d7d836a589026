package store

import (
	"sort"
	"sync"

	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/table"
)

// EventKind classifies change notifications.
type EventKind string

const (
	EventTablesChanged  EventKind = "tables_changed"
	EventMenuChanged    EventKind = "menu_changed"
	EventHistoryChanged EventKind = "history_changed"
	EventDegradedMode   EventKind = "degraded_mode"
)

// Event is delivered to subscribers after a mutation commits.
type Event struct {
	Kind EventKind
	ID   string
}

// Store is the single authoritative in-memory state shared by every screen:
// tables, menu, and the settlement ledger. One writer at a time, any number
// of readers; reads return copies so callers never alias internal state.
// Components holding a read-only cache subscribe for change events instead
// of re-polling.
type Store struct {
	mu       sync.RWMutex
	tables   map[string]table.Table
	menu     map[string]menuitem.MenuItem
	history  []history.Record
	degraded bool

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewStore() *Store {
	return &Store{
		tables: make(map[string]table.Table),
		menu:   make(map[string]menuitem.MenuItem),
		subs:   make(map[int]chan Event),
	}
}

// Load hydrates the store from the remote collaborator at startup.
// It replaces any existing state and emits no events.
func (s *Store) Load(tables []table.Table, items []menuitem.MenuItem, records []history.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = make(map[string]table.Table, len(tables))
	for _, t := range tables {
		s.tables[t.ID] = t.Clone()
	}
	s.menu = make(map[string]menuitem.MenuItem, len(items))
	for _, m := range items {
		s.menu[m.ID] = m
	}
	s.history = make([]history.Record, 0, len(records))
	for _, r := range records {
		s.history = append(s.history, r.Clone())
	}
}

// Subscribe registers a change listener. The returned cancel func must be
// called when the listener goes away. Events are dropped rather than
// blocking a slow subscriber.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (s *Store) notify(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Table returns a copy of one table.
func (s *Store) Table(id string) (table.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return table.Table{}, false
	}

	return t.Clone(), true
}

// Tables returns copies of all tables ordered by display number.
func (s *Store) Tables() []table.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]table.Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t.Clone())
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })

	return tables
}

// TableByNumber finds a table by its display number.
func (s *Store) TableByNumber(number string) (table.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tables {
		if t.Number == number {
			return t.Clone(), true
		}
	}

	return table.Table{}, false
}

// PutTable commits a table state and notifies subscribers.
func (s *Store) PutTable(t table.Table) {
	s.mu.Lock()
	s.tables[t.ID] = t.Clone()
	s.mu.Unlock()

	s.notify(Event{Kind: EventTablesChanged, ID: t.ID})
}

// RemoveTable drops a table entirely. Used by delete and force delete.
func (s *Store) RemoveTable(id string) {
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()

	s.notify(Event{Kind: EventTablesChanged, ID: id})
}

// MenuItem returns a copy of one menu item. Implements cart.Catalog.
func (s *Store) MenuItem(id string) (menuitem.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.menu[id]

	return m, ok
}

// MenuItems returns copies of all menu items, deleted ones included.
func (s *Store) MenuItems() []menuitem.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]menuitem.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}

		return items[i].Name < items[j].Name
	})

	return items
}

// PutMenuItem commits a menu item and notifies subscribers.
func (s *Store) PutMenuItem(m menuitem.MenuItem) {
	s.mu.Lock()
	s.menu[m.ID] = m
	s.mu.Unlock()

	s.notify(Event{Kind: EventMenuChanged, ID: m.ID})
}

// History returns copies of all ledger records in append order, soft-deleted
// ones included.
func (s *Store) History() []history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]history.Record, 0, len(s.history))
	for _, r := range s.history {
		records = append(records, r.Clone())
	}

	return records
}

// AppendHistory adds a record to the ledger.
func (s *Store) AppendHistory(r history.Record) {
	s.mu.Lock()
	s.history = append(s.history, r.Clone())
	s.mu.Unlock()

	s.notify(Event{Kind: EventHistoryChanged, ID: r.ID})
}

// UpdateHistory replaces a record in place (soft delete only; records are
// otherwise immutable). Returns false when the id is unknown.
func (s *Store) UpdateHistory(r history.Record) bool {
	s.mu.Lock()
	found := false
	for i := range s.history {
		if s.history[i].ID == r.ID {
			s.history[i] = r.Clone()
			found = true

			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Event{Kind: EventHistoryChanged, ID: r.ID})
	}

	return found
}

// CompleteSettlement commits a payment as one unit: the history record is
// appended and the table reset under a single lock, so no reader ever
// observes the ledger entry without the freed table or vice versa.
func (s *Store) CompleteSettlement(t table.Table, r history.Record) {
	s.mu.Lock()
	s.tables[t.ID] = t.Clone()
	s.history = append(s.history, r.Clone())
	s.mu.Unlock()

	s.notify(Event{Kind: EventTablesChanged, ID: t.ID})
	s.notify(Event{Kind: EventHistoryChanged, ID: r.ID})
}

// SetDegraded flips degraded mode and notifies subscribers on change.
// Degraded means the remote collaborator is unreachable and writes are
// queued locally.
func (s *Store) SetDegraded(degraded bool) {
	s.mu.Lock()
	changed := s.degraded != degraded
	s.degraded = degraded
	s.mu.Unlock()

	if changed {
		s.notify(Event{Kind: EventDegradedMode})
	}
}

// Degraded reports whether the store is operating without the remote
// collaborator.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.degraded
}
