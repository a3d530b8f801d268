package quilt

import (
	"sync"
	"sync/atomic"
)

// SessionStore provides thread-safe storage of designer sessions for
// long-running hosts such as the HTTP server, where each browser client
// works on its own named session. The store uses a simple LRU eviction
// policy when the maximum size is reached.
//
// The store guards only its own bookkeeping. Sessions themselves are
// single-owner, mutated synchronously by one event loop at a time; hosts
// serving several clients serialise mutations per session externally.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*storeEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type storeEntry struct {
	key     string
	session *Session
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
}

// NewSessionStore creates a session store holding at most maxSize sessions.
// A maxSize of 0 or negative means unlimited.
func NewSessionStore(maxSize int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*storeEntry),
		lru:      &lruList{},
		maxSize:  maxSize,
	}
}

// Get returns the session stored under key, or nil. A hit refreshes the
// entry's LRU position. Safe for concurrent use.
func (c *SessionStore) Get(key string) *Session {
	c.mu.RLock()
	entry, exists := c.sessions[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	c.lru.moveToFront(entry.lruNode)
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.session
}

// Put stores a session under key, evicting the least recently used entry
// if the store is full. Storing under an existing key replaces the session.
func (c *SessionStore) Put(key string, s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.sessions[key]; exists {
		entry.session = s
		c.lru.moveToFront(entry.lruNode)
		return
	}

	if c.maxSize > 0 && len(c.sessions) >= c.maxSize {
		c.evictLRU()
	}

	node := c.lru.pushFront(key)
	c.sessions[key] = &storeEntry{key: key, session: s, lruNode: node}
}

// GetOrCreate returns the session under key, creating and storing one with
// create on a miss. Safe for concurrent use; when two callers race on the
// same missing key, one created session wins and both receive it.
func (c *SessionStore) GetOrCreate(key string, create func() (*Session, error)) (*Session, error) {
	if s := c.Get(key); s != nil {
		return s, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock; another caller may have won the race.
	if entry, exists := c.sessions[key]; exists {
		c.lru.moveToFront(entry.lruNode)
		return entry.session, nil
	}

	s, err := create()
	if err != nil {
		return nil, err
	}

	if c.maxSize > 0 && len(c.sessions) >= c.maxSize {
		c.evictLRU()
	}
	node := c.lru.pushFront(key)
	c.sessions[key] = &storeEntry{key: key, session: s, lruNode: node}
	return s, nil
}

// Remove deletes the session stored under key, if any.
func (c *SessionStore) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.sessions[key]
	if !exists {
		return
	}
	delete(c.sessions, key)
	c.lru.remove(entry.lruNode)
}

// evictLRU removes the least recently used session. Caller holds c.mu.
func (c *SessionStore) evictLRU() {
	if c.lru.tail == nil {
		return
	}
	key := c.lru.tail.key
	delete(c.sessions, key)
	c.lru.remove(c.lru.tail)
	c.evictions.Add(1)
}

// Clear removes all sessions. Safe for concurrent use.
func (c *SessionStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions = make(map[string]*storeEntry)
	c.lru = &lruList{}
}

// Stats returns store statistics. Safe for concurrent use.
func (c *SessionStore) Stats() StoreStats {
	c.mu.RLock()
	size := len(c.sessions)
	c.mu.RUnlock()

	return StoreStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// StoreStats contains session store statistics.
type StoreStats struct {
	Size      int    // Current number of stored sessions
	MaxSize   int    // Maximum store size
	Hits      uint64 // Number of lookup hits
	Misses    uint64 // Number of lookup misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the lookup hit rate as a percentage (0-100).
func (s StoreStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
		return node
	}
	node.next = l.head
	l.head.prev = node
	l.head = node
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.remove(node)
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
}

func (l *lruList) remove(node *lruNode) {
	if node == nil {
		return
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}
