package board

import "sync"

// Entry is the current message of one author.
type Entry struct {
	Text string
	// Age counts renderer ticks since the entry was created or overwritten.
	Age int
}

// Board is a thread-safe author -> Entry map.
//
// Mutators (Put, Remove, Advance) take the write lock; readers (Snapshot,
// Len) take the read lock. sync.RWMutex admits readers queued behind a writer
// before the next writer, so a steady stream of Puts cannot starve Snapshot.
type Board struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty Board.
func New() *Board {
	return &Board{
		entries: make(map[string]*Entry),
	}
}

// Put creates or overwrites the entry for author. The age is reset to 0.
func (b *Board) Put(author, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[author] = &Entry{Text: text}
}

// Remove deletes the entry for author. Removing an absent author is a no-op.
func (b *Board) Remove(author string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, author)
}

// Snapshot returns an independent copy of the board contents.
// Mutating the result does not affect the board and vice versa.
func (b *Board) Snapshot() map[string]Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]Entry, len(b.entries))
	for author, e := range b.entries {
		out[author] = *e
	}
	return out
}

// Advance increments the age of every present entry by one.
func (b *Board) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		e.Age++
	}
}

// Len returns the number of authors currently on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
