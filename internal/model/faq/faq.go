package faq

// Entry is a static knowledge-base record mapping keywords to a canned
// answer and intent label. Entries are loaded once at startup and never
// mutated at runtime.
type Entry struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Intent   string   `json:"intent"`
}

// Store exposes knowledge-base retrieval for the matcher.
type Store interface {
	List() []Entry
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Entry
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
func NewMemoryStore(items []Entry) *MemoryStore {
	return &MemoryStore{items: append([]Entry(nil), items...)}
}

// List returns the knowledge base in its seed order. Matcher tie-breaks
// rely on this order being stable.
func (s *MemoryStore) List() []Entry {
	return append([]Entry(nil), s.items...)
}
