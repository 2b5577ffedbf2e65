package naming

import "sync"

// Claims records which owner first took each path during a run. A later
// owner asking for the same path learns who holds it and must back off.
// All methods are goroutine-safe; Claim is atomic, so concurrent callers
// still see exactly one winner per path.
type Claims struct {
	mu     sync.Mutex
	owners map[string]string // path → owner
}

// NewClaims creates a ready-to-use claim table.
func NewClaims() *Claims {
	return &Claims{owners: make(map[string]string)}
}

// Claim takes path for owner. It returns ("", true) when the path was free
// or already held by owner, and (holder, false) otherwise.
func (c *Claims) Claim(path, owner string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	holder, exists := c.owners[path]
	if !exists || holder == owner {
		c.owners[path] = owner
		return "", true
	}
	return holder, false
}

// Owner reports who holds path, if anyone.
func (c *Claims) Owner(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	holder, ok := c.owners[path]
	return holder, ok
}

// Len returns the number of claimed paths.
func (c *Claims) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.owners)
}
