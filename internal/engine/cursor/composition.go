package cursor

// Composition tracks in-progress IME input as a transient overlay anchored
// at a fixed start position. The composed text is distinct from committed
// document content and merges into the edit buffer only on commit.
type Composition struct {
	start  Position
	text   string
	active bool
}

// Begin starts a composition session anchored at pos.
func (c *Composition) Begin(pos Position) {
	c.start = pos
	c.text = ""
	c.active = true
}

// Update replaces the in-progress composition text.
func (c *Composition) Update(text string) {
	if c.active {
		c.text = text
	}
}

// Active reports whether a composition is in progress.
func (c *Composition) Active() bool {
	return c.active
}

// Start returns the composition anchor position.
func (c *Composition) Start() Position {
	return c.start
}

// Text returns the current composition text.
func (c *Composition) Text() string {
	return c.text
}

// Commit ends the composition and returns the anchor and final text for
// insertion into the edit buffer.
func (c *Composition) Commit() (Position, string) {
	pos, text := c.start, c.text
	c.active = false
	c.text = ""
	return pos, text
}

// Cancel discards the composition without producing any edit.
func (c *Composition) Cancel() {
	c.active = false
	c.text = ""
}
