package history

import (
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/editbuffer"
)

// Composite runs several commands as one undo entry. Paste uses it to
// apply text and formatting together.
type Composite struct {
	cmds []Command
	desc string
}

// NewComposite builds a composite from the given commands. Selection
// restoration comes from the first and last members.
func NewComposite(desc string, cmds ...Command) *Composite {
	return &Composite{cmds: cmds, desc: desc}
}

// Execute runs every member in order, stopping at the first failure.
func (c *Composite) Execute(buf *editbuffer.Buffer) error {
	for _, cmd := range c.cmds {
		if err := cmd.Execute(buf); err != nil {
			return err
		}
	}
	return nil
}

// Undo unwinds the members in reverse order.
func (c *Composite) Undo(buf *editbuffer.Buffer) error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the composite's label.
func (c *Composite) Description() string { return c.desc }

// SelectionBefore returns the first member's pre-execution selection.
func (c *Composite) SelectionBefore() cursor.Selection {
	if len(c.cmds) == 0 {
		return cursor.Selection{}
	}
	return c.cmds[0].SelectionBefore()
}

// SelectionAfter returns the last member's post-execution selection.
func (c *Composite) SelectionAfter() cursor.Selection {
	if len(c.cmds) == 0 {
		return cursor.Selection{}
	}
	return c.cmds[len(c.cmds)-1].SelectionAfter()
}
