package gamestate

// Container is an open container view: a server-assigned id, its display
// metadata, and the slice of items currently visible on the active page.
type Container struct {
	ID           int
	Name         string
	IconItemID   int
	SlotsPerPage int
	StartIndex   int
	TotalCount   int
	Items        []Object
	HasParent    bool
	DragAndDrop  bool
}

// insertAt places obj at the given slot index, shifting later items right
// and truncating to SlotsPerPage so the visible page never grows past what
// the container reports it can hold.
func (c *Container) insertAt(index int, obj Object) {
	if index < 0 {
		index = 0
	}
	if index > len(c.Items) {
		index = len(c.Items)
	}
	c.Items = append(c.Items, Object{})
	copy(c.Items[index+1:], c.Items[index:])
	c.Items[index] = obj
	if c.SlotsPerPage > 0 && len(c.Items) > c.SlotsPerPage {
		c.Items = c.Items[:c.SlotsPerPage]
	}
}

// removeAt deletes the item at the given slot index, if present, and
// appends backfill (the item the server reports now fills the tail slot
// from the next page) when supplied.
func (c *Container) removeAt(index int, backfill *Object) {
	if index < 0 || index >= len(c.Items) {
		return
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	if backfill != nil {
		c.Items = append(c.Items, *backfill)
		if c.SlotsPerPage > 0 && len(c.Items) > c.SlotsPerPage {
			c.Items = c.Items[:c.SlotsPerPage]
		}
	}
}
