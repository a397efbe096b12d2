package nav

// Controller holds the single active page. Any page may follow any other;
// transitions happen only when the caller asks for one.
type Controller struct {
	current Page
	visits  map[Page]int
}

// NewController starts on initial, or Default when initial is not a page
func NewController(initial Page) *Controller {
	if !initial.Valid() {
		initial = Default
	}
	return &Controller{
		current: initial,
		visits:  map[Page]int{initial: 1},
	}
}

// Current returns the active page
func (c *Controller) Current() Page {
	return c.current
}

// SetPage overwrites the active page and returns the one it replaced.
// Invalid pages resolve to Default. There is no guard against discarding
// the outgoing page's state.
func (c *Controller) SetPage(p Page) Page {
	if !p.Valid() {
		p = Default
	}
	prev := c.current
	c.current = p
	if prev != p {
		c.visits[p]++
	}
	return prev
}

// Next moves to the following page in sidebar order, wrapping around
func (c *Controller) Next() Page {
	i := c.current.Index()
	c.SetPage(order[(i+1)%len(order)])
	return c.current
}

// Prev moves to the preceding page in sidebar order, wrapping around
func (c *Controller) Prev() Page {
	i := c.current.Index()
	c.SetPage(order[(i-1+len(order))%len(order)])
	return c.current
}

// Visits reports how many times p has been entered
func (c *Controller) Visits(p Page) int {
	return c.visits[p]
}
