package anim

// Value is an observable float cell. Every Set notifies the registered
// listeners in registration order, one call per write.
type Value struct {
	v         float64
	listeners []listener
	nextID    uint32
}

type listener struct {
	id uint32
	fn func(float64)
}

// NewValue returns a cell holding v.
func NewValue(v float64) *Value {
	return &Value{v: v}
}

func (c *Value) Get() float64 { return c.v }

// Set stores v and notifies listeners even when v equals the previous value.
func (c *Value) Set(v float64) {
	c.v = v
	// snapshot so a listener may unsubscribe itself mid-notify
	ls := append([]listener(nil), c.listeners...)
	for _, l := range ls {
		l.fn(v)
	}
}

// Subscribe registers fn and returns a disposer that removes it.
// Calling the disposer more than once is harmless.
func (c *Value) Subscribe(fn func(float64)) (dispose func()) {
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() { c.remove(id) }
}

func (c *Value) remove(id uint32) {
	for i := range c.listeners {
		if c.listeners[i].id == id {
			copy(c.listeners[i:], c.listeners[i+1:])
			c.listeners[len(c.listeners)-1] = listener{}
			c.listeners = c.listeners[:len(c.listeners)-1]
			return
		}
	}
}

// Listeners reports how many listeners are registered.
func (c *Value) Listeners() int { return len(c.listeners) }
