package models

// CartLine is one product plus its requested quantity. Quantity is
// always >= 1; removing a product deletes the line instead of
// decrementing it to zero.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds the session's line items in insertion order. All mutation
// happens through the methods below; callers hand snapshots (value
// copies) to anything outside the owning workflow.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add inserts a new line with quantity 1, or bumps the quantity of an
// existing line for the same product id.
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
}

// Remove deletes the line for the given product id entirely. Removing a
// product that is not in the cart is a no-op.
func (c *Cart) Remove(productID int) bool {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart wholesale.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total is the cart subtotal: sum of price x quantity over all lines.
func (c *Cart) Total() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Product.Price * line.Quantity
	}
	return total
}

// Count is the total number of items: sum of quantities over all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot returns a deep copy of the cart for handing to activities
// and child workflows.
func (c *Cart) Snapshot() Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
