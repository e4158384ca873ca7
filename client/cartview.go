package client

import (
	"context"
	"sync"
)

// cartGateway is the slice of the API the cart view needs.
type cartGateway interface {
	Cart(ctx context.Context) (*Cart, error)
	ChangeQuantity(ctx context.Context, lineID string, quantity int) (*CartLine, *Cart, error)
	RemoveItem(ctx context.Context, lineID string) (*Cart, error)
}

// pendingChange is the optimistic prediction held for a line while its
// mutation is in flight.
type pendingChange struct {
	quantity          int
	predictedSubtotal int64
	removal           bool
}

// LineView is a cart line as the screen should render it. While a change
// is in flight, Quantity and Subtotal show the prediction.
type LineView struct {
	ID        string
	BookID    string
	Title     string
	CoverURL  string
	UnitPrice int64
	Quantity  int
	Subtotal  int64
	Pending   bool
}

// CartView keeps the client-side copy of the cart and reconciles
// optimistic edits against the server. Each line is either stable or has
// exactly one mutation outstanding; a failed mutation rolls the whole
// view back to the server's copy.
type CartView struct {
	gw cartGateway

	mu          sync.Mutex
	lines       []CartLine
	totalAmount int64
	pending     map[string]pendingChange
}

func NewCartView(gw cartGateway) *CartView {
	return &CartView{gw: gw, pending: make(map[string]pendingChange)}
}

// Refresh replaces the view with the server's cart and drops any
// outstanding predictions.
func (v *CartView) Refresh(ctx context.Context) error {
	cart, err := v.gw.Cart(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.adoptLocked(cart)
	v.pending = make(map[string]pendingChange)
	v.mu.Unlock()
	return nil
}

// Lines renders the current view, predictions included. Lines with a
// removal in flight are not shown.
func (v *CartView) Lines() []LineView {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]LineView, 0, len(v.lines))
	for _, l := range v.lines {
		lv := LineView{
			ID:        l.ID,
			BookID:    l.BookID,
			Title:     l.Title,
			CoverURL:  l.CoverURL,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.LineSubtotal,
		}
		if p, ok := v.pending[l.ID]; ok {
			if p.removal {
				continue
			}
			lv.Quantity = p.quantity
			lv.Subtotal = p.predictedSubtotal
			lv.Pending = true
		}
		out = append(out, lv)
	}
	return out
}

// Subtotal sums the rendered lines, predictions included.
func (v *CartView) Subtotal() int64 {
	var sum int64
	for _, l := range v.Lines() {
		sum += l.Subtotal
	}
	return sum
}

// TotalAmount is the last total the server reported. It lags behind
// optimistic edits until they are confirmed.
func (v *CartView) TotalAmount() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalAmount
}

// ChangeQuantity optimistically applies the new quantity, then confirms
// it with the server. On failure the authoritative cart is refetched so
// the view never keeps a rejected prediction.
func (v *CartView) ChangeQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}

	v.mu.Lock()
	line, ok := v.findLocked(lineID)
	if !ok {
		v.mu.Unlock()
		return ErrUnknownLine
	}
	if _, busy := v.pending[lineID]; busy {
		v.mu.Unlock()
		return ErrLinePending
	}
	v.pending[lineID] = pendingChange{
		quantity:          quantity,
		predictedSubtotal: line.UnitPrice * int64(quantity),
	}
	v.mu.Unlock()

	updated, cart, err := v.gw.ChangeQuantity(ctx, lineID, quantity)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.pending, lineID)
	if err != nil {
		v.rollbackLocked(ctx)
		return err
	}
	if updated != nil {
		v.replaceLineLocked(*updated)
	}
	if cart != nil {
		v.totalAmount = cart.TotalAmount
	}
	return nil
}

// Remove optimistically hides the line, then confirms the removal.
func (v *CartView) Remove(ctx context.Context, lineID string) error {
	v.mu.Lock()
	if _, ok := v.findLocked(lineID); !ok {
		v.mu.Unlock()
		return ErrUnknownLine
	}
	if _, busy := v.pending[lineID]; busy {
		v.mu.Unlock()
		return ErrLinePending
	}
	v.pending[lineID] = pendingChange{removal: true}
	v.mu.Unlock()

	cart, err := v.gw.RemoveItem(ctx, lineID)

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.pending, lineID)
	if err != nil {
		v.rollbackLocked(ctx)
		return err
	}
	if cart != nil {
		v.adoptLocked(cart)
	}
	return nil
}

func (v *CartView) adoptLocked(cart *Cart) {
	v.lines = cart.Lines
	v.totalAmount = cart.TotalAmount
}

func (v *CartView) findLocked(lineID string) (CartLine, bool) {
	for _, l := range v.lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return CartLine{}, false
}

func (v *CartView) replaceLineLocked(line CartLine) {
	for i := range v.lines {
		if v.lines[i].ID == line.ID {
			v.lines[i] = line
			return
		}
	}
	v.lines = append(v.lines, line)
}

// rollbackLocked refetches the authoritative cart after a failed
// mutation. If the refetch itself fails the stale stable copy stays; the
// next Refresh will catch up.
func (v *CartView) rollbackLocked(ctx context.Context) {
	cart, err := v.gw.Cart(ctx)
	if err != nil {
		return
	}
	v.adoptLocked(cart)
}
