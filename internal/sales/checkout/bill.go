package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLineNotFound = errors.New("cart line not found")
	// ErrSerialLine rejects direct quantity edits on serial-bearing lines;
	// their quantity is derived from the serial count.
	ErrSerialLine      = errors.New("quantity of a serial-tracked line is derived from its serials")
	ErrQuantity        = errors.New("quantity must be at least 1")
	ErrDuplicateSerial = errors.New("duplicate serial")
)

// Bill is one in-progress sale (a "tab"). Lines keep insertion order, which
// is also the display order; no implicit merging or sorting happens.
type Bill struct {
	ID           string     `json:"bill_id"`
	Lines        []CartLine `json:"lines"`
	Discount     *Discount  `json:"discount,omitempty"`
	CustomerPaid float64    `json:"customer_paid"`
	CustomerID   *int64     `json:"customer_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewBill(now time.Time) *Bill {
	return &Bill{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Line returns a pointer into the bill's line slice, or nil when absent.
func (b *Bill) Line(lineID string) *CartLine {
	for i := range b.Lines {
		if b.Lines[i].ID == lineID {
			return &b.Lines[i]
		}
	}
	return nil
}

// AddLine appends; two lines for the same product stay distinct entries.
func (b *Bill) AddLine(line CartLine) {
	b.Lines = append(b.Lines, line)
}

func (b *Bill) RemoveLine(lineID string) error {
	for i := range b.Lines {
		if b.Lines[i].ID == lineID {
			b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

// UpdateQuantity replaces the quantity on one line. Serial-bearing lines are
// rejected even though the UI disables the control.
func (b *Bill) UpdateQuantity(lineID string, quantity int) error {
	line := b.Line(lineID)
	if line == nil {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if line.HasSerials() {
		return ErrSerialLine
	}
	if quantity < 1 {
		return ErrQuantity
	}
	line.Quantity = quantity
	return nil
}

// UpdateDiscount recomputes and stores the discounted unit price on the line
// (or its variant snapshot, for variant lines) from the undiscounted base.
func (b *Bill) UpdateDiscount(lineID string, d Discount) error {
	line := b.Line(lineID)
	if line == nil {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	price, err := d.Apply(line.BasePrice())
	if err != nil {
		return err
	}
	line.Discount = &d
	if line.isVariant() {
		line.Variant.RealSellPrice = &price
		line.RealSellPrice = nil
	} else {
		line.RealSellPrice = &price
	}
	return nil
}

// ReplaceSerials swaps a line's serial set for a newly confirmed one. The new
// set replaces, never appends. Validation runs in two passes: duplicates
// within the batch first, then collisions with serials already assigned to
// other lines of the same bill.
func (b *Bill) ReplaceSerials(lineID string, serials []string) error {
	line := b.Line(lineID)
	if line == nil {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}

	if err := b.ValidateSerials(lineID, serials); err != nil {
		return err
	}

	line.Serials = append([]string(nil), serials...)
	return nil
}

// ValidateSerials checks a candidate serial set for the line identified by
// excludeLineID (empty for a new line). The failing serial is named in the
// error.
func (b *Bill) ValidateSerials(excludeLineID string, serials []string) error {
	seen := make(map[string]struct{}, len(serials))
	for _, s := range serials {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: %s chosen twice", ErrDuplicateSerial, s)
		}
		seen[s] = struct{}{}
	}

	for i := range b.Lines {
		if b.Lines[i].ID == excludeLineID {
			continue
		}
		for _, assigned := range b.Lines[i].Serials {
			if _, clash := seen[assigned]; clash {
				return fmt.Errorf("%w: %s already on another line", ErrDuplicateSerial, assigned)
			}
		}
	}
	return nil
}

// Total sums unit price times effective quantity over all lines.
func (b *Bill) Total() float64 {
	var total float64
	for i := range b.Lines {
		total += b.Lines[i].Subtotal()
	}
	return total
}

// Reset returns the bill to its fresh state after a successful submission.
func (b *Bill) Reset() {
	b.Lines = nil
	b.Discount = nil
	b.CustomerPaid = 0
	b.CustomerID = nil
}
