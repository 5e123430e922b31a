package orders

import (
	"context"
	"time"

	"github.com/fordpartsdz/shop/internal/models"
)

// Status lifecycle: Pending -> Accepted -> Delivered, with Cancelled
// reachable from Pending and Accepted. Delivered and Cancelled are terminal.
//
// Every transition is a compare-and-set: the UPDATE carries the expected
// current status in its WHERE clause and a zero row count means another admin
// moved the order first. Last-writer-wins is not acceptable here.

// Accept moves a pending order to Accepted.
func (s *Service) Accept(ctx context.Context, id uint) (*models.Order, error) {
	return s.transition(ctx, id, []string{models.OrderStatusPending}, models.OrderStatusAccepted, nil)
}

// Decline cancels an order that has not shipped. Legal from Pending and
// Accepted.
func (s *Service) Decline(ctx context.Context, id uint) (*models.Order, error) {
	from := []string{models.OrderStatusPending, models.OrderStatusAccepted}
	return s.transition(ctx, id, from, models.OrderStatusCancelled, nil)
}

// MarkDelivered completes an accepted order. Delivery cannot precede
// acceptance.
func (s *Service) MarkDelivered(ctx context.Context, id uint) (*models.Order, error) {
	now := time.Now().UTC()
	return s.transition(ctx, id, []string{models.OrderStatusAccepted}, models.OrderStatusDelivered, map[string]any{
		"is_delivered": true,
		"delivered_at": &now,
	})
}

// MarkPaid flips the payment pair. Not a status transition, but it refuses
// cancelled orders and re-checks is_paid in the WHERE clause so paid_at is
// written once.
func (s *Service) MarkPaid(ctx context.Context, id uint) (*models.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == models.OrderStatusCancelled {
		return nil, &StateTransitionError{From: o.Status, To: "Paid"}
	}
	if o.IsPaid {
		return o, nil
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND is_paid = ? AND status <> ?", id, false, models.OrderStatusCancelled).
		Updates(map[string]any{"is_paid": true, "paid_at": &now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race. A concurrent MarkPaid already won, which is fine;
		// anything else means the order was cancelled under us.
		cur, gerr := s.Get(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		if cur.IsPaid {
			return cur, nil
		}
		return nil, &StateTransitionError{From: cur.Status, To: "Paid"}
	}
	return s.Get(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uint, from []string, to string, extra map[string]any) (*models.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contains(from, o.Status) {
		return nil, &StateTransitionError{From: o.Status, To: to}
	}

	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, o.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race: someone moved the order between the read and the
		// update. Re-read so the error names the real current state.
		cur, gerr := s.Get(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &StateTransitionError{From: cur.Status, To: to}
	}

	return s.Get(ctx, id)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
