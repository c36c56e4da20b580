package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/payment"
	"github.com/incognitoworld123-dev/RationalART/repository"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrNotClosable       = errors.New("checkout cannot be closed while processing or completed")
	ErrEmptyCart         = errors.New("cart is empty")
)

// ValidationError is user-correctable: surfaced inline, the user retries
// within the same state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const dismissedMessage = "Transaction cancelled by user."

// CheckoutSettings tunes the fixed delays of the settle paths.
type CheckoutSettings struct {
	// CODSettleDelay is the settling pause before a cash-on-delivery
	// checkout completes.
	CODSettleDelay time.Duration
	// SimulateDelay is the pause before a provider-unavailable checkout is
	// settled as a simulated success.
	SimulateDelay time.Duration
	Currency      string
}

// CheckoutService drives the per-checkout state machine:
// DETAILS -> PAYMENT -> PROCESSING -> SUCCESS, with PROCESSING falling back
// to PAYMENT on payment failure or dismissal. Sessions are ephemeral and
// in-memory; the UI layer serializes to one active checkout per user.
type CheckoutService struct {
	mu       sync.Mutex
	sessions map[string]*checkoutSession

	carts    repository.CartRepository
	products repository.ProductRepository
	orders   *OrderService
	provider payment.Provider
	settings CheckoutSettings
	logger   *zap.Logger
}

type checkoutSession struct {
	ID          string
	UserID      string
	State       models.CheckoutState
	Name        string
	Address     string
	Mode        models.PaymentMode
	LastError   string
	Items       []models.OrderItem
	TotalAmount int
	PaymentRef  string
	OrderID     string
	Simulated   bool
	// Attempt increments every time Pay enters PROCESSING. Provider
	// callbacks carry the attempt they were opened for; a callback whose
	// attempt no longer matches belongs to a dismissed or superseded
	// payment and is ignored.
	Attempt int
}

func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders *OrderService,
	provider payment.Provider,
	settings CheckoutSettings,
	logger *zap.Logger,
) *CheckoutService {
	if settings.Currency == "" {
		settings.Currency = "inr"
	}
	return &CheckoutService{
		sessions: make(map[string]*checkoutSession),
		carts:    carts,
		products: products,
		orders:   orders,
		provider: provider,
		settings: settings,
		logger:   logger,
	}
}

// Start opens a checkout for the user's current cart.
func (s *CheckoutService) Start(ctx context.Context, userID string) (*models.CheckoutView, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	sess := &checkoutSession{
		ID:          uuid.New().String(),
		UserID:      userID,
		State:       models.StateDetails,
		TotalAmount: cart.Total(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return s.viewOf(sess), nil
}

// SubmitDetails collects name and address. Both are required; a missing
// field keeps the session in DETAILS with an inline error.
func (s *CheckoutService) SubmitDetails(id, name, address string) (*models.CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.State != models.StateDetails {
		return nil, ErrInvalidTransition
	}

	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return s.viewOf(sess), &ValidationError{Message: "name and address are required"}
	}

	sess.Name = name
	sess.Address = address
	sess.State = models.StatePayment
	return s.viewOf(sess), nil
}

// SelectPayment records the payment method while in PAYMENT.
func (s *CheckoutService) SelectPayment(id string, mode models.PaymentMode) (*models.CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.State != models.StatePayment {
		return nil, ErrInvalidTransition
	}
	if mode != models.PaymentModeCOD && mode != models.PaymentModeTransfer {
		return s.viewOf(sess), &ValidationError{Message: "unknown payment mode"}
	}

	sess.Mode = mode
	return s.viewOf(sess), nil
}

// Pay validates the cart against current stock, snapshots it, and runs the
// selected settle path. COD and the provider-unavailable simulation settle
// within this call after their fixed delays; an electronic transfer stays in
// PROCESSING until the provider reports back.
func (s *CheckoutService) Pay(ctx context.Context, id string) (*models.CheckoutView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.State != models.StatePayment {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if sess.Mode == "" {
		view := s.viewOf(sess)
		s.mu.Unlock()
		return view, &ValidationError{Message: "select a payment method first"}
	}
	userID := sess.UserID
	attempt := sess.Attempt
	s.mu.Unlock()

	items, total, err := s.snapshotCart(ctx, userID)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return s.failPayment(id, attempt, vErr.Message), nil
		}
		return nil, err
	}

	s.mu.Lock()
	if s.sessions[id] != sess || sess.State != models.StatePayment {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	sess.Items = items
	sess.TotalAmount = total
	sess.LastError = ""
	sess.State = models.StateProcessing
	sess.Attempt++
	attempt = sess.Attempt
	mode := sess.Mode
	name := sess.Name
	s.mu.Unlock()

	switch mode {
	case models.PaymentModeCOD:
		// COD settles unconditionally after a fixed pause, no network.
		time.Sleep(s.settings.CODSettleDelay)
		s.settle(id, attempt, "", false)

	case models.PaymentModeTransfer:
		req := payment.Request{
			Amount:       int64(total) * 100, // minor units
			Currency:     s.settings.Currency,
			Description:  "Value for Value Exchange",
			CustomerName: name,
			Reference:    id,
		}
		ref, err := s.provider.Open(ctx, req, payment.Callbacks{
			OnSuccess: func(providerRef string) { s.settle(id, attempt, providerRef, false) },
			OnFailure: func(reason string) { s.failPayment(id, attempt, reason) },
			OnDismiss: func() { s.failPayment(id, attempt, dismissedMessage) },
		})
		if err != nil {
			if errors.Is(err, payment.ErrProviderUnavailable) {
				// Deliberate degradation: the customer is not blocked on a
				// gateway outage. The simulated settlement is flagged on the
				// session and in the logs so it can never be mistaken for a
				// genuine provider confirmation.
				s.logger.Warn("Payment gateway unavailable, simulating settlement",
					zap.String("checkout_session", id),
					zap.Int("total_amount", total),
				)
				time.Sleep(s.settings.SimulateDelay)
				s.settle(id, attempt, "", true)
			} else {
				s.failPayment(id, attempt, err.Error())
			}
		} else {
			s.mu.Lock()
			if cur, ok := s.sessions[id]; ok {
				cur.PaymentRef = ref
			}
			s.mu.Unlock()
		}
	}

	return s.View(id)
}

// Dismiss reports that the customer closed the provider dialog.
func (s *CheckoutService) Dismiss(id string) (*models.CheckoutView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.State != models.StateProcessing {
		view := s.viewOf(sess)
		s.mu.Unlock()
		return view, nil
	}
	attempt := sess.Attempt
	s.mu.Unlock()

	view := s.failPayment(id, attempt, dismissedMessage)
	return view, nil
}

// Close abandons the checkout. It is rejected while a payment is in flight
// or after completion so an active transaction cannot be orphaned.
func (s *CheckoutService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.State == models.StateProcessing || sess.State == models.StateSuccess {
		return ErrNotClosable
	}
	delete(s.sessions, id)
	return nil
}

// Finish acknowledges a completed checkout and destroys the session.
func (s *CheckoutService) Finish(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.State != models.StateSuccess {
		return ErrInvalidTransition
	}
	delete(s.sessions, id)
	return nil
}

// View returns the current state of a session.
func (s *CheckoutService) View(id string) (*models.CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.viewOf(sess), nil
}

// snapshotCart loads the cart and validates every line against current
// stock. Validation failures are user-correctable.
func (s *CheckoutService) snapshotCart(ctx context.Context, userID string) ([]models.OrderItem, int, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, 0, &ValidationError{Message: "cart is empty"}
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0
	for _, line := range cart.Items {
		if line.Quantity < 1 {
			return nil, 0, &ValidationError{Message: fmt.Sprintf("invalid quantity for product %s", line.ProductID)}
		}
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, 0, &ValidationError{Message: fmt.Sprintf("product %s is no longer available", line.ProductID)}
			}
			return nil, 0, err
		}
		if line.Quantity > product.Stock {
			return nil, 0, &ValidationError{
				Message: fmt.Sprintf("only %d of %q in stock", product.Stock, product.Title),
			}
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * line.Quantity
	}
	return items, total, nil
}

// settle finalizes the order and moves the session to SUCCESS. Callbacks for
// sessions that are gone, no longer processing, or belonging to a dismissed
// earlier attempt are ignored: a stale provider confirmation must never
// finalize while a newer payment is in flight.
func (s *CheckoutService) settle(id string, attempt int, providerRef string, simulated bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || sess.State != models.StateProcessing || sess.Attempt != attempt {
		s.mu.Unlock()
		s.logger.Info("Ignoring late payment confirmation", zap.String("checkout_session", id))
		return
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          sess.UserID,
		CustomerName:    sess.Name,
		CustomerAddress: sess.Address,
		PaymentMode:     string(sess.Mode),
		PaymentRef:      providerRef,
		Status:          models.OrderStatusPending,
		Items:           sess.Items,
	}
	s.mu.Unlock()

	if err := s.orders.Finalize(context.Background(), order); err != nil {
		s.logger.Error("Order finalize failed",
			zap.String("checkout_session", id),
			zap.Error(err),
		)
		s.failPayment(id, attempt, "order could not be recorded, please try again")
		return
	}

	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok && sess.Attempt == attempt {
		sess.State = models.StateSuccess
		sess.OrderID = order.ID.String()
		sess.TotalAmount = order.TotalAmount
		sess.Simulated = simulated
		sess.LastError = ""
	}
	s.mu.Unlock()

	if err := s.carts.DeleteCart(context.Background(), order.UserID); err != nil {
		s.logger.Warn("Cart clear failed after checkout", zap.String("user_id", order.UserID), zap.Error(err))
	}

	if simulated {
		s.logger.Warn("Checkout settled by simulation, not provider confirmation",
			zap.String("checkout_session", id),
			zap.String("order_id", order.ID.String()),
		)
	}
}

// failPayment returns the session to PAYMENT with an inline error. No-op if
// the session is gone, not processing, or the failure belongs to an earlier
// attempt.
func (s *CheckoutService) failPayment(id string, attempt int, reason string) *models.CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if sess.State != models.StateProcessing && sess.State != models.StatePayment {
		return s.viewOf(sess)
	}
	if sess.Attempt != attempt {
		return s.viewOf(sess)
	}
	sess.State = models.StatePayment
	sess.LastError = reason
	return s.viewOf(sess)
}

func (s *CheckoutService) viewOf(sess *checkoutSession) *models.CheckoutView {
	return &models.CheckoutView{
		ID:          sess.ID,
		State:       sess.State,
		PaymentMode: sess.Mode,
		TotalAmount: sess.TotalAmount,
		LastError:   sess.LastError,
		OrderID:     sess.OrderID,
		Simulated:   sess.Simulated,
		Closable:    sess.State == models.StateDetails || sess.State == models.StatePayment,
	}
}
