package notification

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/event_bus"
	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/forecast"
	"github.com/birrflow/birrflow/pkg/user"
)

// AlertService is the scheduled job behind the daily notification run:
// it warns each user about bills coming due and refreshes their cached
// forecast, raising a low-balance alert when the projection dips under
// the configured threshold. It also turns completed payments into
// notifications via the event bus.
type AlertService struct {
	users     user.Repo
	bills     bill.Service
	forecasts forecast.Service
	cache     forecast.CacheRepo
	repo      Repo
	clock     utils.Clock

	lookaheadDays       int
	lowBalanceThreshold float64
}

func NewAlertService(
	users user.Repo,
	bills bill.Service,
	forecasts forecast.Service,
	cache forecast.CacheRepo,
	repo Repo,
	clock utils.Clock,
	cfg config.Alerts,
) *AlertService {
	return &AlertService{
		users:               users,
		bills:               bills,
		forecasts:           forecasts,
		cache:               cache,
		repo:                repo,
		clock:               clock,
		lookaheadDays:       cfg.LookaheadDays,
		lowBalanceThreshold: cfg.LowBalanceThreshold,
	}
}

// Subscribe registers the payment-completed listener on the bus.
func (s *AlertService) Subscribe(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.PaymentCompleted, func(e event_bus.Event) error {
		data, ok := e.Data.(event_bus.PaymentCompletedData)
		if !ok {
			return fmt.Errorf("unexpected payload for %s event", e.Type)
		}
		_, err := s.repo.Store(e.Context(), data.UserID, Notification{
			Type:    TypePayment,
			Message: fmt.Sprintf("Payment of ETB %.2f to %s completed", data.Amount, data.BillerName),
			Data:    fmt.Sprintf(`{"transactionId":%q}`, data.TransactionID),
		})
		return err
	})
}

// Run executes one alerting sweep over every user. Per-user failures are
// logged and skipped so one broken profile cannot starve the rest.
func (s *AlertService) Run(ctx context.Context) {
	users, err := s.users.List(ctx)
	if err != nil {
		log.Errorf("Alert run aborted, could not list users: %v", err)
		return
	}
	for _, u := range users {
		userCtx := user.WithId(ctx, u.ID)
		if err := s.alertUpcomingBills(userCtx, u.ID); err != nil {
			log.Errorf("Bill alerts failed for user %d: %v", u.ID, err)
		}
		if err := s.refreshForecast(userCtx, u.ID); err != nil {
			log.Errorf("Forecast refresh failed for user %d: %v", u.ID, err)
		}
	}
}

func (s *AlertService) alertUpcomingBills(ctx context.Context, userId int64) error {
	unpaid, err := s.bills.GetUnpaidBills(ctx)
	if err != nil {
		return err
	}

	today := s.clock.Now()
	cutoff := today.AddDate(0, 0, 3)
	var names []string
	for _, b := range unpaid {
		if b.DueDate.IsZero() || b.DueDate.After(cutoff) {
			continue
		}
		names = append(names, b.Name)
	}
	if len(names) == 0 {
		return nil
	}

	_, err = s.repo.Store(ctx, userId, Notification{
		Type:    TypeBill,
		Message: fmt.Sprintf("Bills due soon: %s", strings.Join(names, ", ")),
	})
	return err
}

func (s *AlertService) refreshForecast(ctx context.Context, userId int64) error {
	days, err := s.forecasts.Forecast(ctx, s.lookaheadDays)
	if err != nil {
		return err
	}
	if err := s.cache.Replace(ctx, userId, days); err != nil {
		return err
	}

	min := days[0].TotalBalance
	for _, d := range days[1:] {
		if d.TotalBalance < min {
			min = d.TotalBalance
		}
	}
	if min >= s.lowBalanceThreshold {
		return nil
	}

	_, err = s.repo.Store(ctx, userId, Notification{
		Type:      TypeBalance,
		Message:   fmt.Sprintf("Low balance predicted: ETB %.2f in the next %d days", min, s.lookaheadDays),
		MessageAm: fmt.Sprintf("በሚቀጥሉት %d ቀናት ዝቅተኛ ቀሪ ሂሳብ ይጠበቃል፦ ETB %.2f", s.lookaheadDays, min),
	})
	return err
}
