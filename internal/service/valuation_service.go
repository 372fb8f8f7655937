package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/config"
	"github.com/hverma/stock-tracker-backend/internal/model"
	"github.com/hverma/stock-tracker-backend/internal/repository"
)

// dayFormat is the calendar-day key used for snapshots and daily totals.
const dayFormat = "2006-01-02"

// QuoteGateway fetches a current market price for a symbol.
type QuoteGateway interface {
	GetQuote(ctx context.Context, symbol string) (model.Quote, error)
}

// RateGateway fetches the conversion rate from a base currency into the home currency.
type RateGateway interface {
	GetHomeRate(ctx context.Context, baseCurrency string) (float64, error)
}

// ValuationService owns the daily valuation runs: it turns an account's
// holdings plus live prices into per-holding valuation snapshots and a single
// daily total per (account, day), both written with upsert semantics so that
// repeated runs within the same day converge instead of duplicating rows.
type ValuationService struct {
	holdingRepo  *repository.HoldingRepository
	snapshotRepo *repository.SnapshotRepository
	totalRepo    *repository.TotalRepository
	quotes       QuoteGateway
	rates        RateGateway
	cfg          config.ValuationConfig
	location     *time.Location

	// accountLocks serializes the read-previous-then-write sequence per
	// account. Runs for different accounts proceed independently.
	accountLocks sync.Map // accountID -> *sync.Mutex
}

// NewValuationService creates a ValuationService with the provided
// dependencies. The configured timezone must name a valid location; it is the
// reference zone the calendar day is derived from.
func NewValuationService(
	holdingRepo *repository.HoldingRepository,
	snapshotRepo *repository.SnapshotRepository,
	totalRepo *repository.TotalRepository,
	quotes QuoteGateway,
	rates RateGateway,
	cfg config.ValuationConfig,
) (*ValuationService, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation timezone %q: %w", cfg.Timezone, err)
	}

	return &ValuationService{
		holdingRepo:  holdingRepo,
		snapshotRepo: snapshotRepo,
		totalRepo:    totalRepo,
		quotes:       quotes,
		rates:        rates,
		cfg:          cfg,
		location:     location,
	}, nil
}

// Reconcile runs a valuation for the calendar day at the current time.
func (s *ValuationService) Reconcile(ctx context.Context, accountID string) (model.ReconcileResult, error) {
	return s.ReconcileAt(ctx, accountID, time.Now())
}

// ReconcileAt runs a valuation for the calendar day containing the given
// instant, interpreted in the configured reference timezone.
//
// Per-holding quote fetches run concurrently and may individually fail; a
// failed quote marks that holding unpriced rather than aborting the run. The
// conversion rate is fetched once per run, alongside the quotes; its failure
// aborts the whole run with ErrRateUnavailable before anything is written.
// All writes are upserts keyed by natural uniqueness constraints, so a
// repeated run for the same day overwrites rather than appends, and a retry
// after a write failure is safe.
func (s *ValuationService) ReconcileAt(ctx context.Context, accountID string, at time.Time) (model.ReconcileResult, error) {
	day := at.In(s.location).Format(dayFormat)

	// Holdings are read before any gateway call; a store failure stops the
	// run before it spends network round-trips.
	holdings, err := s.holdingRepo.List(accountID)
	if err != nil {
		return model.ReconcileResult{}, fmt.Errorf("failed to load holdings: %w", err)
	}

	quotes := make([]*model.Quote, len(holdings))
	var rate float64

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetched, err := s.rates.GetHomeRate(gctx, s.cfg.BaseCurrency)
		if err != nil {
			if errors.Is(err, apperrors.ErrRateUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
		}
		rate = fetched
		return nil
	})

	for i, holding := range holdings {
		i, holding := i, holding
		g.Go(func() error {
			quote, err := s.quotes.GetQuote(gctx, holding.Symbol)
			if err != nil {
				// Per-holding failure is non-fatal; the holding is
				// recorded as unpriced.
				log.Printf("quote lookup failed for %s: %v", holding.Symbol, err)
				return nil
			}
			quotes[i] = &quote
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.ReconcileResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return model.ReconcileResult{}, err
	}

	snapshots := make([]model.ValuationSnapshot, len(holdings))
	var sum float64

	for i, holding := range holdings {
		snapshot := model.ValuationSnapshot{
			AccountID:   accountID,
			HoldingName: holding.DisplayName,
			Quantity:    holding.Quantity,
			Day:         day,
		}

		if quotes[i] != nil {
			unitPrice := quotes[i].Price
			if quotes[i].Currency != s.cfg.HomeCurrency {
				unitPrice *= rate
			}
			snapshot.UnitPrice = &unitPrice
			snapshot.TotalValue = unitPrice * holding.Quantity
			sum += snapshot.TotalValue
		} else if !s.cfg.SkipUnpriced {
			return model.ReconcileResult{}, fmt.Errorf("%w: %s", apperrors.ErrPriceUnavailable, holding.Symbol)
		}

		snapshots[i] = snapshot
	}

	// The read-previous-then-write sequence must not interleave with a
	// concurrent run for the same account, or that run's write could be
	// read back as "previous".
	lock := s.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	for i := range snapshots {
		if err := s.snapshotRepo.Upsert(snapshots[i]); err != nil {
			return model.ReconcileResult{}, err
		}
	}

	var previousTotal float64
	previous, err := s.totalRepo.GetLatestBefore(accountID, day)
	switch {
	case err == nil:
		previousTotal = previous.FinalTotal
	case errors.Is(err, apperrors.ErrTotalNotFound):
		previousTotal = 0
	default:
		return model.ReconcileResult{}, err
	}

	total := model.DailyTotal{
		AccountID:  accountID,
		Day:        day,
		FinalTotal: sum,
		Difference: sum - previousTotal,
	}

	if err := s.totalRepo.Upsert(total); err != nil {
		return model.ReconcileResult{}, err
	}

	s.purgeExpired(accountID, at)

	return model.ReconcileResult{
		Total:     total,
		Snapshots: snapshots,
	}, nil
}

// purgeExpired removes daily totals older than the retention window. This is
// best-effort housekeeping; a failure is logged and never surfaced to the
// caller, whose reconcile result is already complete.
func (s *ValuationService) purgeExpired(accountID string, at time.Time) {
	if s.cfg.RetentionDays <= 0 {
		return
	}

	cutoff := at.In(s.location).AddDate(0, 0, -s.cfg.RetentionDays).Format(dayFormat)
	if _, err := s.totalRepo.PurgeBefore(accountID, cutoff); err != nil {
		log.Printf("retention purge failed for account %s: %v", accountID, err)
	}
}

// Compare looks up the daily totals recorded at exactly day1 and day2 and
// returns their difference (total at day2 minus total at day1). Either day
// missing yields ErrTotalNotFound; there is no nearest-match fallback, and
// the order of the two days is the caller's choice.
func (s *ValuationService) Compare(ctx context.Context, accountID, day1, day2 string) (model.Comparison, error) {
	for _, day := range []string{day1, day2} {
		if _, err := time.Parse(dayFormat, day); err != nil {
			return model.Comparison{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidDateRange, day)
		}
	}

	first, err := s.totalRepo.GetByDay(accountID, day1)
	if err != nil {
		return model.Comparison{}, err
	}

	second, err := s.totalRepo.GetByDay(accountID, day2)
	if err != nil {
		return model.Comparison{}, err
	}

	return model.Comparison{
		AccountID:  accountID,
		Day1:       day1,
		Day2:       day2,
		Total1:     first.FinalTotal,
		Total2:     second.FinalTotal,
		Difference: second.FinalTotal - first.FinalTotal,
	}, nil
}

// LatestTotal returns the most recent daily total for an account.
func (s *ValuationService) LatestTotal(accountID string) (model.DailyTotal, error) {
	return s.totalRepo.GetLatest(accountID)
}

// TotalHistory returns the daily totals between startDay and endDay inclusive.
func (s *ValuationService) TotalHistory(accountID, startDay, endDay string) ([]model.DailyTotal, error) {
	start, err := time.Parse(dayFormat, startDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidDateRange, startDay)
	}
	end, err := time.Parse(dayFormat, endDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidDateRange, endDay)
	}
	if start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}

	return s.totalRepo.GetRange(accountID, startDay, endDay)
}

// SnapshotsForDay returns the per-holding valuation snapshots recorded for a day.
func (s *ValuationService) SnapshotsForDay(accountID, day string) ([]model.ValuationSnapshot, error) {
	if _, err := time.Parse(dayFormat, day); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidDateRange, day)
	}
	return s.snapshotRepo.GetByDay(accountID, day)
}

// RefreshAllAccounts reconciles every account that tracks at least one
// holding. Individual account failures are logged and collected; the
// remaining accounts still run. The scheduled refresh job drives this.
func (s *ValuationService) RefreshAllAccounts(ctx context.Context) error {
	accounts, err := s.holdingRepo.ListAccounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	var errs []error
	for _, accountID := range accounts {
		if _, err := s.Reconcile(ctx, accountID); err != nil {
			log.Printf("refresh failed for account %s: %v", accountID, err)
			errs = append(errs, fmt.Errorf("account %s: %w", accountID, err))
		}
	}

	return errors.Join(errs...)
}

func (s *ValuationService) lockAccount(accountID string) *sync.Mutex {
	lock, _ := s.accountLocks.LoadOrStore(accountID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
