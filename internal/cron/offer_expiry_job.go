package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mirafzalswe/foodsave/internal/availability"
	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/metrics"
)

type offerExpiryRepo interface {
	ListLapsed(ctx context.Context, asOf time.Time) ([]models.Offer, error)
	MarkExpired(ctx context.Context, ids []uuid.UUID) (int64, error)
	ListEndingOn(ctx context.Context, day time.Time) ([]models.Offer, error)
}

type expiryNotifier interface {
	OfferExpiring(ctx context.Context, userID uuid.UUID, itemTitle string, endDate time.Time) error
}

// OfferExpiryJob sweeps lapsed offers to expired and warns vendor owners
// about offers entering their last day.
type OfferExpiryJob struct {
	repo     offerExpiryRepo
	notifier expiryNotifier
	logg     *logger.Logger
	metrics  *metrics.CronJobMetrics
	now      func() time.Time
}

// OfferExpiryJobParams configure the expiry job.
type OfferExpiryJobParams struct {
	Repo     offerExpiryRepo
	Notifier expiryNotifier
	Logger   *logger.Logger
	Metrics  *metrics.CronJobMetrics
}

// NewOfferExpiryJob builds the expiry job.
func NewOfferExpiryJob(params OfferExpiryJobParams) (*OfferExpiryJob, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("offer repo required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &OfferExpiryJob{
		repo:     params.Repo,
		notifier: params.Notifier,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      time.Now,
	}, nil
}

// Name identifies the job in logs and metrics.
func (j *OfferExpiryJob) Name() string { return "offer-expiry" }

// Run performs one sweep. The sweep and the reminders are independent, a
// failure in one does not stop the other.
func (j *OfferExpiryJob) Run(ctx context.Context) error {
	return multierr.Combine(
		j.sweepLapsed(ctx),
		j.remindEndingTomorrow(ctx),
	)
}

func (j *OfferExpiryJob) sweepLapsed(ctx context.Context) error {
	lapsed, err := j.repo.ListLapsed(ctx, j.now())
	if err != nil {
		return fmt.Errorf("list lapsed offers: %w", err)
	}
	if len(lapsed) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(lapsed))
	for _, offer := range lapsed {
		ids = append(ids, offer.ID)
	}
	affected, err := j.repo.MarkExpired(ctx, ids)
	if err != nil {
		return fmt.Errorf("mark offers expired: %w", err)
	}
	j.metrics.AddExpiredOffers(affected)
	j.logg.Info(j.logg.WithField(ctx, "expired", affected), "expiry sweep complete")
	return nil
}

func (j *OfferExpiryJob) remindEndingTomorrow(ctx context.Context) error {
	tomorrow := availability.DateOnly(j.now()).AddDate(0, 0, 1)
	ending, err := j.repo.ListEndingOn(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("list ending offers: %w", err)
	}

	var errs error
	for _, offer := range ending {
		if offer.Item == nil || offer.Item.Vendor == nil || offer.EndDate == nil {
			continue
		}
		owner := offer.Item.Vendor.OwnerID
		if err := j.notifier.OfferExpiring(ctx, owner, offer.Item.Title, *offer.EndDate); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("notify offer %s: %w", offer.ID, err))
		}
	}
	return errs
}
