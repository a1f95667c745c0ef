package service

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/govalues/decimal"

	"github.com/govalues/moneytax/money"
	"github.com/govalues/moneytax/tax"
)

// loggingService decorates a Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, amount money.Amount, to money.Currency) (c Conversion, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"amount", amount,
			"to", to,
			"rate", c.Rate,
			"converted_amount", c.Amount,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, amount, to)
}

func (s *loggingService) Compare(ctx context.Context, a, b money.Amount) (cmp int, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "compare",
			"a", a,
			"b", b,
			"cmp", cmp,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Compare(ctx, a, b)
}

func (s *loggingService) SetRate(ctx context.Context, from, to money.Currency, rate decimal.Decimal) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "set_rate",
			"from", from,
			"to", to,
			"rate", rate,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SetRate(ctx, from, to, rate)
}

func (s *loggingService) Rates(ctx context.Context) (rates []money.ExchangeRate) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rates",
			"count", len(rates),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.Rates(ctx)
}

func (s *loggingService) Assess(ctx context.Context, schedule string, income money.Amount, deductions []tax.Deduction) (a tax.Assessment, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "assess",
			"schedule", schedule,
			"income", income,
			"deductions", len(deductions),
			"tax", a.Tax,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Assess(ctx, schedule, income, deductions)
}

func (s *loggingService) Schedules(ctx context.Context) (infos []ScheduleInfo) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "schedules",
			"count", len(infos),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.Schedules(ctx)
}
