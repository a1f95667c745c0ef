// Package service exposes currency conversion and tax assessment over a
// shared exchange rate table and a set of named tax schedules.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/govalues/decimal"

	"github.com/govalues/moneytax/money"
	"github.com/govalues/moneytax/tax"
)

// ErrScheduleNotFound is returned when a tax schedule name is unknown.
var ErrScheduleNotFound = errors.New("tax schedule not found")

// Service interface for converting amounts and assessing tax
type Service interface {
	Convert(ctx context.Context, amount money.Amount, to money.Currency) (Conversion, error)
	Compare(ctx context.Context, a, b money.Amount) (int, error)
	SetRate(ctx context.Context, from, to money.Currency, rate decimal.Decimal) error
	Rates(ctx context.Context) []money.ExchangeRate
	Assess(ctx context.Context, schedule string, income money.Amount, deductions []tax.Deduction) (tax.Assessment, error)
	Schedules(ctx context.Context) []ScheduleInfo
}

// Conversion is the result of converting an amount to another currency.
type Conversion struct {
	Original money.Amount
	Rate     money.ExchangeRate
	Amount   money.Amount
}

// ScheduleInfo describes a named tax schedule.
type ScheduleInfo struct {
	Name     string
	Curr     money.Currency
	Brackets []tax.Bracket
}

type service struct {
	// mu guards exchange; schedules are read-only after construction.
	mu        sync.RWMutex
	exchange  *money.Exchange
	schedules map[string]*tax.Schedule
}

// NewService constructs a valid Service. The service takes ownership of
// the exchange and the schedules.
func NewService(x *money.Exchange, schedules map[string]*tax.Schedule) Service {
	if x == nil {
		x = money.NewExchange()
	}
	if schedules == nil {
		schedules = make(map[string]*tax.Schedule)
	}
	return &service{
		exchange:  x,
		schedules: schedules,
	}
}

// Convert converts amount to currency to, rounded to the scale of to.
func (s *service) Convert(_ context.Context, amount money.Amount, to money.Currency) (Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, err := s.exchange.Rate(amount.Curr(), to)
	if err != nil {
		return Conversion{}, fmt.Errorf("convert [%v] to %v: %w", amount, to, err)
	}
	converted, err := rate.Conv(amount)
	if err != nil {
		return Conversion{}, fmt.Errorf("convert [%v] to %v: %w", amount, to, err)
	}
	return Conversion{
		Original: amount,
		Rate:     rate,
		Amount:   converted.RoundToCurr(),
	}, nil
}

// Compare compares a and b in the currency of a.
func (s *service) Compare(_ context.Context, a, b money.Amount) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exchange.Cmp(a, b)
}

func (s *service) SetRate(_ context.Context, from, to money.Currency, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchange.SetRate(from, to, rate)
}

func (s *service) Rates(_ context.Context) []money.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exchange.Rates()
}

// Assess computes the tax owed under the named schedule.
func (s *service) Assess(_ context.Context, schedule string, income money.Amount, deductions []tax.Deduction) (tax.Assessment, error) {
	sch, ok := s.schedules[schedule]
	if !ok {
		return tax.Assessment{}, fmt.Errorf("%q: %w", schedule, ErrScheduleNotFound)
	}
	a, err := sch.Assess(income, deductions)
	if err != nil {
		return tax.Assessment{}, fmt.Errorf("assess %q: %w", schedule, err)
	}
	return a, nil
}

// Schedules lists the schedules sorted by name.
func (s *service) Schedules(_ context.Context) []ScheduleInfo {
	infos := make([]ScheduleInfo, 0, len(s.schedules))
	for name, sch := range s.schedules {
		infos = append(infos, ScheduleInfo{
			Name:     name,
			Curr:     sch.Curr(),
			Brackets: sch.Brackets(),
		})
	}
	slices.SortFunc(infos, func(a, b ScheduleInfo) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return infos
}
