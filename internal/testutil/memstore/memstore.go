// Package memstore keeps bookings, transactions and communities in memory.
// It satisfies the same repository ports as the Postgres repositories and
// holds one mutex per call, which gives the per-booking atomicity the
// settlement path relies on.
package memstore

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	bookingModel "tourismrelay/internal/domains/booking/model"
	bookingRepo "tourismrelay/internal/domains/booking/repository"
	communityModel "tourismrelay/internal/domains/community/model"
	communityRepo "tourismrelay/internal/domains/community/repository"
	paymentModel "tourismrelay/internal/domains/payment/model"
	paymentRepo "tourismrelay/internal/domains/payment/repository"
	"tourismrelay/shared/constant"
	gModel "tourismrelay/shared/model"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvariant    = errors.New("booking invariant violated")
)

var (
	_ bookingRepo.Booking     = (*Store)(nil)
	_ communityRepo.Community = (*Store)(nil)
	_ paymentRepo.Payment     = (*Store)(nil)
)

// IlNgwesi is the community seeded by the initial migration.
var IlNgwesi = communityModel.Community{
	ID:              "8d3c1f5e-2b7a-4c61-9f0e-5a1d2c3b4e6f",
	Name:            "Il Ngwesi",
	StewardName:     "Joseph",
	StewardPhone:    "+254741770540",
	ServicesOffered: gModel.StringList(communityModel.Services),
	Pricing:         gModel.JSONMap{"currency": constant.CurrencyKES},
}

type Store struct {
	mu           sync.Mutex
	bookings     map[string]bookingModel.Booking
	transactions []paymentModel.Transaction
	communities  map[string]communityModel.Community

	fault error
	delay time.Duration
}

// New returns a store seeded with communities, IlNgwesi when none are given.
func New(communities ...communityModel.Community) *Store {
	if len(communities) == 0 {
		communities = []communityModel.Community{IlNgwesi}
	}

	s := &Store{
		bookings:    map[string]bookingModel.Booking{},
		communities: map[string]communityModel.Community{},
	}

	for _, c := range communities {
		s.communities[c.ID] = c
	}

	return s
}

// Fail makes every later call return err until Fail(nil).
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fault = err
}

// Delay makes every later call wait d, or until its context ends.
func (s *Store) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delay = d
}

// enter waits out the configured delay and takes the lock. The caller must
// call s.mu.Unlock when err is nil.
func (s *Store) enter(ctx context.Context) error {
	s.mu.Lock()
	delay, fault := s.delay, s.fault
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if fault != nil {
		return fault
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()

	return nil
}

// Booking returns a copy of the stored booking without going through a port.
func (s *Store) Booking(code string) (bookingModel.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[code]

	return b, ok
}

// TransactionCount counts rows recorded for a booking.
func (s *Store) TransactionCount(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for _, tx := range s.transactions {
		if tx.BookingCode == code {
			n++
		}
	}

	return n
}

// Put stores b as is, replacing any booking with the same code.
func (s *Store) Put(b bookingModel.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings[b.Code] = b
}

func checkInvariants(b bookingModel.Booking) error {
	if b.IsPaid() != b.AmountPaid.Valid {
		return ErrInvariant
	}

	if b.IsConfirmed() != (b.ConfirmedServices != nil) {
		return ErrInvariant
	}

	return nil
}

func (s *Store) Insert(ctx context.Context, b bookingModel.Booking) error {
	if err := s.enter(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.Code]; ok {
		return ErrDuplicateKey
	}

	if err := checkInvariants(b); err != nil {
		return err
	}

	s.bookings[b.Code] = b

	return nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (bookingModel.Booking, error) {
	return s.GetBooking(ctx, code)
}

func (s *Store) Confirm(ctx context.Context, code string, services []string, actor string, at time.Time) (bool, error) {
	if err := s.enter(ctx); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	b, ok := s.bookings[code]
	if !ok || b.Status != bookingModel.StatusPending {
		return false, nil
	}

	confirmed := gModel.StringList(slices.Clone(services))
	if confirmed == nil {
		confirmed = gModel.StringList{}
	}

	b.Status = bookingModel.StatusConfirmed
	b.ConfirmedServices = &confirmed
	b.ModifiedAt = at
	b.ModifiedBy = actor

	s.bookings[code] = b

	return true, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (communityModel.Community, error) {
	if err := s.enter(ctx); err != nil {
		return communityModel.Community{}, err
	}
	defer s.mu.Unlock()

	return s.communities[id], nil
}

func (s *Store) GetByName(ctx context.Context, name string) (communityModel.Community, error) {
	if err := s.enter(ctx); err != nil {
		return communityModel.Community{}, err
	}
	defer s.mu.Unlock()

	for _, c := range s.communities {
		if c.Name == name {
			return c, nil
		}
	}

	return communityModel.Community{}, nil
}

func (s *Store) GetBooking(ctx context.Context, code string) (bookingModel.Booking, error) {
	if err := s.enter(ctx); err != nil {
		return bookingModel.Booking{}, err
	}
	defer s.mu.Unlock()

	return s.bookings[code], nil
}

func (s *Store) TransactionExists(ctx context.Context, providerReference string) (bool, error) {
	if err := s.enter(ctx); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	return s.hasReference(providerReference), nil
}

func (s *Store) hasReference(ref string) bool {
	if ref == "" {
		return false
	}

	return slices.ContainsFunc(s.transactions, func(tx paymentModel.Transaction) bool {
		return tx.ProviderReference == ref
	})
}

func (s *Store) FindPushCandidate(ctx context.Context, sessionID, phoneSuffix string) (bookingModel.Booking, error) {
	if err := s.enter(ctx); err != nil {
		return bookingModel.Booking{}, err
	}
	defer s.mu.Unlock()

	if sessionID != "" {
		for _, b := range s.bookings {
			if b.PushSessionID == sessionID && (b.PaymentStatus == bookingModel.PaymentStatusPendingPush || b.IsPaid()) {
				return b, nil
			}
		}
	}

	if phoneSuffix == "" {
		return bookingModel.Booking{}, nil
	}

	var best bookingModel.Booking

	for _, b := range s.bookings {
		if b.PaymentStatus != bookingModel.PaymentStatusPendingPush {
			continue
		}

		if b.TouristPhoneSuffix != phoneSuffix && b.PushPhoneSuffix != phoneSuffix {
			continue
		}

		if !best.Exists() || b.CreatedAt.After(best.CreatedAt) {
			best = b
		}
	}

	return best, nil
}

func (s *Store) MarkPushPending(ctx context.Context, code, sessionID, phoneSuffix string, at time.Time) (bool, error) {
	if err := s.enter(ctx); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	b, ok := s.bookings[code]
	if !ok || b.IsPaid() {
		return false, nil
	}

	b.PaymentStatus = bookingModel.PaymentStatusPendingPush
	b.PushSessionID = sessionID
	b.PushPhoneSuffix = phoneSuffix
	b.ModifiedAt = at
	b.ModifiedBy = constant.ContextSystem

	s.bookings[code] = b

	return true, nil
}

func (s *Store) Settle(ctx context.Context, tx paymentModel.Transaction) (paymentModel.SettleResult, error) {
	if err := s.enter(ctx); err != nil {
		return paymentModel.SettleResult{}, err
	}
	defer s.mu.Unlock()

	b, ok := s.bookings[tx.BookingCode]
	if !ok {
		return paymentModel.SettleResult{}, nil
	}

	res := paymentModel.SettleResult{BookingFound: true, Booking: b}

	if s.hasReference(tx.ProviderReference) {
		return res, nil
	}

	s.transactions = append(s.transactions, tx)
	res.Recorded = true

	if b.IsPaid() {
		return res, nil
	}

	b.PaymentStatus = bookingModel.PaymentStatusPaid
	b.AmountPaid.Decimal = tx.Amount
	b.AmountPaid.Valid = true
	b.ModifiedAt = tx.Timestamp
	b.ModifiedBy = constant.ContextSystem

	if err := checkInvariants(b); err != nil {
		return paymentModel.SettleResult{}, err
	}

	s.bookings[b.Code] = b
	res.Applied = true

	return res, nil
}

func (s *Store) RevertPush(ctx context.Context, code string, at time.Time) (bool, error) {
	if err := s.enter(ctx); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	b, ok := s.bookings[code]
	if !ok || b.PaymentStatus != bookingModel.PaymentStatusPendingPush {
		return false, nil
	}

	b.PaymentStatus = bookingModel.PaymentStatusPending
	b.ModifiedAt = at
	b.ModifiedBy = constant.ContextSystem

	s.bookings[code] = b

	return true, nil
}

func (s *Store) ListTransactions(ctx context.Context, bookingCode string) ([]paymentModel.Transaction, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	res := []paymentModel.Transaction{}

	for _, tx := range s.transactions {
		if strings.EqualFold(tx.BookingCode, bookingCode) {
			res = append(res, tx)
		}
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Timestamp.Before(res[j].Timestamp) })

	return res, nil
}
