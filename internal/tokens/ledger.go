// Package tokens keeps the per-user generation token balance.
package tokens

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const DefaultAllowance = 100

var (
	ErrInsufficientTokens = errors.New("insufficient tokens")
	ErrInvalidAmount      = errors.New("token amount must be positive")
	ErrUnknownPackage     = errors.New("unknown token package")
)

// Package is a purchasable bundle of tokens. Price is in cents.
type Package struct {
	Tokens int
	Price  int
}

var Packages = []Package{
	{Tokens: 50, Price: 500},
	{Tokens: 100, Price: 900},
	{Tokens: 250, Price: 2000},
	{Tokens: 500, Price: 3500},
}

func FindPackage(tokens int) (Package, error) {
	for _, p := range Packages {
		if p.Tokens == tokens {
			return p, nil
		}
	}
	return Package{}, fmt.Errorf("%w: %d", ErrUnknownPackage, tokens)
}

type Balance struct {
	Total    int
	Used     int
	Reserved int
}

// Remaining is what a new reservation can still draw on.
func (b Balance) Remaining() int {
	return b.Total - b.Used - b.Reserved
}

type account struct {
	total    int
	used     int
	reserved int
}

// Ledger is a process-local counter per user. Balances reset on restart.
type Ledger struct {
	allowance int
	logger    *zap.Logger

	mu       sync.Mutex
	accounts map[string]*account
}

func NewLedger(allowance int, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		allowance: allowance,
		logger:    logger.Named("tokens"),
		accounts:  make(map[string]*account),
	}
}

func (l *Ledger) accountLocked(userID string) *account {
	a, ok := l.accounts[userID]
	if !ok {
		a = &account{total: l.allowance}
		l.accounts[userID] = a
	}
	return a
}

func (l *Ledger) Balance(userID string) Balance {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accountLocked(userID)
	return Balance{Total: a.total, Used: a.used, Reserved: a.reserved}
}

// Reserve holds n tokens for userID until the reservation is committed or
// released. Concurrent reservations can never overdraw the balance.
func (l *Ledger) Reserve(userID string, n int) (*Reservation, error) {
	if n <= 0 {
		return nil, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accountLocked(userID)
	if remaining := a.total - a.used - a.reserved; remaining < n {
		l.logger.Debug("reservation rejected",
			zap.String("user_id", userID), zap.Int("cost", n), zap.Int("remaining", remaining))
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTokens, n, remaining)
	}
	a.reserved += n
	return &Reservation{ledger: l, userID: userID, amount: n}, nil
}

// Add credits n tokens to userID.
func (l *Ledger) Add(userID string, n int) (Balance, error) {
	if n <= 0 {
		return Balance{}, ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accountLocked(userID)
	a.total += n
	l.logger.Info("tokens added", zap.String("user_id", userID), zap.Int("tokens", n))
	return Balance{Total: a.total, Used: a.used, Reserved: a.reserved}, nil
}

// Purchase credits the tokens of a known package. No payment is taken.
func (l *Ledger) Purchase(userID string, packageTokens int) (Balance, error) {
	p, err := FindPackage(packageTokens)
	if err != nil {
		return Balance{}, err
	}
	return l.Add(userID, p.Tokens)
}

// Reservation is a pending debit. Exactly one of Commit or Release takes
// effect; later calls are no-ops.
type Reservation struct {
	ledger *Ledger
	userID string
	amount int
	done   bool
}

func (r *Reservation) Amount() int { return r.amount }

func (r *Reservation) Commit() {
	r.settle(true)
}

func (r *Reservation) Release() {
	r.settle(false)
}

func (r *Reservation) settle(commit bool) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if r.done {
		return
	}
	r.done = true
	a := l.accountLocked(r.userID)
	a.reserved -= r.amount
	if commit {
		a.used += r.amount
	}
}
