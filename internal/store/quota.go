package store

import (
	"sync"
	"time"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
)

type dayKey struct {
	UserID int64
	Day    string
}

type quotaRecord struct {
	Used  int
	Bonus int
}

// QuotaLedger tracks per-user daily message counts, referral-derived bonus
// capacity and admin-granted bonuses. Records are keyed by (user, UTC day),
// created lazily and removed by a lazy, time-gated sweep.
type QuotaLedger struct {
	mu         sync.Mutex
	records    map[dayKey]*quotaRecord
	referrals  map[int64]int    // referrer -> distinct invited users
	referredBy map[int64]int64  // invited user -> referrer
	unlimited  map[int64]string // user -> day the override was granted
	lastSweep  time.Time
	now        func() time.Time
}

func NewQuotaLedger() *QuotaLedger {
	return &QuotaLedger{
		records:    make(map[dayKey]*quotaRecord),
		referrals:  make(map[int64]int),
		referredBy: make(map[int64]int64),
		unlimited:  make(map[int64]string),
		now:        time.Now,
	}
}

func utcDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CheckAndConsume reports whether the user may send one more message today
// and, if so, consumes one unit of the allowance. Exempt chats and same-day
// unlimited overrides pass without mutating state.
func (l *QuotaLedger) CheckAndConsume(userID int64, exemptChat bool) bool {
	if exemptChat {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked()

	today := utcDay(l.now())
	if l.unlimited[userID] == today {
		return true
	}

	rec := l.recordLocked(userID, today)
	if rec.Used >= l.limitLocked(userID, rec) {
		return false
	}
	rec.Used++
	return true
}

// GrantBonus adjusts today's admin-granted bonus for the user. The bonus
// never goes below zero.
func (l *QuotaLedger) GrantBonus(userID int64, delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.recordLocked(userID, utcDay(l.now()))
	rec.Bonus += delta
	if rec.Bonus < 0 {
		rec.Bonus = 0
	}
}

// RegisterReferral credits referrerID for inviting newUserID. Each invited
// user is credited at most once, and self-referrals are rejected. Reports
// whether the credit was applied.
func (l *QuotaLedger) RegisterReferral(newUserID, referrerID int64) bool {
	if newUserID == referrerID {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.referredBy[newUserID]; exists {
		return false
	}
	l.referredBy[newUserID] = referrerID
	l.referrals[referrerID]++
	return true
}

// ReferralCount returns how many users the given user has invited.
func (l *QuotaLedger) ReferralCount(userID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.referrals[userID]
}

// ToggleUnlimited flips the unconditional quota pass for the user. The
// override holds for the grant day only. Reports the new state.
func (l *QuotaLedger) ToggleUnlimited(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := utcDay(l.now())
	if l.unlimited[userID] == today {
		delete(l.unlimited, userID)
		return false
	}
	l.unlimited[userID] = today
	return true
}

// Status is a pure read of the user's allowance for today.
func (l *QuotaLedger) Status(userID int64) domain.QuotaStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := utcDay(l.now())
	rec, ok := l.records[dayKey{UserID: userID, Day: today}]
	if !ok {
		rec = &quotaRecord{}
	}
	limit := l.limitLocked(userID, rec)
	remaining := limit - rec.Used
	if remaining < 0 {
		remaining = 0
	}
	return domain.QuotaStatus{Limit: limit, Used: rec.Used, Remaining: remaining}
}

func (l *QuotaLedger) limitLocked(userID int64, rec *quotaRecord) int {
	return config.DailyMessageLimit +
		config.ReferralBonusPerInvite*l.referrals[userID] +
		rec.Bonus
}

func (l *QuotaLedger) recordLocked(userID int64, day string) *quotaRecord {
	key := dayKey{UserID: userID, Day: day}
	rec, ok := l.records[key]
	if !ok {
		rec = &quotaRecord{}
		l.records[key] = rec
	}
	return rec
}

// sweepLocked drops records older than one day. It is gated to run at most
// once per QuotaSweepInterval so memory stays bounded without a background
// timer; correctness never depends on sweep timing because keys include the
// date.
func (l *QuotaLedger) sweepLocked() {
	now := l.now()
	if now.Sub(l.lastSweep) < config.QuotaSweepInterval {
		return
	}
	l.lastSweep = now

	yesterday := utcDay(now.AddDate(0, 0, -1))
	for key := range l.records {
		if key.Day < yesterday {
			delete(l.records, key)
		}
	}
	today := utcDay(now)
	for userID, day := range l.unlimited {
		if day < today {
			delete(l.unlimited, userID)
		}
	}
}
