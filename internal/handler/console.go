package handler

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sovenok-bot/sovenok/internal/store"
)

type consoleState int

const (
	consoleIdle consoleState = iota
	consoleAwaitingTarget
	consoleAwaitingAction
	consoleAwaitingAmount
)

type consoleAction int

const (
	actionNone consoleAction = iota
	actionAddBonus
	actionRemoveBonus
)

// Console is the guarded multi-step dialogue letting the single privileged
// identity inspect and adjust another user's quota state. It holds no
// transport concerns: every step takes the invoker and their text and
// returns the reply to send.
type Console struct {
	mu      sync.Mutex
	adminID int64
	ledger  *store.QuotaLedger

	state  consoleState
	target int64
	action consoleAction
}

func NewConsole(adminID int64, ledger *store.QuotaLedger) *Console {
	return &Console{adminID: adminID, ledger: ledger}
}

// Start opens the dialogue. Non-privileged invocation is rejected with no
// state entered.
func (c *Console) Start(userID int64) (string, bool) {
	if userID != c.adminID || c.adminID == 0 {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = consoleAwaitingTarget
	c.target = 0
	c.action = actionNone
	return "🔧 Консоль администратора.\nВведите ID пользователя (или /cancel):", true
}

// Active reports whether the invoker is mid-dialogue, so the text router
// can divert their messages here instead of the assistant.
func (c *Console) Active(userID int64) bool {
	if userID != c.adminID {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != consoleIdle
}

// Cancel aborts the dialogue from any state.
func (c *Console) Cancel(userID int64) (string, bool) {
	if userID != c.adminID {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == consoleIdle {
		return "", false
	}
	c.state = consoleIdle
	return "Операция отменена.", true
}

// Input advances the dialogue one step. Invalid input re-prompts the same
// state rather than advancing.
func (c *Console) Input(userID int64, text string) (string, bool) {
	if userID != c.adminID {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	text = strings.TrimSpace(text)

	switch c.state {
	case consoleAwaitingTarget:
		target, err := strconv.ParseInt(text, 10, 64)
		if err != nil || target <= 0 {
			return "❌ Некорректный ID. Введите целое положительное число:", true
		}
		c.target = target
		c.state = consoleAwaitingAction
		status := c.ledger.Status(target)
		return fmt.Sprintf(
			"Пользователь %d: лимит %d, использовано %d.\n"+
				"Выберите действие:\n"+
				"1 — добавить бонус\n"+
				"2 — убрать бонус\n"+
				"3 — переключить безлимит на сегодня",
			target, status.Limit, status.Used,
		), true

	case consoleAwaitingAction:
		switch text {
		case "1":
			c.action = actionAddBonus
			c.state = consoleAwaitingAmount
			return "Введите количество сообщений:", true
		case "2":
			c.action = actionRemoveBonus
			c.state = consoleAwaitingAmount
			return "Введите количество сообщений:", true
		case "3":
			enabled := c.ledger.ToggleUnlimited(c.target)
			c.state = consoleIdle
			if enabled {
				return fmt.Sprintf("✅ Безлимит для %d на сегодня включён.", c.target), true
			}
			return fmt.Sprintf("✅ Безлимит для %d на сегодня выключен.", c.target), true
		default:
			return "❌ Введите 1, 2 или 3:", true
		}

	case consoleAwaitingAmount:
		amount, err := strconv.Atoi(text)
		if err != nil || amount < 0 {
			return "❌ Некорректное число. Введите неотрицательное целое:", true
		}
		delta := amount
		if c.action == actionRemoveBonus {
			delta = -amount
		}
		c.ledger.GrantBonus(c.target, delta)
		status := c.ledger.Status(c.target)
		c.state = consoleIdle
		return fmt.Sprintf(
			"✅ Готово. Лимит пользователя %d на сегодня: %d (использовано %d).",
			c.target, status.Limit, status.Used,
		), true
	}

	return "", false
}
