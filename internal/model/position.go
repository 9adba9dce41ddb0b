package model

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// OID is the identifier the upstream feed assigns to a position-opening
// event. It arrives as a JSON number or string; a missing value or -1
// means the model holds no position for that symbol.
type OID string

const _oidSentinel OID = "-1"

// Valid reports whether the oid identifies a real position.
func (o OID) Valid() bool {
	return o != "" && o != _oidSentinel
}

func (o *OID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*o = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := sonic.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w: can't unmarshal oid", err)
		}
		*o = OID(v)
		return nil
	}
	// number: keep the raw text so large ids survive intact
	*o = OID(s)
	return nil
}

func (o OID) MarshalJSON() ([]byte, error) {
	if isIntegerText(string(o)) {
		return []byte(o), nil
	}
	return sonic.Marshal(string(o))
}

func isIntegerText(s string) bool {
	if s == "" || s == "-" {
		return false
	}
	for i, r := range s {
		if i == 0 && r == '-' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExitPlan is the optional protective order levels attached to a position.
type ExitPlan struct {
	StopLoss     float64 `json:"stop_loss"`
	ProfitTarget float64 `json:"profit_target"`
}

// Position is one model's open position snapshot for a single symbol.
// Snapshots are recreated on every poll; the only cross-poll identity
// is EntryOID.
type Position struct {
	Side          string    `json:"side,omitempty"`
	EntryOID      OID       `json:"entry_oid"`
	EntryPrice    float64   `json:"entry_price"`
	CurrentPrice  float64   `json:"current_price"`
	Quantity      float64   `json:"quantity"`
	Leverage      float64   `json:"leverage"`
	UnrealizedPnL float64   `json:"unrealized_pnl"`
	Commission    float64   `json:"commission"`
	Margin        float64   `json:"margin"`
	Confidence    float64   `json:"confidence"`
	EntryTime     int64     `json:"entry_time"`
	ExitPlan      *ExitPlan `json:"exit_plan,omitempty"`
}

// TrackedAccount is an upstream trading model with its open positions
// keyed by symbol.
type TrackedAccount struct {
	ID        string
	Positions map[string]Position
}

// NewPositionEvent is emitted once per entry oid the first time it is
// observed.
type NewPositionEvent struct {
	AccountID string
	Symbol    string
	Position  Position
}
