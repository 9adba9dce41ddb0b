package model

// ModelEntry is the per-model element of the "positions" payload shape.
type ModelEntry struct {
	ID        string              `json:"id"`
	Positions map[string]Position `json:"positions"`
}

// AccountTotalsEntry is the element of the "accountTotals" payload
// shape. The aggregate stats ride along but are not used for detection.
type AccountTotalsEntry struct {
	ModelID   string              `json:"model_id"`
	Positions map[string]Position `json:"positions"`
	Equity    float64             `json:"equity"`
	PnL       float64             `json:"pnl"`
	Sharpe    float64             `json:"sharpe"`
}

// RawPayload covers both response shapes the upstream endpoint is known
// to serve. A response carries one of the two lists.
type RawPayload struct {
	Positions     []ModelEntry         `json:"positions"`
	AccountTotals []AccountTotalsEntry `json:"accountTotals"`
}

// Accounts normalizes both payload shapes into the internal account
// model so schema variance stays out of the detection logic.
func (p RawPayload) Accounts() []TrackedAccount {
	accounts := make([]TrackedAccount, 0, len(p.Positions)+len(p.AccountTotals))
	for _, e := range p.Positions {
		accounts = append(accounts, TrackedAccount{ID: e.ID, Positions: e.Positions})
	}
	for _, e := range p.AccountTotals {
		accounts = append(accounts, TrackedAccount{ID: e.ModelID, Positions: e.Positions})
	}
	return accounts
}
