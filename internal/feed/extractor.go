package feed

import (
	"strings"

	"github.com/arenawatch/position-watcher/internal/model"
)

// SelectAccounts narrows the payload down to the accounts whose id
// starts with one of the given prefixes, case-insensitively. No match
// is a normal outcome and yields an empty list.
func SelectAccounts(payload model.RawPayload, prefixes []string) []model.TrackedAccount {
	accounts := payload.Accounts()

	selected := make([]model.TrackedAccount, 0, len(accounts))
	for _, account := range accounts {
		id := strings.ToLower(account.ID)
		for _, prefix := range prefixes {
			if strings.HasPrefix(id, strings.ToLower(prefix)) {
				selected = append(selected, account)
				break
			}
		}
	}

	return selected
}
