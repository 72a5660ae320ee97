package donation

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ContractDonationEvents is like [DonationEventsFromApplicationLog] but keeps
// only events emitted by the given Donation contract. Other contracts invoked
// by the same transaction can produce notifications with the same name.
func ContractDonationEvents(log *result.ApplicationLog, contract util.Uint160) ([]*DonationEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DonationEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Donation" || !e.ScriptHash.Equals(contract) {
				continue
			}
			event := new(DonationEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("execution #%d, event #%d: %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}
