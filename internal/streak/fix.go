package streak

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// FixReport summarizes a maintenance pass over the stored records.
type FixReport struct {
	Scanned  int
	Invalid  int
	Repaired int
	// Unrepairable records violate invariants RepairLogin cannot restore, e.g. a missing date,
	// or could not be decoded at all.
	Unrepairable int
}

func (r FixReport) String() string {
	return fmt.Sprintf("scanned: %d, invalid: %d, repaired: %d, unrepairable: %d",
		r.Scanned, r.Invalid, r.Repaired, r.Unrepairable)
}

// Fix validates every stored record and rewrites the login group of the
// broken ones. With dryRun set, nothing is written.
func Fix(ctx context.Context, store Store, dryRun bool) (FixReport, error) {
	var report FixReport
	err := store.Scan(ctx, func(userID string, rec Record, decodeErr error) error {
		report.Scanned++
		if decodeErr != nil {
			report.Invalid++
			report.Unrepairable++
			log.Warnf("undecodable streak record [%s]: %s", userID, decodeErr)
			return nil
		}

		verr := rec.Validate()
		if verr == nil {
			return nil
		}
		report.Invalid++
		log.Warnf("invalid streak record [%s]: %s", userID, verr)

		fixed, changed := RepairLogin(rec)
		if !changed || fixed.Validate() != nil {
			report.Unrepairable++
			return nil
		}
		if dryRun {
			log.Infof("[dry run] would fix [%s]: %+v -> %+v", userID, rec.Login(), fixed.Login())
			return nil
		}

		if err := store.MergeLogin(ctx, userID, fixed.Login()); err != nil {
			return fmt.Errorf("fix [%s]: %w", userID, err)
		}
		report.Repaired++
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, nil
}
