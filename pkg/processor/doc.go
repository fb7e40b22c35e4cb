// Package processor turns roster rows into a ResultSet.
//
// Rows are handled strictly in order, one blocking lookup at a time. A row
// whose profile link is missing or does not contain the profile marker is
// dropped without an error. Every other row yields exactly one OutputRow,
// with zero stats when the lookup failed.
//
//	p := processor.New(client, &cfg.Input, log)
//	p.SetObserver(ui.NewProgressDisplay(quiet))
//	results, err := p.Run(ctx, rows)
//	if errors.Is(err, processor.ErrNoValidProfiles) {
//	    // warn, write nothing
//	}
package processor
