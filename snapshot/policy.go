package snapshot

// Policy decides how snapshots reach disk after a mutation.
//
// Save must never fail the mutation that triggered it: a snapshot that
// cannot be written is reported to the operator (logged) and the
// in-memory state stays authoritative. The next mutation's save retries
// naturally, since every save writes the full state.
type Policy interface {

	// Save persists the given snapshot. The caller hands over ownership;
	// the policy may write it now or later.
	Save(s *Snapshot)

	// Close flushes any pending work. Called once, on cache shutdown.
	Close()
}
