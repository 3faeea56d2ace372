package domain

import "time"

// DefaultRemarks is recorded when a history entry carries no remarks.
const DefaultRemarks = "No remarks provided"

// DefaultActor is recorded when the acting username is unknown.
const DefaultActor = "System"

// HistoryEntry is an immutable audit record. Every entry snapshots the
// ticket's status at the time of the change, even when only remarks changed,
// so each entry is self-describing.
type HistoryEntry struct {
	Status    TicketStatus `json:"status"`
	Remarks   string       `json:"remarks"`
	Username  string       `json:"username"`
	Timestamp time.Time    `json:"timestamp"`
}

// Ledger is the append-only history attached to a ticket, ordered by append
// sequence. It is owned exclusively by its ticket and persisted with it.
type Ledger []HistoryEntry

// Append adds an entry, defaulting remarks and username and clamping the
// timestamp so it never decreases within the ledger.
func (l *Ledger) Append(entry HistoryEntry) {
	if entry.Remarks == "" {
		entry.Remarks = DefaultRemarks
	}
	if entry.Username == "" {
		entry.Username = DefaultActor
	}
	if last, ok := l.Latest(); ok && entry.Timestamp.Before(last.Timestamp) {
		entry.Timestamp = last.Timestamp
	}
	*l = append(*l, entry)
}

// Latest returns the most recently appended entry. ok is false only before
// the creation-time seed entry exists.
func (l Ledger) Latest() (HistoryEntry, bool) {
	if len(l) == 0 {
		return HistoryEntry{}, false
	}
	return l[len(l)-1], true
}
