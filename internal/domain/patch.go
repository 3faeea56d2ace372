package domain

import "time"

// TicketPatch is an explicit partial update. A nil field is absent and leaves
// the ticket untouched; a non-nil field is present even when it holds the
// zero value. The engine's correctness depends on distinguishing absent from
// present-but-equal from present-and-different.
type TicketPatch struct {
	Status   *TicketStatus
	Remarks  *string
	Call     *CallType
	Type     *TicketType
	PartName *string
	Priority *TicketPriority

	// AssignedTo present with an empty value normalizes to AssignedToNone.
	AssignedTo *string
}

// PatchOutcome reports what ApplyPatch did.
type PatchOutcome struct {
	Changed         bool
	HistoryAppended bool
}

// ApplyPatch is the ticket update engine. It mutates current-state fields
// in place, and for the history-tracked fields (status, remarks) appends at
// most one ledger entry per call covering whichever of the two actually
// changed. A field equal to the current value is a no-op. The caller persists
// the mutated fields and the ledger append atomically.
func (t *Ticket) ApplyPatch(patch TicketPatch, actingUsername string, now time.Time) PatchOutcome {
	var outcome PatchOutcome

	historyChanges := false
	changedRemarks := ""

	if patch.Status != nil && *patch.Status != "" && t.Status != *patch.Status {
		t.Status = *patch.Status
		historyChanges = true
	}
	if patch.Remarks != nil && *patch.Remarks != "" && t.Remarks != *patch.Remarks {
		t.Remarks = *patch.Remarks
		changedRemarks = *patch.Remarks
		historyChanges = true
	}

	if patch.Call != nil && t.Call != *patch.Call {
		t.Call = *patch.Call
		outcome.Changed = true
	}
	if patch.Type != nil && *patch.Type != "" && t.Type != *patch.Type {
		t.Type = *patch.Type
		outcome.Changed = true
	}
	if patch.PartName != nil && *patch.PartName != "" && t.PartName != *patch.PartName {
		t.PartName = *patch.PartName
		outcome.Changed = true
	}
	if patch.Priority != nil && *patch.Priority != "" && t.Priority != *patch.Priority {
		t.Priority = *patch.Priority
		outcome.Changed = true
	}
	if patch.AssignedTo != nil {
		if next := NormalizeAssignee(*patch.AssignedTo); t.AssignedTo != next {
			t.AssignedTo = next
			outcome.Changed = true
		}
	}

	if historyChanges {
		// The entry always snapshots the current status; remarks are recorded
		// only when this call changed them, otherwise the ledger default
		// applies.
		t.History.Append(HistoryEntry{
			Status:    t.Status,
			Remarks:   changedRemarks,
			Username:  actingUsername,
			Timestamp: now,
		})
		outcome.Changed = true
		outcome.HistoryAppended = true
	}

	if outcome.Changed {
		t.UpdatedAt = now
	}
	return outcome
}

// Validate rejects patch fields outside their enumerations before the engine
// runs. It returns the offending field names.
func (p TicketPatch) Validate() []string {
	var bad []string
	if p.Status != nil && *p.Status != "" && !ValidStatus(*p.Status) {
		bad = append(bad, "status")
	}
	if p.Priority != nil && *p.Priority != "" && !ValidPriority(*p.Priority) {
		bad = append(bad, "priority")
	}
	if p.Call != nil && !ValidCall(*p.Call) {
		bad = append(bad, "call")
	}
	if p.Type != nil && *p.Type != "" && !ValidTicketType(*p.Type) {
		bad = append(bad, "type")
	}
	return bad
}
