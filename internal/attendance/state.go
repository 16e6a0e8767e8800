package attendance

// State is the complete, serializable state behind the attendance screen.
// Every user event and network completion maps to exactly one method.
//
// Both mutations are confirm-then-update: the collection changes only after
// the server has accepted a create or a delete. A failed create keeps the
// form open with the draft intact so it can be resubmitted.
type State struct {
	Records    []Record `json:"records"`
	SearchName string   `json:"searchName"`
	FilterDate string   `json:"filterDate"`
	Draft      Draft    `json:"draft"`
	FormOpen   bool     `json:"formOpen"`
}

// NewState returns the state of a freshly mounted screen.
func NewState() State {
	return State{Records: []Record{}}
}

// ReplaceRecords swaps the whole collection for a freshly loaded one.
func (s *State) ReplaceRecords(records []Record) {
	s.Records = append(make([]Record, 0, len(records)), records...)
}

// SetSearchName updates the member-name search string.
func (s *State) SetSearchName(value string) {
	s.SearchName = value
}

// SetFilterDate updates the YYYY-MM-DD date filter; empty disables it.
func (s *State) SetFilterDate(value string) {
	s.FilterDate = value
}

// OpenForm shows the add-attendance form. The existing draft is kept.
func (s *State) OpenForm() {
	s.FormOpen = true
}

// CancelForm hides the form without clearing the draft.
func (s *State) CancelForm() {
	s.FormOpen = false
}

// SetDraftField writes one form input into the draft.
func (s *State) SetDraftField(field DraftField, value string) {
	s.Draft = s.Draft.With(field, value)
}

// CanSubmit reports whether a create may be issued for the current draft.
func (s State) CanSubmit() bool {
	return s.Draft.Complete()
}

// ApplyCreated appends the server's record, resets the draft, and closes the form.
func (s *State) ApplyCreated(record Record) {
	s.Records = append(s.Records, record)
	s.Draft = Draft{}
	s.FormOpen = false
}

// ApplyDeleted removes every record carrying id, keeping the others in order.
func (s *State) ApplyDeleted(id string) {
	kept := make([]Record, 0, len(s.Records))
	for _, record := range s.Records {
		if record.ID == id {
			continue
		}
		kept = append(kept, record)
	}
	s.Records = kept
}

// Visible returns the records that pass the current search and date filter.
func (s State) Visible() []Record {
	return Filter(s.Records, s.SearchName, s.FilterDate)
}

// Summary returns per-date visit counts for the visible records.
func (s State) Summary() Summary {
	return Summarize(s.Visible())
}
