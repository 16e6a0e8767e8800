package attendance

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewStateIsEmptyAndClosed(t *testing.T) {
	s := NewState()
	if len(s.Records) != 0 || s.FormOpen || s.SearchName != "" || s.FilterDate != "" {
		t.Fatalf("NewState() = %#v, want empty defaults", s)
	}
	if s.Draft != (Draft{}) {
		t.Fatalf("NewState().Draft = %#v, want empty", s.Draft)
	}
}

func TestStateCanSubmitRequiresEveryField(t *testing.T) {
	s := NewState()
	s.SetDraftField(FieldName, "Cara")
	s.SetDraftField(FieldDate, "2024-02-01")
	if s.CanSubmit() {
		t.Fatalf("CanSubmit() = true with empty time in")
	}

	s.SetDraftField(FieldTimeIn, "08:00")
	if !s.CanSubmit() {
		t.Fatalf("CanSubmit() = false with complete draft %#v", s.Draft)
	}

	s.SetDraftField(FieldName, "")
	if s.CanSubmit() {
		t.Fatalf("CanSubmit() = true with empty name")
	}
}

func TestStateApplyCreatedAppendsAndResets(t *testing.T) {
	s := NewState()
	s.ReplaceRecords(sampleRecords())
	s.OpenForm()
	s.Draft = Draft{Name: "Cara", Date: "2024-02-01", TimeIn: "08:00"}

	created := Record{ID: "99", Name: "Cara", Date: "2024-02-01", TimeIn: "08:00"}
	s.ApplyCreated(created)

	if len(s.Records) != len(sampleRecords())+1 {
		t.Fatalf("records len = %d, want %d", len(s.Records), len(sampleRecords())+1)
	}
	if last := s.Records[len(s.Records)-1]; last != created {
		t.Fatalf("last record = %#v, want %#v", last, created)
	}
	if s.Draft != (Draft{}) {
		t.Fatalf("draft = %#v, want empty", s.Draft)
	}
	if s.FormOpen {
		t.Fatalf("FormOpen = true after create")
	}
}

func TestStateCancelFormKeepsDraft(t *testing.T) {
	s := NewState()
	s.OpenForm()
	s.SetDraftField(FieldName, "Dan")

	s.CancelForm()
	if s.FormOpen {
		t.Fatalf("FormOpen = true after cancel")
	}
	if s.Draft.Name != "Dan" {
		t.Fatalf("draft name = %q, want %q", s.Draft.Name, "Dan")
	}

	s.OpenForm()
	if s.Draft.Name != "Dan" {
		t.Fatalf("draft name after reopen = %q, want %q", s.Draft.Name, "Dan")
	}
}

func TestStateApplyDeletedKeepsOrder(t *testing.T) {
	s := NewState()
	records := sampleRecords()
	records[1].ID = "7"
	s.ReplaceRecords(records)

	s.ApplyDeleted("7")

	if got, want := ids(s.Records), []string{"1", "3", "4"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ids after delete = %v, want %v", got, want)
	}
}

func TestStateReplaceRecordsCopiesInput(t *testing.T) {
	s := NewState()
	records := sampleRecords()
	s.ReplaceRecords(records)
	records[0].Name = "changed"

	if s.Records[0].Name != "Ann" {
		t.Fatalf("state aliased caller slice: %q", s.Records[0].Name)
	}
}

func TestStateVisibleAndSummaryFollowFilters(t *testing.T) {
	s := NewState()
	s.ReplaceRecords(sampleRecords())
	s.SetSearchName("an")
	s.SetFilterDate("2024-01-05")

	if got, want := ids(s.Visible()), []string{"1", "3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Visible() ids = %v, want %v", got, want)
	}
	want := Summary{{Date: "2024-01-05", Count: 2}}
	if got := s.Summary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Summary() = %#v, want %#v", got, want)
	}
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	s := NewState()
	s.ReplaceRecords(sampleRecords()[:1])
	s.SetSearchName("a")
	s.OpenForm()
	s.SetDraftField(FieldTimeIn, "09:00")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, s) {
		t.Fatalf("round trip = %#v, want %#v", back, s)
	}
}
