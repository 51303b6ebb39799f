package id_test

import (
	"strings"
	"testing"

	"github.com/portier-io/portier/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"PoleID", id.NewPoleID, "pole_"},
		{"DirectionID", id.NewDirectionID, "dir_"},
		{"ServiceID", id.NewServiceID, "svc_"},
		{"ProjectID", id.NewProjectID, "proj_"},
		{"UserID", id.NewUserID, "user_"},
		{"DirectAssignmentID", id.NewDirectAssignmentID, "dasgn_"},
		{"PathAssignmentID", id.NewPathAssignmentID, "pasgn_"},
		{"DecisionLogID", id.NewDecisionLogID, "declog_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixPole)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixPole {
		t.Errorf("expected prefix %q, got %q", id.PrefixPole, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"PoleID", id.NewPoleID, id.ParsePoleID},
		{"DirectionID", id.NewDirectionID, id.ParseDirectionID},
		{"ServiceID", id.NewServiceID, id.ParseServiceID},
		{"ProjectID", id.NewProjectID, id.ParseProjectID},
		{"UserID", id.NewUserID, id.ParseUserID},
		{"DirectAssignmentID", id.NewDirectAssignmentID, id.ParseDirectAssignmentID},
		{"PathAssignmentID", id.NewPathAssignmentID, id.ParsePathAssignmentID},
		{"DecisionLogID", id.NewDecisionLogID, id.ParseDecisionLogID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParsePoleID rejects dir_", id.NewDirectionID().String(), id.ParsePoleID},
		{"ParseDirectionID rejects svc_", id.NewServiceID().String(), id.ParseDirectionID},
		{"ParseServiceID rejects proj_", id.NewProjectID().String(), id.ParseServiceID},
		{"ParseProjectID rejects user_", id.NewUserID().String(), id.ParseProjectID},
		{"ParseUserID rejects dasgn_", id.NewDirectAssignmentID().String(), id.ParseUserID},
		{"ParseDirectAssignmentID rejects pasgn_", id.NewPathAssignmentID().String(), id.ParseDirectAssignmentID},
		{"ParsePathAssignmentID rejects declog_", id.NewDecisionLogID().String(), id.ParsePathAssignmentID},
		{"ParseDecisionLogID rejects pole_", id.NewPoleID().String(), id.ParseDecisionLogID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseAny(t *testing.T) {
	ids := []id.ID{
		id.NewPoleID(),
		id.NewDirectionID(),
		id.NewServiceID(),
		id.NewProjectID(),
		id.NewUserID(),
		id.NewDirectAssignmentID(),
		id.NewPathAssignmentID(),
		id.NewDecisionLogID(),
	}

	for _, i := range ids {
		t.Run(i.String(), func(t *testing.T) {
			parsed, err := id.ParseAny(i.String())
			if err != nil {
				t.Fatalf("ParseAny(%q) failed: %v", i.String(), err)
			}
			if parsed.String() != i.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), i.String())
			}
		})
	}
}

func TestParseWithPrefix(t *testing.T) {
	i := id.NewPoleID()
	parsed, err := id.ParseWithPrefix(i.String(), id.PrefixPole)
	if err != nil {
		t.Fatalf("ParseWithPrefix failed: %v", err)
	}
	if parsed.String() != i.String() {
		t.Errorf("mismatch: %q != %q", parsed.String(), i.String())
	}

	_, err = id.ParseWithPrefix(i.String(), id.PrefixService)
	if err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := id.Parse("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewUserID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewProjectID()
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.ID
	if scanErr := scanned.Scan(val); scanErr != nil {
		t.Fatalf("Scan failed: %v", scanErr)
	}
	if scanned.String() != original.String() {
		t.Errorf("mismatch: %q != %q", scanned.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	val, err = nilID.Value()
	if err != nil {
		t.Fatalf("Value(nil) failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil value for nil ID, got %v", val)
	}

	var scanned2 id.ID
	if err := scanned2.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !scanned2.IsNil() {
		t.Error("expected nil after scan of nil")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewPoleID()
	b := id.NewPoleID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewPoleID() calls returned the same ID: %q", a.String())
	}
}
