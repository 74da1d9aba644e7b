package routes

import "testing"

// A booking keeps exactly one feedback row: the upsert must target the
// booking_id unique index and overwrite rating and comment rather than
// failing or doing nothing on conflict.
func TestFeedbackUpsertOverwritesExistingRow(t *testing.T) {
	uc := feedbackUpsertClause()

	if len(uc.Columns) != 1 || uc.Columns[0].Name != "booking_id" {
		t.Fatalf("conflict target = %+v, want booking_id", uc.Columns)
	}
	if uc.DoNothing {
		t.Fatal("conflict must overwrite, not be ignored")
	}

	updated := make(map[string]bool)
	for _, assignment := range uc.DoUpdates {
		updated[assignment.Column.Name] = true
	}
	for _, col := range []string{"rating", "comment"} {
		if !updated[col] {
			t.Errorf("second submission does not overwrite %s", col)
		}
	}
}
