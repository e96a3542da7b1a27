package player

import "testing"

func TestParsePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{in: "ATT", want: PositionAttacker},
		{in: "Attacker", want: PositionAttacker},
		{in: " goalkeeper ", want: PositionGoalkeeper},
		{in: "def", want: PositionDefender},
		{in: "Midfielder", want: PositionMidfielder},
		{in: "FWD", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParsePosition(%q) expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePosition(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePosition(%q)=%s want=%s", tt.in, got, tt.want)
		}
	}
}

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	valid := Player{ID: "p-1", Name: "Allejo", Position: PositionAttacker, Rating: 78, Age: 18, Value: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	negative := valid
	negative.Value = -1
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative value")
	}

	badPosition := valid
	badPosition.Position = "FWD"
	if err := badPosition.Validate(); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}
