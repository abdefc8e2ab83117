package ocp

import "testing"

func TestParseFreeze(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want FreezeState
	}{
		{"absent", "arches: [x86_64]\n", FreezeNone},
		{"quoted yes", "freeze_automation: \"yes\"\n", FreezeAll},
		{"capital true string", "freeze_automation: \"True\"\n", FreezeAll},
		{"bare bool", "freeze_automation: true\n", FreezeAll},
		{"bare false", "freeze_automation: false\n", FreezeNone},
		{"no", "freeze_automation: \"no\"\n", FreezeNone},
		{"scheduled", "freeze_automation: scheduled\n", FreezeScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFreeze([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseFreeze() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFreeze() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFreeze_UnrecognizedValue(t *testing.T) {
	// a typo must not silently unfreeze the stream
	_, err := ParseFreeze([]byte("freeze_automation: schedulde\n"))
	if err == nil {
		t.Error("ParseFreeze() expected error for unrecognized value, got nil")
	}
}

func TestParseFreeze_InvalidYAML(t *testing.T) {
	_, err := ParseFreeze([]byte("freeze_automation: [unclosed\n"))
	if err == nil {
		t.Error("ParseFreeze() expected error for invalid YAML, got nil")
	}
}

func TestBuildPermitted(t *testing.T) {
	tests := []struct {
		state     FreezeState
		scheduled bool
		want      bool
	}{
		{FreezeNone, false, true},
		{FreezeNone, true, true},
		{FreezeAll, false, false},
		{FreezeAll, true, false},
		{FreezeScheduled, false, false},
		{FreezeScheduled, true, true},
	}

	for _, tt := range tests {
		if got := BuildPermitted(tt.state, tt.scheduled); got != tt.want {
			t.Errorf("BuildPermitted(%v, scheduled=%v) = %v, want %v",
				tt.state, tt.scheduled, got, tt.want)
		}
	}
}
