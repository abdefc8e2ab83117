package ocp

import "testing"

func TestELVersionInRelease(t *testing.T) {
	tests := []struct {
		release string
		want    int
		found   bool
	}{
		{"202310271500.p0.g1234567.assembly.stream.el8", 8, true},
		{"1.el9.2", 9, true},
		{"2.el7", 7, true},
		{"202310271500.p0.g1234567", 0, false},
		{"elephant.1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, found := ELVersionInRelease(tt.release)
		if got != tt.want || found != tt.found {
			t.Errorf("ELVersionInRelease(%q) = (%v, %v), want (%v, %v)",
				tt.release, got, found, tt.want, tt.found)
		}
	}
}

func TestELVersionInBranch(t *testing.T) {
	tests := []struct {
		branch string
		want   int
		found  bool
	}{
		{"rhaos-4.14-rhel-8", 8, true},
		{"rhel-9-candidate", 9, true},
		{"rhaos-4.14", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, found := ELVersionInBranch(tt.branch)
		if got != tt.want || found != tt.found {
			t.Errorf("ELVersionInBranch(%q) = (%v, %v), want (%v, %v)",
				tt.branch, got, found, tt.want, tt.found)
		}
	}
}

func TestParseGroup(t *testing.T) {
	major, minor, err := ParseGroup("openshift-4.12")
	if err != nil {
		t.Fatalf("ParseGroup() error = %v", err)
	}
	if major != 4 || minor != 12 {
		t.Errorf("ParseGroup() = (%v, %v), want (4, 12)", major, minor)
	}
}

func TestParseGroup_Invalid(t *testing.T) {
	tests := []string{
		"openshift-4",
		"openshift-4.12.1",
		"origin-4.12",
		"",
	}

	for _, group := range tests {
		if _, _, err := ParseGroup(group); err == nil {
			t.Errorf("ParseGroup(%q) expected error, got nil", group)
		}
	}
}

func TestReleaseVersion(t *testing.T) {
	v, err := ReleaseVersion("4.15.0-rc.3")
	if err != nil {
		t.Fatalf("ReleaseVersion() error = %v", err)
	}
	if v.Major != 4 || v.Minor != 15 {
		t.Errorf("ReleaseVersion() = %v, want major 4 minor 15", v)
	}

	if _, err := ReleaseVersion("4.15"); err == nil {
		t.Error("ReleaseVersion(\"4.15\") expected error, got nil")
	}
}
