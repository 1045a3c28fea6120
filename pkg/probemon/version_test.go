package probemon

import "testing"

func TestIsVersionCompatible(t *testing.T) {
	tests := []struct {
		version, min string
		want         bool
	}{
		{"1.1.0", "1.1.0", true},
		{"1.2.0", "1.1.9", true},
		{"2.0.0", "1.9.9", true},
		{"1.0.9", "1.1.0", false},
		{"1.1.0", "2.0.0", false},
	}

	for _, tt := range tests {
		if got := isVersionCompatible(tt.version, tt.min); got != tt.want {
			t.Errorf("isVersionCompatible(%q, %q) = %v, want %v", tt.version, tt.min, got, tt.want)
		}
	}
}

func TestValidateModuleVersions(t *testing.T) {
	if err := validateModuleVersions(); err != nil {
		t.Fatalf("validateModuleVersions() = %v", err)
	}
	if v := ModuleVersions()["probemon"]; v != Version {
		t.Errorf("ModuleVersions()[probemon] = %q, want %q", v, Version)
	}
}
