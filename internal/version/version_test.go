package version

import "testing"

func TestGetVersionDefaultsToDev(t *testing.T) {
	if Version != "dev" {
		t.Skip("Version overridden by build flags")
	}
	if got := GetVersion(); got == "" {
		t.Fatal("expected a non-empty version string")
	}
}

func TestGetBuildInfoPopulatesRuntimeFields(t *testing.T) {
	info := GetBuildInfo()
	if info.GoVersion == "" {
		t.Fatal("expected GoVersion to be populated")
	}
	if info.Platform == "" || info.Arch == "" {
		t.Fatal("expected Platform and Arch to be populated")
	}
}

func TestGetDetailedVersionIncludesVersionString(t *testing.T) {
	detailed := GetDetailedVersion()
	if len(detailed) == 0 {
		t.Fatal("expected non-empty detailed version string")
	}
}
