package version

import (
	"runtime/debug"
	"testing"
)

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "release",
			info: Info{Version: "v1.0.0", Commit: "0123456789abcdef", BuildDate: "2026-10-01", GoVersion: "go1.24.0"},
			want: "Golden Goose v1.0.0 commit[0123456] built[2026-10-01] go1.24.0",
		},
		{
			name: "local dirty",
			info: Info{Commit: "abc", Modified: true},
			want: "Golden Goose dev commit[abc+dirty] built[unknown] ",
		},
		{
			name: "nothing known",
			info: Info{},
			want: "Golden Goose dev commit[unknown] built[unknown] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFillFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "feedface"},
		{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	t.Run("fills empty", func(t *testing.T) {
		var info Info
		fillFromSettings(&info, settings)
		if info.Commit != "feedface" || info.BuildDate != "2026-09-30" || !info.Modified {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("ldflags win", func(t *testing.T) {
		info := Info{Commit: "cafe", BuildDate: "2026-01-01"}
		fillFromSettings(&info, settings)
		if info.Commit != "cafe" || info.BuildDate != "2026-01-01" {
			t.Errorf("ldflags values overwritten: %+v", info)
		}
	})
}
