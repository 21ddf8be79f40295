package version

import (
	"fmt"
	"runtime/debug"
)

// Заполняются при сборке:
//
//	go build -ldflags "-X goose-server/internal/version.Version=v1.2.0 -X goose-server/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   string
	Commit    string
	BuildDate string // YYYY-MM-DD (UTC)
)

// Info - сведения о сборке
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	Modified  bool
	GoVersion string
}

// Read собирает сведения: сначала ldflags, недостающее берется из метаданных VCS.
func Read() Info {
	info := Info{Version: Version, Commit: Commit, BuildDate: BuildDate}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	fillFromSettings(&info, bi.Settings)
	return info
}

func fillFromSettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" && len(s.Value) >= len("2006-01-02") {
				info.BuildDate = s.Value[:len("2006-01-02")]
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// String - строка для лога при старте
func (i Info) String() string {
	commit := coalesce(shortCommit(i.Commit), "unknown")
	if i.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("Golden Goose %s commit[%s] built[%s] %s",
		coalesce(i.Version, "dev"),
		commit,
		coalesce(i.BuildDate, "unknown"),
		i.GoVersion,
	)
}

// String - то же для текущей сборки
func String() string {
	return Read().String()
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
