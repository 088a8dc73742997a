// Package buildinfo holds the version stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/go-sod/kdset/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/go-sod/kdset/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "strings"

const Name = "kdset"

const Banner = " _  __ ____   ____  _____ _____ \n| |/ /|  _ \\ / ___|| ____|_   _|\n| ' / | | | |\\___ \\|  _|   | |  \n| . \\ | |_| | ___) | |___  | |  \n|_|\\_\\|____/ |____/|_____| |_|  \n\n"

var (
	Version = "v0.0.0-dev"
	Commit  = ""
	Date    = ""
)

// String renders the name and version followed by whatever of commit and build date is known.
func String() string {
	var b strings.Builder
	b.WriteString(Name + " " + Version)
	var extra []string
	if Commit != "" {
		extra = append(extra, "commit "+Commit)
	}
	if Date != "" {
		extra = append(extra, "built "+Date)
	}
	if len(extra) > 0 {
		b.WriteString(" (" + strings.Join(extra, ", ") + ")")
	}
	return b.String()
}

func UserAgent() string {
	return Name + "/" + Version
}
