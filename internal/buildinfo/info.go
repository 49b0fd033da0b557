package buildinfo

import "fmt"

var (
	Version    = "v0.1.0"
	CommitHash = "unknown"
)

const Service = "vouch"

type Info struct {
	About      string `json:"about,omitempty"`
	Service    string `json:"service,omitempty"`
	Version    string `json:"version,omitempty"`
	CommitHash string `json:"commit_hash,omitempty"`
}

func GetBuildInfo() Info {
	return Info{
		About:      "https://github.com/darmiel/vouch",
		Service:    Service,
		Version:    Version,
		CommitHash: CommitHash,
	}
}

// UserAgent identifies the vouch client in requests to a vouch server.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (commit=%s)", Service, Version, CommitHash)
}
