package storage

import (
	"net/url"

	"boscoin.io/agora/lib/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage endpoint; `memory://` for an
// in-memory backend, `file:///path/to/db` for an on-disk one.
func NewConfigFromString(s string) (config *Config, err error) {
	var u *url.URL
	if u, err = url.Parse(s); err != nil {
		return
	}

	switch u.Scheme {
	case "memory", "file":
	default:
		err = errors.StorageCoreError.Clone().SetData("scheme", u.Scheme)
		return
	}

	config = &Config{
		Scheme: u.Scheme,
		Path:   u.Path,
	}

	return
}
