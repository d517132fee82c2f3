package postgres

import (
	"fmt"
	"net/url"
)

// withDatabase rewrites a postgres:// connection URL to point at the given
// database. The rest of the URL (credentials, host, options) is untouched, so
// one base URL serves the central store and every tenant store.
func withDatabase(baseURL, dbname string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse postgres url: %w", err)
	}
	u.Path = "/" + dbname
	return u.String(), nil
}
