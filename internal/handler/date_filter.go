package handler

import (
	"net/http"
	"time"
)

// parseDateQuery reads an optional "2006-01-02" query parameter; a missing
// parameter yields (nil, nil).
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
