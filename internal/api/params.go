package api

import (
	"net/url"
	"strconv"
)

// Int returns a pointer to v, for optional numeric parameters.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional numeric parameters.
func Float(v float64) *float64 { return &v }

// query builds a url.Values, dropping unset parameters.
type query url.Values

func (q query) str(key, v string) query {
	if v != "" {
		url.Values(q).Set(key, v)
	}
	return q
}

func (q query) int(key string, v *int) query {
	if v != nil {
		url.Values(q).Set(key, strconv.Itoa(*v))
	}
	return q
}

func (q query) float(key string, v *float64) query {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return q
}

func (q query) values() url.Values {
	return url.Values(q)
}

func newQuery() query {
	return query(url.Values{})
}
