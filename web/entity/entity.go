// Package entity defines the response shapes shared by the web layer.
package entity

// Page is the envelope returned by every list endpoint.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Detail is the single-message error body (not found, forbidden, ...).
type Detail struct {
	Detail string `json:"detail"`
}

// Token is the body of a successful token exchange.
type Token struct {
	Token string `json:"token"`
}

// FieldErrors maps a field name to its validation messages, mirroring the
// serializer-error shape the API has always spoken.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}
