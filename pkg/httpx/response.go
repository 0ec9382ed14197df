package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// WriteJSON writes a JSON response with the given status code.
// Responses carry user data, so they are never cached.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard {"error","error_description"} body.
func WriteError(w http.ResponseWriter, code int, errCode, desc string) {
	WriteJSON(w, code, map[string]string{
		"error":             errCode,
		"error_description": desc,
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// FormString returns the trimmed form value.
func FormString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// FormBool treats "1", "true", "on" and "yes" as true, like an HTML checkbox.
func FormBool(r *http.Request, name string) bool {
	switch strings.ToLower(FormString(r, name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// FormFloat parses an optional float field. Empty gives (nil, nil).
func FormFloat(r *http.Request, name string) (*float64, error) {
	s := FormString(r, name)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
