package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// cookieFile maps an API base URL to the cookies its jar held after the
// last successful command.
type cookieFile map[string][]savedCookie

func loadCookies(path string) (cookieFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cookieFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	f := cookieFile{}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode cookie file %s: %w", path, err)
	}
	return f, nil
}

func (f cookieFile) get(api string) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(f[api]))
	for _, c := range f[api] {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	return out
}

func (f cookieFile) put(api string, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		delete(f, api)
		return
	}
	list := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		list = append(list, savedCookie{Name: c.Name, Value: c.Value})
	}
	f[api] = list
}

func (f cookieFile) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
