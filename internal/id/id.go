// Package id generates prefixed, URL-safe record identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefix identifies the kind of record an ID belongs to.
type Prefix string

// Record prefixes.
const (
	Bookmark   Prefix = "bm"
	Collection Prefix = "coll"
	Tag        Prefix = "tag"
	Transcript Prefix = "tr"
	Todo       Prefix = "todo"
	Token      Prefix = "tok"
)

// Generate creates an ID of the form "prefix-nanoid", e.g. "bm-V1StGXR8_Z5jdHi6B-myT".
// The NanoID part is 21 characters from the URL-safe alphabet.
func Generate(prefix Prefix) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return string(prefix) + "-" + nid, nil
}

// MustGenerate is like Generate but panics if the system has no entropy.
func MustGenerate(prefix Prefix) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// HasPrefix reports whether id was generated with prefix.
func HasPrefix(id string, prefix Prefix) bool {
	return strings.HasPrefix(id, string(prefix)+"-")
}
