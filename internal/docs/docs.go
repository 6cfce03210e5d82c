// Package docs holds the articles shown by `code2tutorial docs`.
package docs

import (
	"fmt"
	"strings"
)

// Topic is one documentation article.
type Topic struct {
	Name    string // argument to `code2tutorial docs`
	Title   string
	Summary string // shown in the topic list
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Names returns the topic names in display order.
func Names() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// Get looks up a topic by name.
func Get(name string) (Topic, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range topics {
		if t.Name == key {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q (available: %s)", name, strings.Join(Names(), ", "))
}
