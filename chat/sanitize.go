package chat

import "strings"

// Rule is one step of the reply sanitizer
type Rule struct {
	Name  string
	Apply func(string) string
}

// Rules run in order over every generated reply
var Rules = []Rule{
	{Name: "strip-bold", Apply: func(s string) string { return strings.ReplaceAll(s, "**", "") }},
	{Name: "open-bracket", Apply: func(s string) string { return strings.ReplaceAll(s, "[", "<b>") }},
	{Name: "close-bracket", Apply: func(s string) string { return strings.ReplaceAll(s, "]", "</b>") }},
	{Name: "trim", Apply: strings.TrimSpace},
}

// Sanitize applies every rule to a generated reply
func Sanitize(reply string) string {
	for _, r := range Rules {
		reply = r.Apply(reply)
	}
	return reply
}
