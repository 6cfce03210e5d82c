package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

var secretKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"x-api-key":     true,
	"token":         true,
	"secret":        true,
}

// queryKeyRe matches credentials passed as a URL query parameter, which
// net/http echoes back in transport errors.
var queryKeyRe = regexp.MustCompile(`([?&]key=)([^&\s"]+)`)

func RedactValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "bearer ") {
		return "Bearer " + mask(trimmed[7:])
	}
	return mask(trimmed)
}

// RedactText masks query-string credentials inside free text.
func RedactText(s string) string {
	return queryKeyRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := queryKeyRe.FindStringSubmatch(m)
		return parts[1] + mask(parts[2])
	})
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, RedactValue(a.Value.String()))
	}
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.Contains(s, "key=") {
			return slog.String(a.Key, RedactText(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, RedactText(err.Error()))
		}
	}
	return a
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
