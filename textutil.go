package main

import (
	"os"
	"strings"

	"yashubustudio/ppinet/ppinet"
)

func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return ppinet.NormalizeText(s)
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
