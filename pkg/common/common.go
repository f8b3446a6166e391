package common

import (
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

var (
	snowOnce sync.Once
	snowNode *snowflake.Node
)

// UUID returns a random RFC 4122 identifier.
func UUID() string {
	return uuid.NewString()
}

// UUIDint64 returns a time ordered numeric id for database rows.
func UUIDint64() int64 {
	snowOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		snowNode = node
	})
	return snowNode.Generate().Int64()
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// IfEmptyStr returns def when src is blank.
func IfEmptyStr(src string, def string) string {
	if strings.TrimSpace(src) == "" {
		return def
	}
	return src
}

// UniqueStrings returns the values in first-seen order with duplicates removed.
func UniqueStrings(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// ISOTime formats t in UTC with millisecond precision, e.g. 2025-09-05T12:00:00.000Z.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
