/*
 * Copyright (c) YugabyteDB, Inc.
 */

package templates

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
)

// basicFunctions are available to every output template. Sprig's generic
// functions are layered on top and win on name clashes.
var basicFunctions = template.FuncMap{
	"json": func(v interface{}) string {
		buf := &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		enc.Encode(v)
		return strings.TrimSpace(buf.String())
	},
	"pad":        padWithSpace,
	"truncate":   truncateWithLength,
	"humanBytes": humanBytes,
	"sinceUs":    sinceEpochMicros,
}

// HeaderFunctions replace basicFunctions while rendering the table header so
// that column names pass through unchanged
var HeaderFunctions = template.FuncMap{
	"json": func(v string) string {
		return v
	},
	"truncate": func(v string, _ int) string {
		return v
	},
	"humanBytes": func(v string) string {
		return v
	},
	"sinceUs": func(v string) string {
		return v
	},
}

// Parse creates a new anonymous template with the basic functions
// and parses the given format.
func Parse(format string) (*template.Template, error) {
	return NewParse("", format)
}

// New creates a new empty template with the provided tag and built-in
// template functions.
func New(tag string) *template.Template {
	return template.New(tag).Funcs(basicFunctions).Funcs(sprig.GenericFuncMap())
}

// NewParse creates a new tagged template with the basic functions
// and parses the given format.
func NewParse(tag, format string) (*template.Template, error) {
	return New(tag).Parse(format)
}

// padWithSpace adds whitespace to the input if the input is non-empty
func padWithSpace(source string, prefix, suffix int) string {
	if source == "" {
		return source
	}
	return strings.Repeat(" ", prefix) + source + strings.Repeat(" ", suffix)
}

// truncateWithLength truncates the source string up to the length provided by the input
func truncateWithLength(source string, length int) string {
	if len(source) < length {
		return source
	}
	return source[:length]
}

// humanBytes renders a byte count the way YugabyteDB Anywhere sizes are shown, e.g. 1.2 MB
func humanBytes(size float64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// sinceEpochMicros renders a microsecond epoch as a relative time, e.g. "3 seconds ago"
func sinceEpochMicros(us int64) string {
	if us <= 0 {
		return "-"
	}
	return humanize.Time(time.UnixMicro(us))
}
