// Package format holds display helpers shared by the CLIs.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Title renders an identifier-ish value ("pending", "premium plan") the
// way a human would read it.
func Title(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// Money renders an amount with its currency code, trimming trailing
// zeroes the server is inconsistent about.
func Money(amount float64, currency string) string {
	s := humanize.CommafWithDigits(amount, 2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Posted renders a job's creation time relative to now, matching the
// listing's "posted N days ago" phrasing.
func Posted(t time.Time) string {
	if t.IsZero() {
		return "recently"
	}
	return humanize.Time(t)
}

// Count renders a counter with a singular/plural noun.
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
