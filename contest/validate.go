// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/bokesys/models"
)

const maxTitleLength = 100

func checkName(name string, limit int, required bool) []string {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0 && required:
		return []string{"name is required"}
	case n > limit:
		return []string{fmt.Sprintf("name must be at most %d characters", limit)}
	}
	return nil
}

func checkURL(raw string) []string {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []string{"url must be an absolute http or https URL"}
	}
	return nil
}

func checkContent(content string, limit int) []string {
	n := utf8.RuneCountInString(content)
	switch {
	case n == 0:
		return []string{"content is required"}
	case n > limit:
		return []string{fmt.Sprintf("content must be at most %d characters", limit)}
	}
	return nil
}

// checkEntry validates the name/url/content triple shared by posts and comments.
func checkEntry(name, rawURL, content string, nameLimit, contentLimit int) error {
	var reasons []string
	reasons = append(reasons, checkName(name, nameLimit, true)...)
	reasons = append(reasons, checkURL(rawURL)...)
	reasons = append(reasons, checkContent(content, contentLimit)...)
	return invalid(reasons)
}

// checkTopic validates an operator-supplied topic before it is stored.
func checkTopic(t models.Topic) error {
	var reasons []string

	switch n := utf8.RuneCountInString(strings.TrimSpace(t.Title)); {
	case n == 0:
		reasons = append(reasons, "title is required")
	case n > maxTitleLength:
		reasons = append(reasons, fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}

	if t.Format != models.FormatPlain && t.Format != models.FormatLine {
		reasons = append(reasons, fmt.Sprintf("format must be %q or %q", models.FormatPlain, models.FormatLine))
	}

	schedule := []struct {
		name string
		at   *time.Time
	}{
		{"post_start", t.PostStart},
		{"post_end", t.PostEnd},
		{"vote_start", t.VoteStart},
		{"vote_end", t.VoteEnd},
		{"result_at", t.ResultAt},
	}
	prev := -1
	for i, s := range schedule {
		if s.at == nil {
			continue
		}
		if prev >= 0 && s.at.Before(*schedule[prev].at) {
			reasons = append(reasons, fmt.Sprintf("%s must not be before %s", s.name, schedule[prev].name))
		}
		prev = i
	}

	if !(t.PointA > t.PointB && t.PointB > t.PointC) {
		reasons = append(reasons, "points must satisfy point_a > point_b > point_c")
	}
	if t.LimitA < 0 || t.LimitB < 0 || t.LimitC < 0 {
		reasons = append(reasons, "limits must not be negative")
	}

	switch {
	case len(t.Image) > 0 && !slices.Contains(models.ImageFormats, t.ImageFormat):
		reasons = append(reasons, "image_format must be one of "+strings.Join(models.ImageFormats, ", "))
	case len(t.Image) == 0 && t.ImageFormat != "":
		reasons = append(reasons, "image_format given without an image")
	}

	return invalid(reasons)
}
