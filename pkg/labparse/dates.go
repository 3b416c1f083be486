package labparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var filenameDateRe = regexp.MustCompile(`(\d{4}[-_.]\d{2}[-_.]\d{2})|(\d{2}[-_.]\d{2}[-_.]\d{4})`)

// ExtractTestDate finds the report date in OCR text, preferring collection
// dates over administrative ones. Returns nil when no labelled date exists.
func ExtractTestDate(text string) *time.Time {
	if text == "" {
		return nil
	}

	patterns := make([]DatePattern, len(DatePatterns))
	copy(patterns, DatePatterns)
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].Priority < patterns[j].Priority
	})

	for _, pattern := range patterns {
		match := pattern.Regex.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if date := parseDateString(strings.TrimSpace(match[1])); date != nil {
			return date
		}
	}
	return nil
}

// ExtractDateFromFilename falls back to a date embedded in the upload's
// filename, e.g. "labs_2024-03-15.pdf".
func ExtractDateFromFilename(filename string) *time.Time {
	match := filenameDateRe.FindString(filename)
	if match == "" {
		return nil
	}
	parts := regexp.MustCompile(`[-_.]`).Split(match, -1)
	if len(parts) != 3 {
		return nil
	}

	var year, month, day int
	var err error
	if len(parts[0]) == 4 { // YYYY-MM-DD
		year, err = strconv.Atoi(parts[0])
		if err != nil {
			return nil
		}
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[2])
	} else { // DD-MM-YYYY
		year, err = strconv.Atoi(parts[2])
		if err != nil {
			return nil
		}
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[0])
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &date
}

func parseDateString(dateStr string) *time.Time {
	if strings.Contains(dateStr, "/") {
		parts := strings.Split(dateStr, "/")
		if len(parts) != 3 {
			return nil
		}
		return buildNumericDate(parts)
	}

	if strings.Contains(dateStr, "-") {
		parts := strings.Split(dateStr, "-")
		if len(parts) != 3 {
			return nil
		}

		// DD-MMM-YYYY and YYYY-MMM-DD carry a month name in the middle
		if len(parts[1]) == 3 {
			if month, ok := monthAbbrev[strings.ToLower(parts[1])]; ok {
				if len(parts[0]) == 4 { // YYYY-MMM-DD
					year, err1 := strconv.Atoi(parts[0])
					day, err2 := strconv.Atoi(parts[2])
					if err1 != nil || err2 != nil {
						return nil
					}
					date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
					return &date
				}
				// DD-MMM-YYYY
				day, err1 := strconv.Atoi(parts[0])
				year, err2 := strconv.Atoi(parts[2])
				if err1 != nil || err2 != nil {
					return nil
				}
				date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				return &date
			}
		}

		return buildNumericDate(parts)
	}

	return nil
}

func buildNumericDate(parts []string) *time.Time {
	var year, month, day int
	var err error
	if len(parts[0]) == 4 { // YYYY-MM-DD
		year, err = strconv.Atoi(parts[0])
		if err != nil {
			return nil
		}
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[2])
	} else { // DD-MM-YYYY
		year, err = strconv.Atoi(parts[2])
		if err != nil {
			return nil
		}
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[0])
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &date
}
