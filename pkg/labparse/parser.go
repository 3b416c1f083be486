package labparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractedLabValue is one recognized test result from OCR text.
type ExtractedLabValue struct {
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	RawText        string  `json:"rawText"`
	ReferenceRange string  `json:"referenceRange,omitempty"`
	Confidence     float64 `json:"confidence"`
	MatchType      string  `json:"matchType"`
	Precision      int     `json:"-"`
}

// FormattedValue renders the value at the pattern's precision, matching how
// report summaries display it.
func (v ExtractedLabValue) FormattedValue() string {
	return strconv.FormatFloat(v.Value, 'f', v.Precision, 64)
}

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	rangeRe         = regexp.MustCompile(`(\d+\.?\d*)\s*[-–]\s*(\d+\.?\d*)`)
	numericTokenRe  = regexp.MustCompile(`^[\d.]+$`)
	rangeTokenRe    = regexp.MustCompile(`^\d+\.?\d*[-–]\d+\.?\d*$`)
	flagTokenRe     = regexp.MustCompile(`^[LEH]$`)
	testosteroneRef = regexp.MustCompile(`Testosterone.*?(\d+\.?\d*\s*[-–]\s*\d+\.?\d*)`)
)

// isReasonableValue rejects numbers no real result could have, which mostly
// filters OCR artifacts like phone numbers and accession IDs.
func isReasonableValue(value float64, testName string) bool {
	if value > 10000 {
		return false
	}
	switch {
	case strings.Contains(testName, "Testosterone") && (value < 0.1 || value > 50):
		return false
	case strings.Contains(testName, "Calcium") && (value < 0.5 || value > 5):
		return false
	case strings.Contains(testName, "Potassium") && (value < 0.5 || value > 10):
		return false
	}
	return true
}

// ParseLabValues extracts recognized lab test results from raw OCR text.
// Match strategies run in order of specificity: structured table rows first,
// then labelled RESULT sections, then the generic per-test patterns. A test
// already claimed by an earlier strategy is not overwritten.
func ParseLabValues(text string) map[string]ExtractedLabValue {
	results := make(map[string]ExtractedLabValue)
	normalizedText := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	lines := strings.Split(text, "\n")

	// Structured table header rows: "TEST NAME ... RESULT ... UNITS" with the
	// values on the following line.
	for i, line := range lines {
		if !strings.Contains(line, "TEST NAME") || !strings.Contains(line, "RESULT") || !strings.Contains(line, "UNITS") {
			continue
		}
		if i+1 >= len(lines) {
			continue
		}
		nextLine := lines[i+1]
		parts := strings.Fields(nextLine)
		if len(parts) < 2 {
			continue
		}

		testName := parts[0]
		var valueStr, refRange, unit string
		valueIdx := -1
		for idx, p := range parts {
			if valueStr == "" && numericTokenRe.MatchString(p) {
				valueStr = p
				valueIdx = idx
			}
			if refRange == "" && rangeTokenRe.MatchString(p) {
				refRange = p
			}
		}

		if valueStr == "" {
			continue
		}

		// The unit column is the first token after the value that is not a
		// number, a reference range, or a flag. Rows that end without a unit
		// column fall back to the registered unit for the test.
		for idx := valueIdx + 1; idx < len(parts); idx++ {
			p := parts[idx]
			if numericTokenRe.MatchString(p) || rangeTokenRe.MatchString(p) || flagTokenRe.MatchString(p) {
				continue
			}
			unit = p
			break
		}
		if unit == "" {
			if known, ok := LabPatterns[testName]; ok {
				unit = known.StandardUnit
			}
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil || !isReasonableValue(value, testName) {
			continue
		}

		results[testName] = ExtractedLabValue{
			Value:          value,
			Unit:           unit,
			RawText:        strings.TrimSpace(nextLine),
			ReferenceRange: refRange,
			Confidence:     1,
			MatchType:      "structured",
			Precision:      2,
		}
	}

	// Enhanced testosterone patterns.
	for testName, pattern := range EnhancedPatterns {
		match := pattern.Regex.FindStringSubmatch(normalizedText)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || !isReasonableValue(value, testName) {
			continue
		}

		refRange := ""
		if refMatch := testosteroneRef.FindStringSubmatch(normalizedText); refMatch != nil {
			refRange = refMatch[1]
		}

		results[testName] = ExtractedLabValue{
			Value:          value,
			Unit:           pattern.StandardUnit,
			RawText:        strings.TrimSpace(match[0]),
			ReferenceRange: refRange,
			Confidence:     1,
			MatchType:      "enhanced",
			Precision:      pattern.Precision,
		}
	}

	// Labelled RESULT sections.
	for testName, pattern := range StructuredTestPatterns {
		match := pattern.Regex.FindStringSubmatch(normalizedText)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || !isReasonableValue(value, testName) {
			continue
		}

		refRange := ""
		if pattern.ReferencePattern != nil {
			if refMatch := pattern.ReferencePattern.FindStringSubmatch(normalizedText); refMatch != nil {
				refRange = refMatch[1]
			}
		}

		results[testName] = ExtractedLabValue{
			Value:          value,
			Unit:           pattern.StandardUnit,
			RawText:        strings.TrimSpace(match[0]),
			ReferenceRange: refRange,
			Confidence:     1,
			MatchType:      "structured",
			Precision:      pattern.Precision,
		}
	}

	// Generic per-test patterns for anything not found yet.
	for testName, pattern := range LabPatterns {
		if _, found := results[testName]; found {
			continue
		}

		match := pattern.Regex.FindStringSubmatch(normalizedText)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || !isReasonableValue(value, testName) {
			continue
		}

		matchLine := ""
		lineIndex := -1
		for i, line := range lines {
			if strings.Contains(line, match[0]) {
				matchLine = line
				lineIndex = i
				break
			}
		}

		refRange := match[2]
		if refRange == "" && matchLine != "" {
			if refMatch := rangeRe.FindString(matchLine); refMatch != "" {
				refRange = refMatch
			}
		}

		// Some reports print the range on a neighbouring line.
		if refRange == "" && lineIndex >= 0 &&
			(strings.Contains(testName, "Testosterone") ||
				strings.Contains(testName, "TSH") ||
				strings.Contains(testName, "Creatinine")) {
			lo := lineIndex - 2
			if lo < 0 {
				lo = 0
			}
			hi := lineIndex + 2
			if hi > len(lines)-1 {
				hi = len(lines) - 1
			}
			for i := lo; i <= hi; i++ {
				if strings.Contains(lines[i], match[0]) {
					continue
				}
				if refMatch := rangeRe.FindString(lines[i]); refMatch != "" {
					refRange = refMatch
					break
				}
			}
		}

		results[testName] = ExtractedLabValue{
			Value:          value,
			Unit:           pattern.StandardUnit,
			RawText:        strings.TrimSpace(matchLine),
			ReferenceRange: refRange,
			Confidence:     1,
			MatchType:      "standard",
			Precision:      pattern.Precision,
		}
	}

	return results
}
