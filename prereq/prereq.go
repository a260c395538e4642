// Package prereq builds a course → prerequisites map from the registrar's
// course export CSV.
package prereq

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/use-agent/clubfeed/models"
)

// Column positions in the course export, zero-based.
const (
	colSubject      = 1
	colNumber       = 2
	colPrerequisite = 15
)

// coursePattern matches "CSC 210", "MCB181R" and slashed pairs like
// "CMM 456/567".
var coursePattern = regexp.MustCompile(`\b([A-Z]{2,4})\s*(\d{3}[A-Z]?)(?:/(\d{3}[A-Z]?))?\b`)

// Map is course code → prerequisites.
type Map map[string][]string

// Courses returns the course codes in sorted order.
func (m Map) Courses() []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Lookup finds a course ignoring case and surrounding space.
func (m Map) Lookup(course string) (string, []string, error) {
	course = strings.TrimSpace(course)
	if course == "" {
		return "", nil, models.NewScrapeError(models.ErrCodeInvalidInput, "course is required", nil)
	}
	if reqs, ok := m[course]; ok {
		return course, reqs, nil
	}
	for code, reqs := range m {
		if strings.EqualFold(code, course) {
			return code, reqs, nil
		}
	}
	return "", nil, ErrNotFound
}

// ErrNotFound is returned by Lookup for an unknown course.
var ErrNotFound = errors.New("course not found")

// Extract returns the course codes named in text. Slashed numbers share
// the prefix before them. Text with no course code is returned whole,
// trimmed, as the only entry.
func Extract(text string) []string {
	var courses []string
	for _, m := range coursePattern.FindAllStringSubmatch(text, -1) {
		courses = append(courses, m[1]+" "+m[2])
		if m[3] != "" {
			courses = append(courses, m[1]+" "+m[3])
		}
	}
	if len(courses) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return courses
}

// Read parses a course export. The first non-empty row is the header.
// Rows with fewer than two columns are ignored and the first row for a
// course wins.
func Read(r io.Reader) (Map, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make(Map)
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "malformed course export", err)
		}
		if isEmpty(row) {
			continue
		}
		if header {
			header = false
			continue
		}
		if len(row) <= colSubject {
			continue
		}

		code := row[colSubject] + " " + field(row, colNumber)
		if _, seen := out[code]; seen {
			continue
		}
		out[code] = Extract(field(row, colPrerequisite))
	}
	return out, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "failed to open course export", err)
	}
	defer f.Close()
	return Read(f)
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isEmpty reports a blank line. encoding/csv already drops truly empty
// lines, but a line of bare commas still yields empty fields.
func isEmpty(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
