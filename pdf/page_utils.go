package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"file_tools/toolerr"

	"github.com/samber/lo"
)

// ParsePageSpecifier parses a page specification string and returns a sorted
// list of unique page numbers within 1..totalPages.
// Supports formats: "1", "1,3", "1-5", "1,3-5,7"
func ParsePageSpecifier(pages string, totalPages int) ([]int, error) {
	pages = strings.Join(strings.Fields(pages), "")
	if pages == "" {
		return nil, fmt.Errorf("empty page specification")
	}

	var pageList []int
	for _, part := range strings.Split(pages, ",") {
		if part == "" {
			return nil, fmt.Errorf("empty entry in page specification %q", pages)
		}
		if !strings.Contains(part, "-") {
			pageNum, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", part)
			}
			if err := ValidatePageNumbers([]int{pageNum}, totalPages); err != nil {
				return nil, err
			}
			pageList = append(pageList, pageNum)
			continue
		}

		// Range like "1-5"
		rangeParts := strings.Split(part, "-")
		if len(rangeParts) != 2 {
			return nil, fmt.Errorf("invalid range: %s", part)
		}
		start, err := strconv.Atoi(rangeParts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start page: %s", rangeParts[0])
		}
		end, err := strconv.Atoi(rangeParts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end page: %s", rangeParts[1])
		}
		if start > end {
			return nil, fmt.Errorf("invalid range: start > end (%d > %d)", start, end)
		}
		// bounds are checked before expanding so a huge range costs nothing
		if err := ValidatePageNumbers([]int{start, end}, totalPages); err != nil {
			return nil, err
		}
		pageList = append(pageList, lo.RangeFrom(start, end-start+1)...)
	}

	pageList = lo.Uniq(pageList)
	sort.Ints(pageList)
	return pageList, nil
}

// ValidatePageNumbers checks if all page numbers are valid for a given total number of pages
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, page := range pages {
		if page < 1 {
			return fmt.Errorf("page numbers must be positive, got %d", page)
		}
		if page > totalPages {
			return fmt.Errorf("page %d exceeds total pages (%d)", page, totalPages)
		}
	}
	return nil
}

// SelectPages resolves an optional page specification against a document of
// totalPages pages. An empty specification selects every page.
func SelectPages(spec string, totalPages int) ([]int, error) {
	const op = "pdf.SelectPages"
	if strings.TrimSpace(spec) == "" {
		return lo.RangeFrom(1, totalPages), nil
	}
	pages, err := ParsePageSpecifier(spec, totalPages)
	if err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	return pages, nil
}

// pageSelection converts page numbers to pdfcpu's selection syntax.
func pageSelection(pages []int) []string {
	return lo.Map(pages, func(p int, _ int) string {
		return strconv.Itoa(p)
	})
}
