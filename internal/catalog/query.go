package catalog

import (
	"math"
	"strings"
)

// DefaultPageSize は1ページあたりの既定の件数です。
const DefaultPageSize = 10

// Page はページ分割の結果です。
type Page struct {
	Items       []Exercise
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
}

// Search は名前に term を含むレコードを元の順序のまま返します（大文字小文字は区別しません）。
// term が空なら入力をそのまま返します。
func Search(records []Exercise, term string) []Exercise {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	matches := make([]Exercise, 0)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			matches = append(matches, r)
		}
	}
	return matches
}

// Paginate は records を pageSize 件ずつに分け、requestedPage ページ目を返します。
// ページ番号は [1, TotalPages] に丸め、TotalPages は最低 1 です。
func Paginate(records []Exercise, pageSize, requestedPage int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	items := []Exercise{}
	if start < end {
		items = records[start:end]
	}

	return Page{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
	}
}

// ParsePage はクエリのページ番号を解釈します。
// 先頭の整数部分だけを読み（"2abc" は 2）、欠落・数値以外・0 以下は 1 です。
// 桁あふれは int の最大値になり、Paginate で丸められます。
func ParsePage(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	overflow := false
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			break
		}
		digits++
		if overflow {
			continue
		}
		d := int(ch - '0')
		if n > (math.MaxInt-d)/10 {
			overflow = true
			continue
		}
		n = n*10 + d
	}

	switch {
	case digits == 0 || negative:
		return 1
	case overflow:
		return math.MaxInt
	case n == 0:
		return 1
	default:
		return n
	}
}
