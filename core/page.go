package core

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Property  string
	Direction Direction
}

// Pageable is a zero based page request. A nil *Pageable means "everything, unordered".
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func NewPageable(page, size int, sort ...Order) *Pageable {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// keeps Offset from overflowing
	if page > math.MaxInt32/size {
		page = math.MaxInt32 / size
	}
	return &Pageable{Page: page, Size: size, Sort: sort}
}

func (p *Pageable) Offset() int {
	return p.Page * p.Size
}

// OrderBy renders the sort of the page as an ORDER BY list using the given
// property to column mapping. Unknown properties are rejected so that caller
// input never reaches the SQL text.
func (p *Pageable) OrderBy(columns map[string]string) (string, error) {
	if p == nil || len(p.Sort) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(p.Sort))
	for _, o := range p.Sort {
		column, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: unknown sort property %q", ErrInvalidInput, o.Property)
		}
		dir := Asc
		if strings.EqualFold(string(o.Direction), string(Desc)) {
			dir = Desc
		}
		parts = append(parts, column+" "+string(dir))
	}

	return strings.Join(parts, ", "), nil
}

// TotalPages returns the number of pages needed to hold total elements.
func (p *Pageable) TotalPages(total int64) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
