package api

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"invoice-service/core"
	"net/url"
	"strconv"
	"strings"
)

const TotalCountHeader = "X-Total-Count"

// ParsePageable reads page, size and sort (property[,asc|desc], repeatable) from the query.
func ParsePageable(c *gin.Context) (*core.Pageable, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return nil, err
	}
	size, err := queryInt(c, "size", core.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	var orders []core.Order
	for _, raw := range c.QueryArray("sort") {
		parts := strings.Split(raw, ",")
		o := core.Order{Property: strings.TrimSpace(parts[0]), Direction: core.Asc}
		if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			o.Direction = core.Desc
		}
		if o.Property != "" {
			orders = append(orders, o)
		}
	}

	return core.NewPageable(page, size, orders...), nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", core.ErrInvalidInput, key)
	}
	return v, nil
}

// SetPaginationHeaders writes X-Total-Count and an RFC 5988 Link header.
func SetPaginationHeaders(c *gin.Context, page *core.Pageable, total int64) {
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))

	u := *c.Request.URL
	lastPage := page.TotalPages(total) - 1
	if lastPage < 0 {
		lastPage = 0
	}

	var links []string
	if page.Page < lastPage {
		links = append(links, pageLink(u, page.Page+1, page.Size, "next"))
	}
	if page.Page > 0 {
		links = append(links, pageLink(u, page.Page-1, page.Size, "prev"))
	}
	links = append(links, pageLink(u, lastPage, page.Size, "last"))
	links = append(links, pageLink(u, 0, page.Size, "first"))

	c.Header("Link", strings.Join(links, ","))
}

func pageLink(u url.URL, page, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.RequestURI(), rel)
}
