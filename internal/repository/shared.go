package repository

// Pagination holds pagination parameters for listing entities. A zero value
// means "no paging": callers normalize before slicing.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

// Normalize clamps the page number to 1 and substitutes a default page size.
func (p *Pagination) Normalize(defaultSize int32) {
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
}

func (p *Pagination) Offset() int32 { return (p.PageNo - 1) * p.PageSize }

// FilterOrder carries a filter expression (see pkg/itemfilter) for list
// queries.
type FilterOrder struct {
	Filter string
}
