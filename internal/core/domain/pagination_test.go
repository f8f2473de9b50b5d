package domain

import "testing"

func TestPagination_Normalized(t *testing.T) {
	p := Pagination{}.Normalized()
	if p.Page != DefaultPage || p.PerPage != DefaultPerPage {
		t.Errorf("zero cursor must lift to defaults, got %+v", p)
	}

	p = Pagination{Page: 3, PerPage: 10}.Normalized()
	if p.Page != 3 || p.PerPage != 10 {
		t.Errorf("valid cursor must pass through, got %+v", p)
	}
}

func TestPagination_TotalPages(t *testing.T) {
	cases := []struct {
		perPage uint32
		count   uint32
		want    uint32
	}{
		{10, 0, 1},
		{10, 1, 1},
		{10, 10, 1},
		{10, 11, 2},
		{3, 10, 4},
		{1, 365, 365},
	}
	for _, tc := range cases {
		p := Pagination{Page: 1, PerPage: tc.perPage}
		if got := p.TotalPages(tc.count); got != tc.want {
			t.Errorf("perPage=%d count=%d: expected %d pages, got %d", tc.perPage, tc.count, tc.want, got)
		}
	}
}

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		name    string
		current uint32
		total   uint32
		want    PageInfo
	}{
		{"middle", 3, 5, PageInfo{Current: 3, First: 1, Prev: 2, Next: 4, Last: 5}},
		{"first", 1, 5, PageInfo{Current: 1, First: 1, Prev: 1, Next: 2, Last: 5}},
		{"last", 5, 5, PageInfo{Current: 5, First: 1, Prev: 4, Next: 5, Last: 5}},
		{"single", 1, 1, PageInfo{Current: 1, First: 1, Prev: 1, Next: 1, Last: 1}},
		{"beyond echoes request", 99, 2, PageInfo{Current: 99, First: 1, Prev: 2, Next: 2, Last: 2}},
		{"zero total lifts to one", 1, 0, PageInfo{Current: 1, First: 1, Prev: 1, Next: 1, Last: 1}},
	}
	for _, tc := range cases {
		if got := NewPageInfo(tc.current, tc.total); got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}
