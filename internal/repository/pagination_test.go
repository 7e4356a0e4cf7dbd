package repository

import "testing"

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := PageSlice(items, PageRequest{Page: 2, PageSize: 2})
	if page.Total != 5 || page.TotalPages != 3 || len(page.Items) != 2 || page.Items[0] != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}

	last := PageSlice(items, PageRequest{Page: 3, PageSize: 2})
	if len(last.Items) != 1 || last.Items[0] != 5 {
		t.Fatalf("unexpected last page: %+v", last)
	}

	beyond := PageSlice(items, PageRequest{Page: 9, PageSize: 2})
	if len(beyond.Items) != 0 || beyond.Items == nil {
		t.Fatalf("expected empty non-nil items beyond range, got %+v", beyond)
	}

	defaults := PageSlice(items, PageRequest{PageSize: MaxPageSize + 50})
	if defaults.Page != DefaultPage || defaults.PageSize != MaxPageSize {
		t.Fatalf("expected normalized request, got page=%d size=%d", defaults.Page, defaults.PageSize)
	}
}
