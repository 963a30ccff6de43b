package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", p.PageSize)
	}
}

func TestNormalizeCapsPageSize(t *testing.T) {
	p := Params{Page: 2, PageSize: 500}.Normalize()
	if p.PageSize != MaxPageSize {
		t.Fatalf("expected capped page size %d, got %d", MaxPageSize, p.PageSize)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 12}
	if got := p.Offset(); got != 24 {
		t.Fatalf("expected offset 24, got %d", got)
	}
	if got := p.Limit(); got != 12 {
		t.Fatalf("expected limit 12, got %d", got)
	}
}
