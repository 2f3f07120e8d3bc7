package invoices

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Invoice numbers restart at 0001 for every user each year, so the
// unique constraint must span (user_id, number), not number alone.
func TestInvoiceNumberIsScopedToUser(t *testing.T) {
	s, err := schema.Parse(&Invoice{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse invoice schema: %v", err)
	}

	idx, ok := s.ParseIndexes()["idx_invoices_user_number"]
	if !ok {
		t.Fatal("idx_invoices_user_number index missing")
	}
	if idx.Class != "UNIQUE" {
		t.Fatalf("idx_invoices_user_number class = %q, want UNIQUE", idx.Class)
	}

	var cols []string
	for _, f := range idx.Fields {
		cols = append(cols, f.DBName)
	}
	if len(cols) != 2 || cols[0] != "user_id" || cols[1] != "number" {
		t.Fatalf("idx_invoices_user_number columns = %v, want [user_id number]", cols)
	}
}
