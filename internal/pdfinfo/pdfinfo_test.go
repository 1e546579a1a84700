package pdfinfo

import (
	"os"
	"path/filepath"
	"testing"
)

const treePDF = `%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R 4 0 R 5 0 R] /Count 3 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>
endobj
4 0 obj
<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 6 0 R >> >> >>
endobj
5 0 obj
<< /Type /Page /Parent 2 0 R /Contents 7 0 R >>
endobj
trailer
<< /Size 8 /Root 1 0 R >>
%%EOF
`

func TestCount_PageTree(t *testing.T) {
	n, err := Count([]byte(treePDF))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestCount_IgnoresIntermediatePagesNodes(t *testing.T) {
	// A split page tree: the root carries the total, children carry
	// partial counts and must be skipped via their /Parent entry.
	doc := `%PDF-1.5
1 0 obj
<< /Type /Pages /Kids [2 0 R 3 0 R] /Count 4 >>
endobj
2 0 obj
<< /Type /Pages /Parent 1 0 R /Count 2 >>
endobj
3 0 obj
<< /Type /Pages /Parent 1 0 R /Count 2 >>
endobj
`
	n, err := Count([]byte(doc))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}
}

func TestCount_FallbackToPageObjects(t *testing.T) {
	doc := `%PDF-1.4
3 0 obj
<< /Type /Page /MediaBox [0 0 612 792] >>
endobj
4 0 obj
<< /Type /Page /Note (nested (parens) and \) escape) >>
endobj
`
	n, err := Count([]byte(doc))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestCount_MissingHeader(t *testing.T) {
	if _, err := Count([]byte("hello world")); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}

func TestCount_NoPages(t *testing.T) {
	doc := `%PDF-1.4
1 0 obj
<< /Type /Catalog >>
endobj
`
	if _, err := Count([]byte(doc)); err == nil {
		t.Fatal("expected error for document without a page tree")
	}
}

func TestCount_SurvivesMalformedObjects(t *testing.T) {
	// A broken dictionary mid-file must not hide the page tree that
	// follows it.
	doc := `%PDF-1.4
1 0 obj
<< /Broken
endobj
2 0 obj
<< /Type /Pages /Count 7 >>
endobj
`
	n, err := Count([]byte(doc))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 7 {
		t.Errorf("Count = %d, want 7", n)
	}
}

func TestPageCount_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte(treePDF), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := PageCount(path)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Errorf("PageCount = %d, want 3", n)
	}
}

func TestPageCount_MissingFile(t *testing.T) {
	if _, err := PageCount("/nonexistent/doc.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLexer_ValueKinds(t *testing.T) {
	doc := `1 0 obj
<< /Int 42 /Real 3.5 /Ref 9 0 R /Name /Foo /Hex <DEADBEEF> /Bool true /Null null /Arr [1 2 (three)] >>
endobj
`
	dicts := scanObjects([]byte(doc))
	if len(dicts) != 1 {
		t.Fatalf("scanned %d dicts, want 1", len(dicts))
	}
	d := dicts[0]
	if n, ok := d.integer("Int"); !ok || n != 42 {
		t.Errorf("Int = %d (%v), want 42", n, ok)
	}
	if name, ok := d.name("Name"); !ok || name != "Foo" {
		t.Errorf("Name = %q (%v), want Foo", name, ok)
	}
	if _, ok := d.integer("Ref"); ok {
		t.Error("reference must not read as an integer")
	}
	if !d.has("Arr") || !d.has("Null") || !d.has("Bool") || !d.has("Hex") {
		t.Error("missing parsed entries")
	}
}
