// Package pdfinfo reads just enough PDF structure to report a document's
// page count. It walks the indirect objects in the file body, looking for
// the root of the page tree (/Type /Pages with no /Parent) and its /Count
// entry, falling back to counting /Type /Page objects.
//
// The probe is deliberately shallow: no stream decoding, no encryption
// handling, no object streams. Callers treat failure as "unknown", never
// as fatal — the whole point of screen capture is that the file may resist
// structural parsing.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// PageCount reports the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w", err)
	}
	return Count(data)
}

// Count reports the number of pages in a PDF held in memory.
func Count(data []byte) (int, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, errors.New("pdfinfo: missing PDF header")
	}

	rootCount := -1
	pageObjects := 0
	for _, d := range scanObjects(data) {
		typ, ok := d.name("Type")
		if !ok {
			continue
		}
		switch typ {
		case "Pages":
			if !d.has("Parent") {
				if n, ok := d.integer("Count"); ok && n > rootCount {
					rootCount = n
				}
			}
		case "Page":
			pageObjects++
		}
	}

	if rootCount >= 0 {
		return rootCount, nil
	}
	if pageObjects > 0 {
		return pageObjects, nil
	}
	return 0, errors.New("pdfinfo: no page tree found")
}

// scanObjects finds every "N G obj << ... >>" in the body and returns the
// parsed top-level dictionaries. Objects whose body is not a dictionary,
// and dictionaries packed inside object streams, are skipped.
func scanObjects(data []byte) []dict {
	var dicts []dict
	pos := 0
	for {
		i := bytes.Index(data[pos:], []byte("obj"))
		if i < 0 {
			return dicts
		}
		i += pos
		pos = i + 3

		// Must be the standalone keyword, not "endobj" or part of a name.
		if i > 0 && !isDelim(data[i-1]) {
			continue
		}
		if i+3 < len(data) && !isDelim(data[i+3]) {
			continue
		}

		lx := lexer{data: data, pos: i + 3}
		lx.skipSpace()
		if !lx.peek("<<") {
			continue
		}
		if d, err := lx.parseDict(); err == nil {
			dicts = append(dicts, d)
		}
	}
}

func isDelim(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0, '<', '>', '[', ']', '(', ')', '/', '%':
		return true
	}
	return false
}
