package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxText extracts the text of a DOCX file. DOCX is a zip container;
// the document body lives in word/document.xml and the visible text sits
// in w:t elements.
func docxText(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	var body *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%w: missing word/document.xml", ErrMalformedDocument)
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	defer rc.Close()
	return docxBodyText(rc), nil
}

func docxBodyText(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var buf bytes.Buffer
	atLineStart := true
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t", "instrText":
				var text string
				if err := dec.DecodeElement(&text, &t); err == nil {
					buf.WriteString(text)
					atLineStart = false
				}
			case "tab":
				buf.WriteByte('\t')
				atLineStart = false
			case "br", "cr":
				buf.WriteByte('\n')
				atLineStart = true
			}
		case xml.EndElement:
			// Paragraph ends become blank lines so the document's
			// paragraph structure survives into chunking; table rows
			// stay single line breaks.
			switch t.Name.Local {
			case "p":
				if !atLineStart {
					buf.WriteString("\n\n")
					atLineStart = true
				}
			case "tr":
				if !atLineStart {
					buf.WriteByte('\n')
					atLineStart = true
				}
			case "tc":
				if !atLineStart {
					buf.WriteByte('\t')
				}
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n\t ")
}
