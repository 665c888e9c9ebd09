// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Type returns the normalized file type for a filename: the lowercased
// extension without the leading dot. A filename without an extension
// yields an empty string.
func Type(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Supported reports whether an extractor is registered for the filename's
// extension.
func Supported(filename string) bool {
	switch Type(filename) {
	case "txt", "md", "text", "html", "htm", "pdf", "docx":
		return true
	}
	return false
}

// Text extracts plain text from raw file data, dispatching on the
// filename's extension. Returns ErrUnsupportedType for extensions with no
// extractor.
func Text(filename string, data []byte) (string, error) {
	switch fileType := Type(filename); fileType {
	case "txt", "md", "text":
		return string(data), nil
	case "html", "htm":
		return htmlText(data)
	case "pdf":
		return pdfText(data), nil
	case "docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, fileType)
	}
}

// File reads a file from disk and extracts its text.
func File(path string) (string, error) {
	if !Supported(path) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, Type(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Text(path, data)
}
