package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNoText            = errors.New("no text content found")
	ErrBinaryContent     = errors.New("content appears to be binary")
)

const (
	binarySampleSize = 512
	binaryThreshold  = 0.3
)

var (
	xmlParagraphRe = regexp.MustCompile(`</w:p>`)
	xmlTabRe       = regexp.MustCompile(`<w:tab/>|<w:br/>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	blankLinesRe   = regexp.MustCompile(`\n{3,}`)
)

// FromFile extrae texto según la extensión del nombre de archivo.
func FromFile(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		text, err = PDF(data)
	case ".docx":
		text, err = DOCX(data)
	case ".txt", ".md", "":
		text, err = Plain(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// Plain acepta texto UTF-8 y rechaza contenido binario.
func Plain(data []byte) (string, error) {
	content := string(data)
	if IsBinary(content) {
		return "", ErrBinaryContent
	}
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrNoText
	}
	return content, nil
}

// PDF concatena el texto plano de cada página; las páginas ilegibles se saltean.
func PDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrNoText
	}
	return sb.String(), nil
}

// DOCX lee document.xml y lo reduce a texto.
func DOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	text := xmlToText(r.Editable().GetContent())
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func xmlToText(xml string) string {
	s := xmlParagraphRe.ReplaceAllString(xml, "\n")
	s = xmlTabRe.ReplaceAllString(s, " ")
	s = xmlTagRe.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// IsBinary detecta PDF/ZIP por magic number o una proporción alta de bytes de control.
func IsBinary(content string) bool {
	if content == "" {
		return false
	}
	if strings.HasPrefix(content, "%PDF-") || strings.HasPrefix(content, "PK") {
		return true
	}
	sample := min(binarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sample; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(sample) > binaryThreshold
}

// CleanText recorta cada línea y colapsa bloques de líneas vacías.
func CleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out := strings.Join(lines, "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
