package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile_PlainText(t *testing.T) {
	text, err := FromFile("cv.txt", []byte("  Senior Engineer  \r\n\n\n\n\nPython, AWS\n"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer\n\nPython, AWS", text)
}

func TestFromFile_Unsupported(t *testing.T) {
	_, err := FromFile("cv.odt", []byte("whatever"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFromFile_EmptyText(t *testing.T) {
	_, err := FromFile("cv.txt", []byte("   \n\t  "))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestFromFile_BinaryRejected(t *testing.T) {
	_, err := FromFile("cv.txt", []byte("%PDF-1.4 binary stuff"))
	assert.ErrorIs(t, err, ErrBinaryContent)
}

func TestFromFile_InvalidPDF(t *testing.T) {
	_, err := FromFile("cv.pdf", []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open pdf")
}

func TestFromFile_InvalidDOCX(t *testing.T) {
	_, err := FromFile("cv.docx", []byte("not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open docx")
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", false},
		{"plain", "hello world\nline two", false},
		{"pdf magic", "%PDF-1.7", true},
		{"zip magic", "PK\x03\x04", true},
		{"control bytes", strings.Repeat("\x01\x02", 20) + "ab", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBinary(tt.content))
		})
	}
}

func TestXMLToText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>R&amp;D</w:t><w:tab/><w:t>Lead</w:t></w:r></w:p></w:body>`
	got := CleanText(xmlToText(xml))
	assert.Equal(t, "Jane Doe\nR&D Lead", got)
}

func TestHTMLText_StripsScripts(t *testing.T) {
	page := `<html><head><style>body{color:red}</style><script>var x = 1;</script></head>
<body><h1>Backend Engineer</h1>
<p>We need   Go and
Kubernetes.</p><noscript>enable js</noscript></body></html>`

	text, err := HTMLText(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer We need Go and Kubernetes.", text)
}

func TestHTMLText_CollapsesNonBreakingSpaces(t *testing.T) {
	text, err := HTMLText(strings.NewReader("<p>Senior role: project&nbsp;management,&nbsp;&nbsp;5&nbsp;years experience</p>"))
	require.NoError(t, err)
	assert.Equal(t, "Senior role: project management, 5 years experience", text)
}

func TestHTMLText_Empty(t *testing.T) {
	_, err := HTMLText(strings.NewReader("<html><body><script>x()</script></body></html>"))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestURLFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>Data Engineer at Acme</p></body></html>"))
	}))
	defer srv.Close()

	f := NewURLFetcher(2 * time.Second)
	text, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer at Acme", text)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestURLFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewURLFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestURLFetcher_InvalidURL(t *testing.T) {
	f := NewURLFetcher(0)
	for _, raw := range []string{"", "ftp://example.com", "not a url", "http://"} {
		_, err := f.Fetch(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}
