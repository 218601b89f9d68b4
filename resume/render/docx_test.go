package render

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"resume-builder/resume/style"
)

func TestRenderResumeProducesValidPackage(t *testing.T) {
	data, err := RenderResume(janeDoe(), style.Default())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml", "word/numbering.xml", "word/_rels/document.xml.rels"} {
		if !names[want] {
			t.Fatalf("missing part %s", want)
		}
	}

	documentXML, err := ReadDocumentXML(data)
	if err != nil {
		t.Fatalf("read document.xml failed: %v", err)
	}
	if err := validateDocumentXML(documentXML); err != nil {
		t.Fatalf("document validation failed: %v", err)
	}
	assertContains(t, documentXML, `<w:color w:val="002060">`)
	assertContains(t, documentXML, `<w:sz w:val="36">`)
	assertContains(t, documentXML, `<w:jc w:val="center">`)
	assertContains(t, documentXML, `<w:pStyle w:val="ListBullet">`)
}

func TestRenderResumePlainTextOrder(t *testing.T) {
	data, err := RenderResume(janeDoe(), style.Default())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	text, err := PlainText(data)
	if err != nil {
		t.Fatalf("plain text failed: %v", err)
	}

	want := strings.Join([]string{
		"JANE DOE",
		"jane@example.com | 555-0100 | Austin, TX",
		"",
		"Professional Summary",
		"Backend engineer.",
		"Technical & Soft Skills",
		"Technical Skills: Go, PostgreSQL",
		"Soft Skills: Mentoring",
		"Professional Experience",
		"Acme",
		"Senior Engineer | 2020 - Present",
		"Led the billing rewrite.",
	}, "\n")
	if text != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", text, want)
	}
}

func TestRenderResumeIsDeterministic(t *testing.T) {
	first, err := RenderResume(janeDoe(), style.Default())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := RenderResume(janeDoe(), style.Default())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestStylesCarryFontFamily(t *testing.T) {
	st, err := style.Resolve(style.Config{FontFamily: "Garamond"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	data, err := RenderResume(janeDoe(), st)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/styles.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open styles: %v", err)
		}
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(rc)
		rc.Close()
		assertContains(t, buf.String(), `w:ascii="Garamond"`)
		assertContains(t, buf.String(), `w:styleId="Normal"`)
		return
	}
	t.Fatalf("styles.xml not found")
}

func TestEncodeEscapesText(t *testing.T) {
	resume := janeDoe()
	resume.Summary = "R&D <lead>"
	data, err := RenderResume(resume, style.Default())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	documentXML, err := ReadDocumentXML(data)
	if err != nil {
		t.Fatalf("read document.xml failed: %v", err)
	}
	assertContains(t, documentXML, "R&amp;D &lt;lead&gt;")
}

func TestValidateDocumentXML(t *testing.T) {
	wrap := func(body string) string {
		return `<w:document xmlns:w="` + wmlNamespace + `"><w:body>` + body + `</w:body></w:document>`
	}
	tests := []struct {
		name    string
		xml     string
		wantErr string
	}{
		{name: "valid run", xml: wrap(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>x</w:t></w:r></w:p>`)},
		{name: "nested paragraph", xml: wrap(`<w:p><w:p></w:p></w:p>`), wantErr: "nested <w:p>"},
		{name: "paragraph nested deeper", xml: wrap(`<w:p><w:r><w:p/></w:r></w:p>`), wantErr: "nested <w:p>"},
		{name: "rPr after text", xml: wrap(`<w:p><w:r><w:t>x</w:t><w:rPr/></w:r></w:p>`), wantErr: "<w:rPr> after <w:t>"},
		{name: "undeclared prefix", xml: `<w:document><w:body/></w:document>`, wantErr: "undeclared namespace"},
		{name: "syntax error", xml: `<w:document xmlns:w="` + wmlNamespace + `"><w:body>`, wantErr: "parse failed"},
		{name: "empty", xml: ``, wantErr: "empty part"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := validateDocumentXML(tt.xml)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeXMLPartRoundTripsEncodedTree(t *testing.T) {
	root := el("w:document").attr("xmlns:w", wmlNamespace).add(
		el("w:body", el("w:p", el("w:r", el("w:t", textNode("hello"))))),
	)
	data, err := encodeXMLPart(root)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeXMLPart(string(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	text := decoded.Children[0].Children[0].Children[0].Children[0].Children[0]
	if !decoded.is("document") || !text.IsText || text.Text != "hello" {
		t.Fatalf("unexpected tree: %+v", decoded)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q", needle)
	}
}
