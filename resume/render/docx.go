package render

import (
	"archive/zip"
	"bytes"
	"strconv"
	"strings"
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/style"
)

// MimeDOCX is the content type of rendered resumes.
const MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	styleHeading = "Heading1"
	styleBullet  = "ListBullet"
	bulletNumID  = "1"
)

// zip entries get a fixed modification time so identical input yields identical bytes.
var zipModTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/><Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/></Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/></Relationships>`

// RenderResume builds and encodes a resume into DOCX bytes.
func RenderResume(resume model.ResumeData, st style.Resolved) ([]byte, error) {
	doc, err := Build(resume, st)
	if err != nil {
		return nil, err
	}
	return EncodeDOCX(doc)
}

// EncodeDOCX writes doc as a minimal WordprocessingML package.
func EncodeDOCX(doc Document) ([]byte, error) {
	documentXML, err := encodeXMLPart(documentNode(doc))
	if err != nil {
		return nil, &RenderError{Section: "document", Err: err}
	}
	if err := validateDocumentXML(string(documentXML)); err != nil {
		return nil, &RenderError{Section: "document", Err: err}
	}
	stylesXML, err := encodeXMLPart(stylesNode(doc.FontFamily))
	if err != nil {
		return nil, &RenderError{Section: "styles", Err: err}
	}
	numberingXML, err := encodeXMLPart(numberingNode())
	if err != nil {
		return nil, &RenderError{Section: "numbering", Err: err}
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", documentXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		header := &zip.FileHeader{Name: part.name, Method: zip.Deflate, Modified: zipModTime}
		dst, err := writer.CreateHeader(header)
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write(part.content); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func documentNode(doc Document) *xmlNode {
	body := el("w:body")
	for _, block := range doc.Blocks {
		body.add(paragraphNode(block))
	}
	body.add(el("w:sectPr",
		el("w:pgSz").attr("w:w", "12240").attr("w:h", "15840"),
		el("w:pgMar").attr("w:top", "1080").attr("w:right", "1080").attr("w:bottom", "1080").attr("w:left", "1080"),
	))
	return el("w:document", body).
		attr("xmlns:w", wmlNamespace).
		attr("xmlns:r", relNamespace)
}

func paragraphNode(block Block) *xmlNode {
	p := el("w:p")
	pPr := el("w:pPr")
	switch block.Kind {
	case KindHeading:
		pPr.add(val("w:pStyle", styleHeading))
	case KindBullet:
		pPr.add(val("w:pStyle", styleBullet), el("w:numPr", val("w:ilvl", "0"), val("w:numId", bulletNumID)))
	}
	if block.Align == AlignCenter {
		pPr.add(val("w:jc", "center"))
	}
	if len(pPr.Children) > 0 {
		p.add(pPr)
	}
	for _, run := range block.Runs {
		p.add(runNode(run))
	}
	return p
}

func runNode(run Run) *xmlNode {
	r := el("w:r")
	rPr := el("w:rPr")
	if run.Bold {
		rPr.add(el("w:b"))
	}
	if run.Italic {
		rPr.add(el("w:i"))
	}
	if run.Color != nil {
		rPr.add(val("w:color", run.Color.Hex()))
	}
	if run.SizePt > 0 {
		halfPoints := strconv.Itoa(run.SizePt * 2)
		rPr.add(val("w:sz", halfPoints), val("w:szCs", halfPoints))
	}
	if len(rPr.Children) > 0 {
		r.add(rPr)
	}
	t := el("w:t", textNode(run.Text))
	if run.Text != strings.TrimSpace(run.Text) {
		t.attr("xml:space", "preserve")
	}
	return r.add(t)
}

func stylesNode(fontFamily string) *xmlNode {
	fonts := el("w:rFonts").
		attr("w:ascii", fontFamily).
		attr("w:hAnsi", fontFamily).
		attr("w:eastAsia", fontFamily).
		attr("w:cs", fontFamily)

	normal := el("w:style",
		val("w:name", "Normal"),
		el("w:qFormat"),
		el("w:rPr", fonts),
	).attr("w:type", "paragraph").attr("w:default", "1").attr("w:styleId", "Normal")

	heading := el("w:style",
		val("w:name", "heading 1"),
		val("w:basedOn", "Normal"),
		val("w:next", "Normal"),
		el("w:qFormat"),
		el("w:pPr", el("w:keepNext"), el("w:spacing").attr("w:before", "240").attr("w:after", "80")),
	).attr("w:type", "paragraph").attr("w:styleId", styleHeading)

	bullet := el("w:style",
		val("w:name", "List Bullet"),
		val("w:basedOn", "Normal"),
		el("w:pPr", el("w:numPr", val("w:numId", bulletNumID))),
	).attr("w:type", "paragraph").attr("w:styleId", styleBullet)

	return el("w:styles",
		el("w:docDefaults", el("w:rPrDefault", el("w:rPr", fonts))),
		normal,
		heading,
		bullet,
	).attr("xmlns:w", wmlNamespace)
}

func numberingNode() *xmlNode {
	level := el("w:lvl",
		val("w:start", "1"),
		val("w:numFmt", "bullet"),
		val("w:lvlText", "•"),
		val("w:lvlJc", "left"),
		el("w:pPr", el("w:ind").attr("w:left", "720").attr("w:hanging", "360")),
	).attr("w:ilvl", "0")

	abstract := el("w:abstractNum", level).attr("w:abstractNumId", "0")
	num := el("w:num", val("w:abstractNumId", "0")).attr("w:numId", bulletNumID)

	return el("w:numbering", abstract, num).attr("xmlns:w", wmlNamespace)
}
