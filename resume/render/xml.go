package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// xmlNode names carry their prefix in Local ("w:p"); namespaces are declared
// once on the part root.
type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

func el(name string, children ...*xmlNode) *xmlNode {
	return &xmlNode{Name: xml.Name{Local: name}, Children: children}
}

func (n *xmlNode) attr(name, value string) *xmlNode {
	n.Attr = append(n.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

func (n *xmlNode) add(children ...*xmlNode) *xmlNode {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func textNode(text string) *xmlNode {
	return &xmlNode{IsText: true, Text: text}
}

// val builds an empty element with a single w:val attribute.
func val(name, value string) *xmlNode {
	return el(name).attr("w:val", value)
}

func encodeXMLPart(root *xmlNode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	encoder := xml.NewEncoder(&buf)
	if err := encodeXMLNode(encoder, root); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: node.Name, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}

// decodeXMLPart reads a part back into an xmlNode tree. Element names carry
// their resolved namespace in Space. A w: or r: prefix that was never declared
// is an error.
func decodeXMLPart(xmlText string) (*xmlNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var root *xmlNode
	var stack []*xmlNode
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse failed: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space == "w" || t.Name.Space == "r" {
				return nil, fmt.Errorf("undeclared namespace prefix on %s:%s", t.Name.Space, t.Name.Local)
			}
			node := &xmlNode{Name: t.Name, Attr: t.Attr}
			if len(stack) == 0 {
				root = node
			} else {
				stack[len(stack)-1].add(node)
			}
			stack = append(stack, node)
		case xml.CharData:
			if len(stack) > 0 && len(bytes.TrimSpace(t)) > 0 {
				stack[len(stack)-1].add(textNode(string(t)))
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty part")
	}
	return root, nil
}

// validateDocumentXML decodes word/document.xml and checks the shapes Word
// refuses to open: a paragraph inside another paragraph, and run properties
// following the run's text.
func validateDocumentXML(xmlText string) error {
	root, err := decodeXMLPart(xmlText)
	if err != nil {
		return fmt.Errorf("document.xml %w", err)
	}
	if err := checkWordNode(root, false); err != nil {
		return fmt.Errorf("document.xml %w", err)
	}
	return nil
}

func checkWordNode(node *xmlNode, inParagraph bool) error {
	if node.is("p") {
		if inParagraph {
			return fmt.Errorf("has nested <w:p>")
		}
		inParagraph = true
	}
	if node.is("r") {
		seenText := false
		for _, child := range node.Children {
			switch {
			case child.is("t"):
				seenText = true
			case child.is("rPr") && seenText:
				return fmt.Errorf("has <w:rPr> after <w:t> in a run")
			}
		}
	}
	for _, child := range node.Children {
		if err := checkWordNode(child, inParagraph); err != nil {
			return err
		}
	}
	return nil
}

func (n *xmlNode) is(local string) bool {
	return !n.IsText && n.Name.Space == wmlNamespace && n.Name.Local == local
}
