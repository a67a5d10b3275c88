// Package xmldoc builds small XML request documents as an element tree.
// Children keep insertion order, which the payment APIs treat as significant.
package xmldoc

import (
	"bytes"
	"encoding/xml"
)

const Header = `<?xml version="1.0" encoding="utf-8"?>`

type Attr struct {
	Name  string
	Value string
}

type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

func New(name string) *Element {
	return &Element{Name: name}
}

func (e *Element) SetAttr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Add appends an empty child and returns it.
func (e *Element) Add(name string) *Element {
	c := New(name)
	e.Children = append(e.Children, c)
	return c
}

// AddText appends a text child and returns the receiver for chaining.
func (e *Element) AddText(name, text string) *Element {
	c := e.Add(name)
	c.Text = text
	return e
}

// AddTextIf is AddText skipped when text is empty.
func (e *Element) AddTextIf(name, text string) *Element {
	if text == "" {
		return e
	}
	return e.AddText(name, text)
}

func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns the first direct child with the name.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *Element) IsEmpty() bool {
	return e.Text == "" && len(e.Children) == 0
}

// Bytes renders the document with the XML declaration.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	e.write(&buf)
	return buf.Bytes()
}

func (e *Element) String() string {
	var buf bytes.Buffer
	e.write(&buf)
	return buf.String()
}

func (e *Element) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
	_ = xml.EscapeText(buf, []byte(e.Text))
	for _, c := range e.Children {
		c.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}
