// Package xmlplist is the XML-fallback collaborator named in the decoder
// spec's dispatcher component. Its contract, per that spec, is narrow:
// bytes in, a generic value tree out, or an error — the decoder treats it
// as an opaque external parser and never inspects its internals. This
// package is adapted from the teacher library's own xmlPlistParser, pared
// down to exactly that contract: no struct-unmarshal support, no OpenStep
// or GNUstep dialect handling.
package xmlplist

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Parse reads an XML property list from r and returns its value tree as
// plain Go values: nil, bool, int64, float64, time.Time, []byte, string,
// []interface{}, or map[string]interface{}.
func Parse(r io.Reader) (pval interface{}, err error) {
	p := &parser{
		dec:   xml.NewDecoder(r),
		blank: strings.NewReplacer("\t", "", "\n", "", " ", "", "\r", ""),
	}

	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(runtime.Error); ok {
				panic(rec)
			}
			err = rec.(error)
		}
	}()

	for {
		token, tokErr := p.dec.Token()
		if tokErr != nil {
			return nil, fmt.Errorf("xmlplist: %w", tokErr)
		}
		if el, ok := token.(xml.StartElement); ok {
			pval = p.parseElement(el)
			if p.ntags == 0 {
				return nil, errors.New("xmlplist: no elements encountered")
			}
			return pval, nil
		}
	}
}

type parser struct {
	dec   *xml.Decoder
	blank *strings.Replacer
	ntags int
}

func (p *parser) parseElement(el xml.StartElement) interface{} {
	var chars xml.CharData

	switch el.Name.Local {
	case "plist":
		p.ntags++
		for {
			token, err := p.dec.Token()
			if err != nil {
				panic(err)
			}
			if e, ok := token.(xml.EndElement); ok && e.Name.Local == "plist" {
				return nil
			}
			if e, ok := token.(xml.StartElement); ok {
				return p.parseElement(e)
			}
		}
	case "string":
		p.ntags++
		must(p.dec.DecodeElement(&chars, &el))
		return string(chars)
	case "integer":
		p.ntags++
		must(p.dec.DecodeElement(&chars, &el))
		n, err := strconv.ParseInt(string(chars), 10, 64)
		if err != nil {
			panic(err)
		}
		return n
	case "real":
		p.ntags++
		must(p.dec.DecodeElement(&chars, &el))
		n, err := strconv.ParseFloat(string(chars), 64)
		if err != nil {
			panic(err)
		}
		return n
	case "true", "false":
		p.ntags++
		p.dec.Skip()
		return el.Name.Local == "true"
	case "date":
		p.ntags++
		must(p.dec.DecodeElement(&chars, &el))
		t, err := time.ParseInLocation(time.RFC3339, string(chars), time.UTC)
		if err != nil {
			panic(err)
		}
		return t
	case "data":
		p.ntags++
		must(p.dec.DecodeElement(&chars, &el))
		clean := p.blank.Replace(string(chars))
		out := make([]byte, base64.StdEncoding.DecodedLen(len(clean)))
		n, err := base64.StdEncoding.Decode(out, []byte(clean))
		if err != nil {
			panic(err)
		}
		return out[:n]
	case "dict":
		p.ntags++
		var key *string
		out := make(map[string]interface{}, 16)
		for {
			token, err := p.dec.Token()
			if err != nil {
				panic(err)
			}
			if e, ok := token.(xml.EndElement); ok && e.Name.Local == "dict" {
				if key != nil {
					panic(errors.New("xmlplist: missing value in dictionary"))
				}
				return out
			}
			if e, ok := token.(xml.StartElement); ok {
				if e.Name.Local == "key" {
					var k string
					p.dec.DecodeElement(&k, &e)
					key = &k
				} else {
					if key == nil {
						panic(errors.New("xmlplist: missing key in dictionary"))
					}
					out[*key] = p.parseElement(e)
					key = nil
				}
			}
		}
	case "array":
		p.ntags++
		out := make([]interface{}, 0, 16)
		for {
			token, err := p.dec.Token()
			if err != nil {
				panic(err)
			}
			if e, ok := token.(xml.EndElement); ok && e.Name.Local == "array" {
				return out
			}
			if e, ok := token.(xml.StartElement); ok {
				out = append(out, p.parseElement(e))
			}
		}
	}

	err := fmt.Errorf("xmlplist: unknown element %s", el.Name.Local)
	panic(err)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
