package pagseguro

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/kevin07696/pagseguro-gateway/internal/adapters/ports"
	"github.com/kevin07696/pagseguro-gateway/pkg/observability"
)

// ResultKind classifies a parsed gateway response
type ResultKind int

const (
	// KindUnrecognized covers everything that is not demonstrably a
	// well-formed gateway response: empty bodies, HTML error pages,
	// truncated XML, responses carrying a DOCTYPE.
	KindUnrecognized ResultKind = iota
	KindToken
	KindSessionID
	KindErrors
)

// GatewayFault is one error entry from a gateway error response
type GatewayFault struct {
	Code    string
	Message string
}

// Node is one element of a parsed response document
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Child returns the first child element with the given name, or nil
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildText returns the trimmed text of the named child, or ""
func (n *Node) ChildText(name string) string {
	if child := n.Child(name); child != nil {
		return strings.TrimSpace(child.Text)
	}
	return ""
}

// ParsedResult is the interpreted gateway response. Root is set whenever the
// body parsed cleanly, including for error responses.
type ParsedResult struct {
	Kind      ResultKind
	Token     string
	SessionID string
	Faults    []GatewayFault
	Root      *Node
}

// parseSafeXML interprets a gateway response body defensively. The body is
// attacker-influenced in the sense that any upstream proxy or captive portal
// can substitute its own content, so nothing here trusts it: bodies that do
// not start with '<' are rejected before the decoder sees them, and a
// DOCTYPE declaration anywhere in the document voids the whole response.
func parseSafeXML(body []byte, logger ports.Logger) ParsedResult {
	if len(body) == 0 || body[0] != '<' {
		observability.RecordUnsafeResponse("not_xml")
		return ParsedResult{Kind: KindUnrecognized}
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charsetReader

	root, ok := decodeTree(decoder, logger)
	if !ok || root == nil {
		return ParsedResult{Kind: KindUnrecognized}
	}

	return classify(root)
}

// decodeTree walks the token stream into a Node tree. It returns ok=false
// when the document is malformed or carries a DOCTYPE.
func decodeTree(decoder *xml.Decoder, logger ports.Logger) (*Node, bool) {
	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			observability.RecordUnsafeResponse("malformed")
			return nil, false
		}

		switch t := token.(type) {
		case xml.Directive:
			if isDoctype(t) {
				logger.Warn("rejected gateway response carrying a DOCTYPE declaration")
				observability.RecordUnsafeResponse("doctype")
				return nil, false
			}
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					observability.RecordUnsafeResponse("malformed")
					return nil, false
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				observability.RecordUnsafeResponse("malformed")
				return nil, false
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil || len(stack) != 0 {
		observability.RecordUnsafeResponse("malformed")
		return nil, false
	}
	return root, true
}

func isDoctype(directive xml.Directive) bool {
	trimmed := bytes.TrimSpace(directive)
	if len(trimmed) < 7 {
		return false
	}
	return bytes.EqualFold(trimmed[:7], []byte("DOCTYPE"))
}

// classify decides what a well-formed response means from its shape
func classify(root *Node) ParsedResult {
	result := ParsedResult{Kind: KindUnrecognized, Root: root}

	if faults := collectFaults(root); len(faults) > 0 {
		result.Kind = KindErrors
		result.Faults = faults
		return result
	}

	if token := root.ChildText("code"); token != "" {
		result.Kind = KindToken
		result.Token = token
		return result
	}

	if id := root.ChildText("id"); id != "" {
		result.Kind = KindSessionID
		result.SessionID = id
		return result
	}

	return result
}

func collectFaults(root *Node) []GatewayFault {
	var faults []GatewayFault
	for _, child := range root.Children {
		if child.Name != "error" {
			continue
		}
		faults = append(faults, GatewayFault{
			Code:    child.ChildText("code"),
			Message: child.ChildText("message"),
		})
	}
	return faults
}

// charsetReader handles the legacy encoding the gateway declares on its
// responses.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1", "windows-1252":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	default:
		return input, nil
	}
}
