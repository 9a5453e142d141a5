package mpi

import (
	"github.com/beevik/etree"
	"github.com/kevin07696/mpi-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/mpi-client/pkg/errors"
)

// Response is the content of a successful <Response> node
type Response struct {
	Fields *encoding.Map
	Raw    []byte
}

// Get returns the text of a direct child of <Response>.
// For a child carrying attributes the element text is returned.
func (r *Response) Get(name string) string {
	v, ok := r.Fields.Get(name)
	if !ok {
		return ""
	}
	if v.IsMap() {
		return v.Map().GetString(encoding.ValueKey)
	}
	return v.Text()
}

// decodeResponse maps a gateway reply to a Response or an error.
// <Response> wins over <Error> when both are present.
func decodeResponse(body []byte) (*Response, error) {
	doc, err := encoding.Parse(body)
	if err != nil {
		return nil, pkgerrors.NewDecodingError("malformed response", body, err)
	}
	root := doc.Root()

	if el := findNode(root, "Response"); el != nil {
		return &Response{
			Fields: encoding.DecodeElement(el),
			Raw:    body,
		}, nil
	}

	if el := findNode(root, "Error"); el != nil {
		fields := encoding.DecodeElement(el)
		return nil, pkgerrors.NewAPIFault(
			fields.GetString("errorCode"),
			fields.GetString("errorMessage"),
			fields.GetString("errorDetail"),
		)
	}

	return nil, pkgerrors.NewDecodingError("response contains neither Response nor Error", body, nil)
}

func findNode(root *etree.Element, tag string) *etree.Element {
	if root.Tag == tag {
		return root
	}
	return root.SelectElement(tag)
}
