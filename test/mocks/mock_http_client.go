package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// MockHTTPClient is a mock implementation of HTTPClient for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
	Bodies [][]byte
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// NewXMLResponder returns a mock that answers every request with status and body
func NewXMLResponder(status int, body string) *MockHTTPClient {
	return NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return XMLResponse(status, body), nil
	})
}

// XMLResponse builds an *http.Response carrying an XML body
func XMLResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/xml")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}

// Do executes the mock function and captures the call and its body
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls = append(m.Calls, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body.Close()
		m.Bodies = append(m.Bodies, body)
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	// Default success response
	return XMLResponse(200, `<?xml version="1.0"?><MPI_Interface><Response><status>OK</status></Response></MPI_Interface>`), nil
}

// Reset clears captured calls
func (m *MockHTTPClient) Reset() {
	m.Calls = []*http.Request{}
	m.Bodies = nil
}
