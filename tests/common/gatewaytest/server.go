//go:build unit || e2e

// Package gatewaytest runs a stand-in for the Authorize.net AIM and CIM endpoints.
package gatewaytest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	Approved = "1|1|1|This transaction has been approved.|A1B2C3|Y|1234567|||12.50|CC|auth_capture"
	Declined = "2|1|2|This transaction has been declined.|000000|N|0|||12.50|CC|auth_capture"

	CIMOkProfile = `<?xml version="1.0" encoding="utf-8"?><createCustomerProfileResponse xmlns="AnetApi/xml/v1/schema/AnetApiSchema.xsd"><messages><resultCode>Ok</resultCode><message><code>I00001</code><text>Successful.</text></message></messages><customerProfileId>111</customerProfileId><customerPaymentProfileIdList><numericString>222</numericString></customerPaymentProfileIdList><customerShippingAddressIdList><numericString>333</numericString></customerShippingAddressIdList><validationDirectResponseList /></createCustomerProfileResponse>`
	CIMOkTransaction = `<?xml version="1.0" encoding="utf-8"?><createCustomerProfileTransactionResponse xmlns="AnetApi/xml/v1/schema/AnetApiSchema.xsd"><messages><resultCode>Ok</resultCode><message><code>I00001</code><text>Successful.</text></message></messages><directResponse>1,1,1,This transaction has been approved.,A1B2C3,Y,2233445566,,,12.50,CC,auth_capture</directResponse></createCustomerProfileTransactionResponse>`
	CIMError = `<?xml version="1.0" encoding="utf-8"?><ErrorResponse xmlns="AnetApi/xml/v1/schema/AnetApiSchema.xsd"><messages><resultCode>Error</resultCode><message><code>E00040</code><text>The record cannot be found.</text></message></messages></ErrorResponse>`

	CIMDeclinedTransaction = `<?xml version="1.0" encoding="utf-8"?><createCustomerProfileTransactionResponse xmlns="AnetApi/xml/v1/schema/AnetApiSchema.xsd"><messages><resultCode>Error</resultCode><message><code>E00027</code><text>The transaction was unsuccessful.</text></message></messages><directResponse>2,1,2,This transaction has been declined.,000000,N,0,,,12.50,CC,auth_capture</directResponse></createCustomerProfileTransactionResponse>`
)

// Reply is one canned response. A zero Status means 200.
type Reply struct {
	Status int
	Body   string
}

// Server records every request and answers from per-endpoint queues; the last reply repeats.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	aim      []Reply
	cim      []Reply
	AIMForms []url.Values
	CIMDocs  []string
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{}
	mux := http.NewServeMux()
	mux.HandleFunc("/aim", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		s.mu.Lock()
		s.AIMForms = append(s.AIMForms, r.PostForm)
		reply := next(&s.aim)
		s.mu.Unlock()
		write(w, reply)
	})
	mux.HandleFunc("/cim", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.CIMDocs = append(s.CIMDocs, string(body))
		reply := next(&s.cim)
		s.mu.Unlock()
		write(w, reply)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) AIMURL() string { return s.URL + "/aim" }

func (s *Server) CIMURL() string { return s.URL + "/cim" }

func (s *Server) QueueAIM(replies ...Reply) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aim = append(s.aim, replies...)
	return s
}

func (s *Server) QueueCIM(replies ...Reply) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cim = append(s.cim, replies...)
	return s
}

func (s *Server) AIMHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.AIMForms)
}

func (s *Server) CIMHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.CIMDocs)
}

// Reset drops queued replies and recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aim, s.cim = nil, nil
	s.AIMForms, s.CIMDocs = nil, nil
}

func next(queue *[]Reply) Reply {
	q := *queue
	if len(q) == 0 {
		return Reply{Status: http.StatusNotFound}
	}
	r := q[0]
	if len(q) > 1 {
		*queue = q[1:]
	}
	return r
}

func write(w http.ResponseWriter, r Reply) {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	w.WriteHeader(r.Status)
	_, _ = io.WriteString(w, r.Body)
}
