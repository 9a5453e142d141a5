package mpi

import (
	"github.com/kevin07696/mpi-client/pkg/encoding"
	"github.com/shopspring/decimal"
)

// SectionKind identifies one of the request sections
type SectionKind string

const (
	SectionMerchant    SectionKind = "Merchant"
	SectionCustomer    SectionKind = "Customer"
	SectionTransaction SectionKind = "Transaction"
)

var sectionFields = map[SectionKind][]string{
	SectionMerchant: {
		"uid",
		"css",
		"template",
		"title",
		"beneficiary",
		"param",
		"redirecturl",
		"redirecttype",
		"feedbackurl",
		"feedbacktype",
		"feedbackemail",
	},
	SectionCustomer: {
		"name",
		"country",
		"ip",
		"email",
		"language",
	},
	SectionTransaction: {
		"brand",
		"orderid",
		"amount",
		"description",
	},
}

// AllowedFields returns the accepted field names of a section
func AllowedFields(kind SectionKind) []string {
	fields := sectionFields[kind]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// FilterSection returns a copy of data restricted to the fields accepted for kind.
// A uid is added first when data has none; for Customer and Transaction it is
// removed again by the whitelist. Remaining fields keep their order.
func FilterSection(kind SectionKind, data *encoding.Map, merchantUID string) *encoding.Map {
	out := data.Clone()

	if !out.Has("uid") {
		out.SetString("uid", merchantUID)
	}

	allowed := make(map[string]bool, len(sectionFields[kind]))
	for _, f := range sectionFields[kind] {
		allowed[f] = true
	}

	for _, key := range out.Keys() {
		if !allowed[key] {
			out.Delete(key)
		}
	}
	return out
}

// Merchant holds the Merchant section fields
type Merchant struct {
	UID           string
	CSS           string
	Template      string
	Title         string
	Beneficiary   string
	Param         string
	RedirectURL   string
	RedirectType  string
	FeedbackURL   string
	FeedbackType  string
	FeedbackEmail string
}

// ToMap converts the non-empty fields to a section map
func (m Merchant) ToMap() *encoding.Map {
	return sectionMap([][2]string{
		{"uid", m.UID},
		{"css", m.CSS},
		{"template", m.Template},
		{"title", m.Title},
		{"beneficiary", m.Beneficiary},
		{"param", m.Param},
		{"redirecturl", m.RedirectURL},
		{"redirecttype", m.RedirectType},
		{"feedbackurl", m.FeedbackURL},
		{"feedbacktype", m.FeedbackType},
		{"feedbackemail", m.FeedbackEmail},
	})
}

// Customer holds the Customer section fields
type Customer struct {
	Name     string
	Country  string
	IP       string
	Email    string
	Language string
}

// ToMap converts the non-empty fields to a section map
func (c Customer) ToMap() *encoding.Map {
	return sectionMap([][2]string{
		{"name", c.Name},
		{"country", c.Country},
		{"ip", c.IP},
		{"email", c.Email},
		{"language", c.Language},
	})
}

// Transaction holds the Transaction section fields
type Transaction struct {
	Brand       string
	OrderID     string
	Amount      decimal.Decimal
	Description string
}

// ToMap converts the non-empty fields to a section map.
// Amount is written with two decimals and omitted when zero.
func (t Transaction) ToMap() *encoding.Map {
	amount := ""
	if !t.Amount.IsZero() {
		amount = encoding.Decimal(t.Amount).Text()
	}
	return sectionMap([][2]string{
		{"brand", t.Brand},
		{"orderid", t.OrderID},
		{"amount", amount},
		{"description", t.Description},
	})
}

func sectionMap(pairs [][2]string) *encoding.Map {
	m := encoding.NewMap()
	for _, p := range pairs {
		if p[1] != "" {
			m.SetString(p[0], p[1])
		}
	}
	return m
}
