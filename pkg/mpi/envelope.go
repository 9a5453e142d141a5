package mpi

import "github.com/kevin07696/mpi-client/pkg/encoding"

// ProtocolVersion is sent as the version field of every request
const ProtocolVersion = "1.1"

// BuildAuthorizeEnvelope filters the sections and signs an Authorize request
func (c *Client) BuildAuthorizeEnvelope(merchant, customer, transaction *encoding.Map) *encoding.Map {
	m := FilterSection(SectionMerchant, merchant, c.config.MerchantUID)
	cu := FilterSection(SectionCustomer, customer, c.config.MerchantUID)
	tx := FilterSection(SectionTransaction, transaction, c.config.MerchantUID)

	body := encoding.NewMap().
		SetString("version", ProtocolVersion).
		SetMap("Merchant", m).
		SetMap("Customer", cu).
		SetMap("Transaction", tx)

	c.appendHash(body, OperationAuthorize, m.GetString("uid"), tx, "")

	return encoding.NewMap().SetMap(string(OperationAuthorize), body)
}

// BuildStatusEnvelope filters the sections and signs a Status request for id
func (c *Client) BuildStatusEnvelope(id string, merchant, transaction *encoding.Map) *encoding.Map {
	return c.buildTransactionEnvelope(OperationStatus, id, merchant, transaction)
}

// BuildCaptureEnvelope filters the sections and signs a Capture request for id
func (c *Client) BuildCaptureEnvelope(id string, merchant, transaction *encoding.Map) *encoding.Map {
	return c.buildTransactionEnvelope(OperationCapture, id, merchant, transaction)
}

func (c *Client) buildTransactionEnvelope(op Operation, id string, merchant, transaction *encoding.Map) *encoding.Map {
	m := FilterSection(SectionMerchant, merchant, c.config.MerchantUID)
	tx := FilterSection(SectionTransaction, transaction, c.config.MerchantUID)

	body := encoding.NewMap().
		SetString("version", ProtocolVersion).
		SetMap(encoding.AttributesKey, encoding.NewMap().SetString("id", id)).
		SetMap("Merchant", m).
		SetMap("Transaction", tx)

	c.appendHash(body, op, m.GetString("uid"), tx, id)

	return encoding.NewMap().SetMap(string(op), body)
}

// appendHash adds the digest as the last field of body when it can be computed
func (c *Client) appendHash(body *encoding.Map, op Operation, merchantUID string, tx *encoding.Map, id string) {
	if digest, ok := Sign(op, merchantUID, tx, id, c.config.ClientSecret); ok {
		body.SetString("hash", digest)
	}
}
