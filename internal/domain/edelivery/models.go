package edelivery

// Message statuses reported by the access point
const (
	StatusReceived   = "RECEIVED"
	StatusDownloaded = "DOWNLOADED"
	StatusDeleted    = "DELETED"
)

// Payload is one part of an e-Delivery message
type Payload struct {
	ID          string
	ContentType string
	Value       []byte
}

// Message is an e-Delivery user message retrieved from the access point
type Message struct {
	ID         string
	FromParty  string
	Service    string
	Action     string
	Properties map[string]string
	Payloads   []Payload
}

// PullReport summarizes one pull run
type PullReport struct {
	Pending     int      `json:"pending"`
	Ingested    []string `json:"ingested"`
	Failed      []string `json:"failed"`
	ResourceIDs []string `json:"resource_ids"`
}
