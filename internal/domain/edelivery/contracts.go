package edelivery

import "context"

// Client talks to the access point backend web service
type Client interface {
	ListPendingMessages(ctx context.Context) ([]string, error)
	RetrieveMessage(ctx context.Context, messageID string) (*Message, error)
	GetStatus(ctx context.Context, messageID string) (string, error)
}

// IngestService turns pending messages into resource records.
type IngestService interface {
	// Pull retrieves every pending message and submits each XML payload as a resource owned by userID.
	Pull(ctx context.Context, userID string) (*PullReport, error)
}
