package connector

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hpusset/ELRI-sub001/internal/domain/edelivery"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/hooklift/gowsdl/soap"
)

// backendNamespace is the namespace of the access point backend web service
const backendNamespace = "http://org.ecodex.backend/1_1/"

type listPendingMessagesRequest struct {
	XMLName xml.Name `xml:"http://org.ecodex.backend/1_1/ listPendingMessagesRequest"`
}

type listPendingMessagesResponse struct {
	XMLName    xml.Name `xml:"http://org.ecodex.backend/1_1/ listPendingMessagesResponse"`
	MessageIDs []string `xml:"messageID"`
}

type retrieveMessageRequest struct {
	XMLName   xml.Name `xml:"http://org.ecodex.backend/1_1/ retrieveMessageRequest"`
	MessageID string   `xml:"messageID"`
}

type payloadType struct {
	PayloadID   string `xml:"payloadId,attr"`
	ContentType string `xml:"contentType,attr"`
	Value       string `xml:"value"`
}

type messageProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type retrieveMessageResponse struct {
	XMLName    xml.Name          `xml:"http://org.ecodex.backend/1_1/ retrieveMessageResponse"`
	FromParty  string            `xml:"messageInfo>fromParty"`
	Service    string            `xml:"messageInfo>service"`
	Action     string            `xml:"messageInfo>action"`
	Properties []messageProperty `xml:"messageProperties>property"`
	Bodyload   *payloadType      `xml:"bodyload"`
	Payloads   []payloadType     `xml:"payload"`
}

type getStatusRequest struct {
	XMLName   xml.Name `xml:"http://org.ecodex.backend/1_1/ getStatusRequest"`
	MessageID string   `xml:"messageID"`
}

type getStatusResponse struct {
	XMLName xml.Name `xml:"http://org.ecodex.backend/1_1/ getStatusResponse"`
	Status  string   `xml:",chardata"`
}

// eDeliveryConnector calls the access point backend web service over SOAP
type eDeliveryConnector struct {
	client   *soap.Client
	endpoint string
	logger   logger.Logger
}

var (
	eDeliveryOnce     sync.Once
	eDeliveryInstance edelivery.Client
	eDeliveryErr      error
)

// GetEDeliveryConnector returns the process-wide client, building it from settings on first use
func GetEDeliveryConnector(settings *config.EDeliverySettings, logger logger.Logger) (edelivery.Client, error) {
	eDeliveryOnce.Do(func() {
		eDeliveryInstance, eDeliveryErr = NewEDeliveryConnector(settings, logger)
	})
	return eDeliveryInstance, eDeliveryErr
}

// NewEDeliveryConnector creates a SOAP client with basic authentication
func NewEDeliveryConnector(settings *config.EDeliverySettings, logger logger.Logger) (edelivery.Client, error) {
	if settings == nil {
		return nil, errors.New("e-delivery settings cannot be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	endpoint := strings.TrimSuffix(strings.TrimSuffix(settings.WSDLURL, "?wsdl"), "?WSDL")
	client := soap.NewClient(endpoint,
		soap.WithBasicAuth(settings.Username, settings.Password),
		soap.WithTimeout(settings.Timeout()),
	)

	return &eDeliveryConnector{client: client, endpoint: endpoint, logger: logger}, nil
}

// ListPendingMessages returns the IDs of messages waiting for download
func (c *eDeliveryConnector) ListPendingMessages(ctx context.Context) ([]string, error) {
	resp := &listPendingMessagesResponse{}
	if err := c.client.CallContext(ctx, "listPendingMessages", &listPendingMessagesRequest{}, resp); err != nil {
		return nil, fmt.Errorf("listPendingMessages failed: %w", err)
	}

	c.logger.Info("pending e-delivery messages listed", "count", len(resp.MessageIDs), "endpoint", c.endpoint)
	return resp.MessageIDs, nil
}

// RetrieveMessage downloads a message with its decoded payloads
func (c *eDeliveryConnector) RetrieveMessage(ctx context.Context, messageID string) (*edelivery.Message, error) {
	resp := &retrieveMessageResponse{}
	if err := c.client.CallContext(ctx, "retrieveMessage", &retrieveMessageRequest{MessageID: messageID}, resp); err != nil {
		return nil, fmt.Errorf("retrieveMessage %s failed: %w", messageID, err)
	}

	msg := &edelivery.Message{
		ID:         messageID,
		FromParty:  strings.TrimSpace(resp.FromParty),
		Service:    strings.TrimSpace(resp.Service),
		Action:     strings.TrimSpace(resp.Action),
		Properties: make(map[string]string, len(resp.Properties)),
	}
	for _, p := range resp.Properties {
		msg.Properties[p.Name] = strings.TrimSpace(p.Value)
	}

	parts := resp.Payloads
	if resp.Bodyload != nil {
		parts = append([]payloadType{*resp.Bodyload}, parts...)
	}
	for _, p := range parts {
		value, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(p.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode payload %s of message %s: %w", p.PayloadID, messageID, err)
		}
		msg.Payloads = append(msg.Payloads, edelivery.Payload{
			ID:          p.PayloadID,
			ContentType: p.ContentType,
			Value:       value,
		})
	}

	c.logger.Info("e-delivery message retrieved", "message_id", messageID, "payloads", len(msg.Payloads))
	return msg, nil
}

// GetStatus returns the access point status of a message
func (c *eDeliveryConnector) GetStatus(ctx context.Context, messageID string) (string, error) {
	resp := &getStatusResponse{}
	if err := c.client.CallContext(ctx, "getStatus", &getStatusRequest{MessageID: messageID}, resp); err != nil {
		return "", fmt.Errorf("getStatus %s failed: %w", messageID, err)
	}
	return strings.TrimSpace(resp.Status), nil
}
