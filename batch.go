package mailtrap

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Hard limits enforced before a batch request leaves the process.
const (
	// MaxBatchRequests is the maximum number of messages per batch.
	MaxBatchRequests = 500

	// MaxBatchAttachmentsSize caps the combined encoded size of the base
	// attachments.
	MaxBatchAttachmentsSize = 50 * 1024 * 1024
)

// Key allowlists applied in strict mode. Unknown keys outside these sets
// are rejected; in the default permissive mode they pass through untouched.
var (
	allowedBaseKeys = keySet("from", "reply_to", "subject", "text", "html", "category",
		"headers", "custom_variables", "attachments", "template_uuid",
		"template_variables", "track_opens", "track_clicks")
	allowedRequestKeys = keySet("to", "cc", "bcc", "custom_variables", "template_variables", "template_uuid")
	allowedAddressKeys = keySet("email", "name")
	recipientFields    = []string{"to", "cc", "bcc"}
)

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// BatchSender submits one shared base plus per-recipient override requests
// to the batch endpoint. All validation happens locally before the single
// network call; per-recipient failures inside a successful batch are
// returned as data, never as an error.
type BatchSender struct {
	client *Client
	strict bool
}

// NewBatchSender creates a batch sender in permissive mode: unknown keys in
// the payload maps are passed through to the API untouched.
func NewBatchSender(client *Client) *BatchSender {
	return &BatchSender{client: client}
}

// NewStrictBatchSender creates a batch sender that rejects unknown keys in
// the base, the requests and their recipient entries.
func NewStrictBatchSender(client *Client) *BatchSender {
	return &BatchSender{client: client, strict: true}
}

// SendEmails validates and submits a batch. base is either a Serializable
// model (such as *BatchBase or *Mail) or a plain map; recipient fields on
// the base are dropped since recipients are per-request only. The response
// holds one entry per request, in request order.
func (s *BatchSender) SendEmails(ctx context.Context, base any, requests []map[string]any) (*BatchResponse, error) {
	basePayload, err := resolveBase(base)
	if err != nil {
		return nil, err
	}

	if err := s.validateBase(basePayload); err != nil {
		return nil, err
	}
	if err := s.validateRequests(requests); err != nil {
		return nil, err
	}

	if !s.client.bulkHost() {
		return nil, NewValidationError("client", fmt.Sprintf("batch sending requires the %s host", BulkSendingAPIHost))
	}

	raw, err := s.client.batchSend(ctx, map[string]any{
		"base":     basePayload,
		"requests": requests,
	})
	if err != nil {
		return nil, err
	}

	return decodeBatchResponse(raw)
}

// resolveBase turns the serializable-or-map union into one plain map and
// strips the per-request recipient keys. The union is resolved exactly
// once; nothing downstream branches on the base type again.
func resolveBase(base any) (map[string]any, error) {
	var payload map[string]any
	switch v := base.(type) {
	case Serializable:
		payload = v.Serialize()
	case map[string]any:
		payload = make(map[string]any, len(v))
		for k, val := range v {
			payload[k] = val
		}
	default:
		return nil, NewValidationError("base", "expected a map or a Serialize()-able object")
	}

	for _, field := range recipientFields {
		delete(payload, field)
	}
	return payload, nil
}

func (s *BatchSender) validateBase(base map[string]any) error {
	from, ok := base["from"].(map[string]any)
	if !ok {
		return NewValidationError("base.from", "from is required and must be an object")
	}
	email, _ := from["email"].(string)
	if !ValidEmail(email) {
		return NewValidationError("base.from.email", "invalid email address")
	}

	if err := validateBaseAttachments(base["attachments"]); err != nil {
		return err
	}

	if s.strict {
		for key := range base {
			if _, ok := allowedBaseKeys[key]; !ok {
				return NewValidationError("base", fmt.Sprintf("unexpected key %q", key))
			}
		}
		for key := range from {
			if _, ok := allowedAddressKeys[key]; !ok {
				return NewValidationError("base.from", fmt.Sprintf("unexpected key %q", key))
			}
		}
	}
	return nil
}

func validateBaseAttachments(value any) error {
	if value == nil {
		return nil
	}

	var totalSize int
	for i, entry := range anySlice(value) {
		attachment, ok := asMap(entry)
		if !ok {
			return NewValidationError("base.attachments", fmt.Sprintf("attachment #%d must be an object", i+1))
		}
		if _, ok := attachment["filename"]; !ok {
			return NewValidationError("base.attachments", fmt.Sprintf("attachment #%d is missing filename", i+1))
		}
		content, ok := attachment["content"]
		if !ok {
			return NewValidationError("base.attachments", fmt.Sprintf("attachment #%d is missing content", i+1))
		}
		if str, ok := content.(string); ok {
			totalSize += len(str)
		}
	}
	if totalSize > MaxBatchAttachmentsSize {
		return NewValidationError("base.attachments", "attachments exceed maximum allowed size (50MB)")
	}
	return nil
}

func (s *BatchSender) validateRequests(requests []map[string]any) error {
	if len(requests) == 0 {
		return NewValidationError("requests", "must be a non-empty list")
	}
	if len(requests) > MaxBatchRequests {
		return NewValidationError("requests", fmt.Sprintf("too many messages in batch: max %d allowed", MaxBatchRequests))
	}

	for i, request := range requests {
		for _, field := range recipientFields {
			value, ok := request[field]
			if !ok {
				continue
			}
			// A non-list value is not a recipient list; leave it alone.
			list, ok := asList(value)
			if !ok {
				continue
			}
			for _, entry := range list {
				if entry == nil {
					continue
				}
				recipient, ok := asMap(entry)
				if !ok {
					return NewValidationError(field, fmt.Sprintf("invalid %s recipient in request #%d", field, i+1))
				}
				email, _ := recipient["email"].(string)
				if !ValidEmail(email) {
					return NewValidationError(field, fmt.Sprintf("invalid %s recipient email in request #%d", field, i+1))
				}
				if s.strict {
					for key := range recipient {
						if _, ok := allowedAddressKeys[key]; !ok {
							return NewValidationError(field, fmt.Sprintf("unexpected key %q in %s recipient of request #%d", key, field, i+1))
						}
					}
				}
			}
		}
		if s.strict {
			for key := range request {
				if _, ok := allowedRequestKeys[key]; !ok {
					return NewValidationError("requests", fmt.Sprintf("unexpected key %q in request #%d", key, i+1))
				}
			}
		}
	}
	return nil
}

// decodeBatchResponse enforces the endpoint contract: the body must be an
// object with a responses array. Anything else is a broken server response.
func decodeBatchResponse(raw []byte) (*BatchResponse, error) {
	var envelope struct {
		Success   bool                `json:"success"`
		Responses jsoniter.RawMessage `json:"responses"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Responses == nil {
		return nil, &InvalidAPIResponseError{APIError{Messages: []string{"unexpected batch response format"}}}
	}

	var items []BatchItemResponse
	if err := json.Unmarshal(envelope.Responses, &items); err != nil {
		return nil, &InvalidAPIResponseError{APIError{Messages: []string{"unexpected batch response format"}}}
	}

	return &BatchResponse{Success: envelope.Success, Responses: items}, nil
}

// anySlice flattens the two slice shapes callers realistically supply.
func anySlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	default:
		return nil
	}
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []map[string]any:
		return anySlice(v), true
	case []Address:
		out := make([]any, len(v))
		for i, a := range v {
			out[i] = a.Serialize()
		}
		return out, true
	default:
		return nil, false
	}
}

func asMap(value any) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	return m, ok
}
