// Package event parses the inbound trigger payload delivered per stored
// object. The delivery mechanism itself (queue, Lambda, webhook) lives in
// cmd/; only the payload shape is fixed here.
package event

import (
	"encoding/json"
	"net/url"

	"github.com/pixelforge/transcoder/internal/errs"
)

// Kind of the notification. Only object creation triggers the pipeline.
const KindCreated = "created"

// Notification is the raw wire shape of a trigger payload.
type Notification struct {
	Records []Record `json:"records"`
}

// Record describes one newly stored object.
type Record struct {
	Store struct {
		Container string `json:"container"`
		Object    struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"store"`
}

// Inbound is the validated result of parsing a trigger payload.
type Inbound struct {
	SourceContainer string
	SourceKey       string
	Kind            string
}

// Parse extracts the first record's container and key. Object-store
// notifications ship keys with '+' and percent escapes, so the key is
// unescaped before use.
func Parse(payload []byte) (Inbound, error) {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return Inbound{}, errs.Newf(errs.KindMalformedEvent, "event", "failed to parse trigger payload: %v", err)
	}
	if len(n.Records) == 0 {
		return Inbound{}, errs.Newf(errs.KindMalformedEvent, "event", "trigger payload has no records")
	}

	rec := n.Records[0]
	if rec.Store.Container == "" {
		return Inbound{}, errs.Newf(errs.KindMalformedEvent, "event", "record is missing the container name")
	}
	if rec.Store.Object.Key == "" {
		return Inbound{}, errs.Newf(errs.KindMalformedEvent, "event", "record is missing the object key")
	}

	key, err := url.QueryUnescape(rec.Store.Object.Key)
	if err != nil {
		return Inbound{}, errs.Newf(errs.KindMalformedEvent, "event", "object key %q is not a valid escaped key: %v", rec.Store.Object.Key, err)
	}

	return Inbound{
		SourceContainer: rec.Store.Container,
		SourceKey:       key,
		Kind:            KindCreated,
	}, nil
}
