// Package webhook provides an observer that forwards rebase notifications to
// an HTTP endpoint. It exists so an external system can watch divisor changes
// without being trusted: the ledger's containment in the notify package
// applies to it like any other observer.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/notify"
)

// Costs charged against the notification budget. The request itself is the
// expensive part; response bytes are charged so a chatty endpoint burns
// itself out instead of the ledger.
const (
	costRequest      = 20_000
	costResponseByte = 8
)

// maxWait bounds the HTTP exchange. The budget governs work, not wall clock,
// so the client still needs a transport deadline of its own.
const maxWait = 5 * time.Second

// Observer posts rebase notifications to a fixed URL.
type Observer struct {
	url    string
	client http.Client
}

// New constructs an observer that posts to the specified URL.
func New(url string) *Observer {
	return &Observer{
		url: url,
		client: http.Client{
			Timeout: maxWait,
		},
	}
}

// URL returns the endpoint this observer posts to.
func (o *Observer) URL() string {
	return o.url
}

// OnRebase implements the notify.Observer interface. It posts the old and
// new divisor as JSON and returns the response body.
func (o *Observer) OnRebase(ctx context.Context, oldDivisor uint64, newDivisor uint64, meter *notify.Meter) ([]byte, error) {
	payload, err := json.Marshal(struct {
		OldDivisor uint64 `json:"old_divisor"`
		NewDivisor uint64 `json:"new_divisor"`
	}{
		OldDivisor: oldDivisor,
		NewDivisor: newDivisor,
	})
	if err != nil {
		return nil, err
	}

	meter.Charge(costRequest)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Pay per byte while draining the response.
	var data bytes.Buffer
	buf := make([]byte, 512)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			meter.Charge(uint64(n) * costResponseByte)
			data.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	return data.Bytes(), nil
}
