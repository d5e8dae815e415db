package notification

import (
	"context"

	"go.uber.org/zap"
)

// ContactResult records the dispatch attempt for one contact.
type ContactResult struct {
	Contact string `json:"contact"`
	Link    string `json:"link"`
	Error   string `json:"error,omitempty"`
}

// Outcome is the aggregate result of a best-effort fan-out. A failure for
// one contact never cancels delivery to the rest.
type Outcome struct {
	Attempted int             `json:"attempted"`
	Failed    int             `json:"failed"`
	Results   []ContactResult `json:"results"`
}

// Dispatcher fans an SOS message out to a list of emergency contacts.
type Dispatcher struct {
	client SMSClient // nil: link-only mode
	logger *zap.Logger
}

func NewDispatcher(client SMSClient, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch sends message to every contact independently and collects the
// per-contact results. Individual failures are logged and counted but do
// not abort the remaining contacts.
func (d *Dispatcher) Dispatch(ctx context.Context, contacts []string, message string) Outcome {
	out := Outcome{Results: make([]ContactResult, 0, len(contacts))}
	for _, contact := range contacts {
		res := ContactResult{Contact: contact, Link: SMSLink(contact, message)}
		out.Attempted++
		if d.client != nil {
			if err := d.client.Send(ctx, contact, message); err != nil {
				d.logger.Warn("sms could not be sent", zap.String("contact", contact), zap.Error(err))
				res.Error = err.Error()
				out.Failed++
			}
		}
		out.Results = append(out.Results, res)
	}
	return out
}
