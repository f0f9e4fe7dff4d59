package entity

// TransferRequest carries the user-supplied inputs for one native-asset
// transfer. It lives only for the duration of a single submission.
type TransferRequest struct {
	RecipientAddress string `json:"recipientAddress"`
	AmountNative     string `json:"amountNative"`
}

// TransferRecord is the canonical confirmation record of a successful
// transfer. ID is assigned by the history store at append time, never by the
// client. Records are immutable once created.
type TransferRecord struct {
	ID               int    `json:"id,omitempty"`
	RecipientAddress string `json:"recipientAddress"`
	AmountNative     string `json:"amount"`
	Timestamp        string `json:"timestamp"`
}
