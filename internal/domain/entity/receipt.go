package entity

// ReceiptStatusSuccess is the on-chain status value of a successfully
// executed transaction.
const ReceiptStatusSuccess = uint64(1)

// Receipt is the confirmation returned once a submitted transaction has been
// included in a block.
type Receipt struct {
	TxHash      string
	Status      uint64
	BlockNumber uint64
}

// Succeeded reports whether the receipt status indicates on-chain success.
// Anything else counts as a failed submission.
func (r Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccess
}
