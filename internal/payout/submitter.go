package payout

import (
	"context"

	"github.com/feral-file/ff-revshare-engine/internal/money"
)

// OutputStatus is the settlement outcome of one output
type OutputStatus string

const (
	OutputStatusSuccess OutputStatus = "success"
	OutputStatusFailed  OutputStatus = "failed"
)

// Output is one payment instruction in a batch
type Output struct {
	Address        string         `json:"address"`
	AmountSatoshis money.Satoshis `json:"amountSatoshis"`
	// LockingScript is the hex P2PKH script paying Address
	LockingScript string `json:"lockingScript"`
}

// OutputResult is the settlement service's answer for one output, in submission order
type OutputResult struct {
	Status OutputStatus `json:"status"`
	TxID   string       `json:"txid,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Submitter hands a batch of outputs to the external settlement service.
// The service is non-transactional: some outputs may settle while others fail.
//
//go:generate mockgen -source=submitter.go -destination=../mocks/submitter.go -package=mocks -mock_names=Submitter=MockSubmitter
type Submitter interface {
	SubmitBatch(ctx context.Context, outputs []Output) ([]OutputResult, error)
}
