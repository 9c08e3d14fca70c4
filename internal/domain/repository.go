package domain

// TransactionSource defines the interface for reading the raw input batch
type TransactionSource interface {
	// ReadAll reads every raw transaction, in input order
	ReadAll() ([]RawTransaction, error)

	// Location describes where the records come from, for reporting
	Location() string
}

// TransactionSink defines the interface for writing transformed transactions
type TransactionSink interface {
	// WriteAll writes the full output in one step. A failed write leaves no partial output.
	WriteAll(txns []TransformedTransaction) error

	// Location describes where the records go, for reporting
	Location() string
}
