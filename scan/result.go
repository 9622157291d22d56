package scan

// Result is the outcome of probing a single address. A failed connect is a
// normal outcome, not an error: Open is false and Banner is empty.
type Result struct {
	Addr   Address
	Open   bool
	Banner string
}

// Summary is the aggregate outcome of a scan run.
type Summary struct {
	// Found is the number of addresses that accepted the connection.
	Found int

	// Hosts is the total number of addresses probed.
	Hosts int

	// Blocks is the scanned address set compressed back to CIDR form,
	// for display.
	Blocks []CIDRBlock
}
