package types

import "errors"

// This file contains types shared by the fetch, aggregate and report stages.
// Most types live in their dedicated files:
// - epoch.go: epoch info returned by the node debug API
// - entity.go: entity snapshot and version tracker entries
// - validator.go: per block producer records and version groups
// - report.go: the final report and its summary
// - pool.go: pool contact details from the pool-details contract
// - rpc.go: JSON-RPC envelopes

// ErrMalformedResponse is returned whenever a document is missing a field or
// has a different shape than expected.
var ErrMalformedResponse = errors.New("malformed response")

// NEARDecimals is the number of decimal places between yoctoNEAR and NEAR.
const NEARDecimals = 24
