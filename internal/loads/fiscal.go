// server/internal/loads/fiscal.go
package loads

import "gesla-logistics-api-server/internal/models"

// NeedsDifal reports whether the load carries a DIFAL obligation: either
// flagged manually or billed to a non-contributor client.
func NeedsDifal(l models.Load) bool {
	return l.HasDifal || l.ClientType == models.ClientNonContributor
}

// HasFiscalDocs reports whether both required documents are attached.
func HasFiscalDocs(l models.Load) bool {
	return l.PaymentProof != "" && l.DifalGuide != ""
}

// IsFiscalProblem is the gate evaluated on BILLED/DISPATCHED transitions.
func IsFiscalProblem(l models.Load) bool {
	return NeedsDifal(l) && !HasFiscalDocs(l)
}

// IsPendingFiscal is the listing predicate for the "pending fiscal" view:
// same check, restricted to active loads still in a non-terminal status.
func IsPendingFiscal(l models.Load) bool {
	if !l.Active || l.Status.IsArchived() {
		return false
	}
	return IsFiscalProblem(l)
}
