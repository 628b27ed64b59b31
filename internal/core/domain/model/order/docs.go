// Package order holds the service-order aggregate: the Order root, its
// ExamItem entities and their ExamResult entities, plus the three status
// machines and the append-only history ledger that tie them together.
//
// All state changes go through aggregate methods. From coletado onward the
// order's status is derived from its items and only moves forward; results
// cross a QC gate before release and are corrected through versioned
// rectification, never by overwriting.
package order
