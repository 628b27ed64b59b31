// Package kernel contains the shared value objects of the domain model:
// identifiers (UUID, TenantID) and Money.
//
// All value objects are immutable and validated at construction. The zero
// value of each type is invalid and is rejected by Validate, which keeps
// aggregates from being silently built around uninitialized identifiers or
// amounts.
package kernel
