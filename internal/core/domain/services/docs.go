// Package services contains stateless domain services that coordinate rules
// spanning more than one entity of the order aggregate, such as billing.
package services
