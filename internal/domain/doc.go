// Package domain contains shared domain types used across the functional
// core. Entity values live in this root package; the event vocabulary,
// command values, invariant predicates, and derivers live in sub-packages
// (domain/event, domain/command, domain/invariant, domain/derive).
// This root package holds the entities and the sentinel errors that keep
// infrastructure failures distinguishable from domain-rule failures.
package domain
