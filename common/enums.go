// Enums shared between configuration and the pagination engine are kept in a
// separate package so config does not have to import engine internals.
package common

// Specification of split-group identifier generation mode.
// ENUM(sequential, uuid)
type SplitIDMode int

// Specification of synthetic geometry measurement mode.
// ENUM(attr, text)
type MeasureMode int

// Specification of footer handling on newly created pages.
// ENUM(static, cloned)
type FooterMode int

func (f FooterMode) Clone() bool {
	return f == FooterModeCloned
}
