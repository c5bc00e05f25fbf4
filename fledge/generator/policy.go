package generator

import "fmt"

// OverwritePolicy decides what happens to an artifact that already exists.
//
// The policy is a property of the artifact's role, not of the run: a
// secrets file is precious and is preserved, generated source is replaced.
type OverwritePolicy int

const (
	// PolicyOverwrite replaces the file's entire content unconditionally.
	PolicyOverwrite OverwritePolicy = iota
	// PolicyPreserve keeps an existing file byte-for-byte and warns.
	PolicyPreserve
)

// ConflictResolution is the outcome of applying a policy to one target.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
)

// String returns the policy name used in plans and logs.
func (p OverwritePolicy) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyPreserve:
		return "preserve"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Resolve decides whether a target should be written.
// force upgrades PolicyPreserve to PolicyOverwrite for the whole run.
func (p OverwritePolicy) Resolve(exists, force bool) ConflictResolution {
	if !exists || force || p == PolicyOverwrite {
		return Overwrite
	}
	return Skip
}
