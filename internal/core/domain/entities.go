package domain

// Role represents user role in the system.
// Roles are fixed at creation and never self-escalatable.
type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleExhibitor Role = "exhibitor"
	RolePartner   Role = "partner"
	RoleAdmin     Role = "admin"
)

// ValidRegistrationRole reports whether a role may be requested at signup.
// Admin accounts are only created by seeding, never by self-registration.
func ValidRegistrationRole(r Role) bool {
	switch r {
	case RoleVisitor, RoleExhibitor, RolePartner:
		return true
	}
	return false
}

// Status represents the account validation status.
type Status string

const (
	StatusPending     Status = "pending"
	StatusValidated   Status = "validated"
	StatusRejected    Status = "rejected"
	StatusDeactivated Status = "deactivated"
)

// RejectionReason is the admin-selected reason code for a rejection.
type RejectionReason string

const (
	ReasonInvalidEmail      RejectionReason = "invalid_email"
	ReasonIncompleteProfile RejectionReason = "incomplete_profile"
	ReasonMissingDocument   RejectionReason = "missing_document"
)

// ValidRejectionReason reports whether r is a defined reason code.
func ValidRejectionReason(r RejectionReason) bool {
	switch r {
	case ReasonInvalidEmail, ReasonIncompleteProfile, ReasonMissingDocument:
		return true
	}
	return false
}

// ReasonLabel maps a reason code to its user-facing French label.
// Display only — comparisons always happen on the canonical codes above.
func ReasonLabel(r RejectionReason) string {
	switch r {
	case ReasonInvalidEmail:
		return "Email invalide"
	case ReasonIncompleteProfile:
		return "Profil incomplet"
	case ReasonMissingDocument:
		return "Document manquant"
	}
	return string(r)
}

// ActionKind is the audit-log action recorded for each admin decision.
// The values are the storage format inherited from the event platform.
type ActionKind string

const (
	ActionValidate ActionKind = "valide"
	ActionReject   ActionKind = "rejete"
	ActionRemind   ActionKind = "relance"
)

// PackageScope partitions the entitlement catalog by audience.
type PackageScope string

const (
	ScopeVisitor     PackageScope = "visitor"
	ScopePartnership PackageScope = "partnership"
	ScopeExhibition  PackageScope = "exhibition"
)

// ScopeForRole returns the catalog scope a user shops in.
func ScopeForRole(r Role) PackageScope {
	switch r {
	case RolePartner:
		return ScopePartnership
	case RoleExhibitor:
		return ScopeExhibition
	default:
		return ScopeVisitor
	}
}

// UnlimitedMeetings is the sentinel for an unmetered B2B meeting pool.
const UnlimitedMeetings = -1
