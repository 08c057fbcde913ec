// Package entitlement decides whether a user may generate another worksheet.
package entitlement

import "fmt"

// DefaultMaxFreeWorksheets is the free allowance given to a new user.
const DefaultMaxFreeWorksheets = 3

// User is the per-session account record. It lives in memory for the
// lifetime of a login and is never persisted.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	// IsPaid unlocks unlimited generation. Once true, FreeWorksheetsUsed
	// is no longer consulted.
	IsPaid bool `json:"isPaid"`

	// FreeWorksheetsUsed is non-decreasing while the user is unpaid.
	FreeWorksheetsUsed int `json:"freeWorksheetsUsed"`

	// MaxFreeWorksheets may be zero, in which case the user can never
	// generate for free.
	MaxFreeWorksheets int `json:"maxFreeWorksheets"`
}

// NewUser creates an unpaid user with no free generations used.
func NewUser(id, email string, maxFree int) *User {
	if maxFree < 0 {
		maxFree = 0
	}
	return &User{
		ID:                id,
		Email:             email,
		MaxFreeWorksheets: maxFree,
	}
}

// CanGenerate reports whether u may start another generation.
func CanGenerate(u *User) bool {
	if u == nil {
		return false
	}
	if u.IsPaid {
		return true
	}
	return u.FreeWorksheetsUsed < u.MaxFreeWorksheets
}

// RecordGeneration applies the side effect of a successful generation:
// unpaid users consume exactly one free worksheet. Paid users are untouched.
func RecordGeneration(u *User) {
	if u == nil || u.IsPaid {
		return
	}
	u.FreeWorksheetsUsed++
}

// Upgrade marks the user as paid. Payment confirmation happens elsewhere.
func Upgrade(u *User) {
	if u == nil {
		return
	}
	u.IsPaid = true
}

// Remaining returns the number of free generations left, or -1 for paid users.
func Remaining(u *User) int {
	if u == nil {
		return 0
	}
	if u.IsPaid {
		return -1
	}
	if left := u.MaxFreeWorksheets - u.FreeWorksheetsUsed; left > 0 {
		return left
	}
	return 0
}

// UsageLabel renders the header usage line, e.g. "1/3 free sheets used".
// Paid users get an empty label.
func UsageLabel(u *User) string {
	if u == nil || u.IsPaid {
		return ""
	}
	return fmt.Sprintf("%d/%d free sheets used", u.FreeWorksheetsUsed, u.MaxFreeWorksheets)
}

// Offer describes the upgrade shown to a blocked user.
type Offer struct {
	Headline string `json:"headline"`
	Price    string `json:"price"`
	Benefit  string `json:"benefit"`
}

// DefaultOffer is the single premium plan.
var DefaultOffer = Offer{
	Headline: "Get unlimited worksheet generation and access to all features",
	Price:    "$9.99/month",
	Benefit:  "Unlimited worksheets",
}

// BlockedNotice is shown when a free user has exhausted their allowance.
const BlockedNotice = "You've used all your free worksheets. Upgrade to generate unlimited worksheets!"
