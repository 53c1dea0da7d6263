// Package os classifies Vagrant boxes into OS families and holds the Docker install steps for each family.
package os

import (
	"fmt"
	"strings"
)

// Family is a known OS family of a Vagrant box.
type Family int

const (
	// FamilyUnknown is returned for boxes that match no rule. It has no install steps.
	FamilyUnknown Family = iota
	FamilyUbuntu
	FamilyLeap
	FamilyMicroOS
	FamilyRocky
)

var familyNames = map[Family]string{
	FamilyUnknown: "unknown",
	FamilyUbuntu:  "ubuntu",
	FamilyLeap:    "leap",
	FamilyMicroOS: "microos",
	FamilyRocky:   "rocky",
}

// String returns the lowercase family name.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily parses a family name as returned by String. Matching is case-insensitive.
func ParseFamily(name string) (Family, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}
	return FamilyUnknown, fmt.Errorf("unknown OS family %q", name)
}

// classifyRule maps any of a set of box substrings to a family.
type classifyRule struct {
	substrings []string
	family     Family
}

// classifyRules are evaluated in order; the first match wins. Matching is case-sensitive,
// so "Leap" matches "opensuse/Leap-15.3.x86_64" but not "leap".
var classifyRules = []classifyRule{
	{[]string{"ubuntu"}, FamilyUbuntu},
	{[]string{"Leap"}, FamilyLeap},
	{[]string{"microos"}, FamilyMicroOS},
	{[]string{"rocky8", "rocky9"}, FamilyRocky},
}

// Classify returns the family of the given box identifier.
func Classify(box string) Family {
	for _, rule := range classifyRules {
		for _, s := range rule.substrings {
			if strings.Contains(box, s) {
				return rule.family
			}
		}
	}
	return FamilyUnknown
}
