package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/scheme-recommender/internal/models"
)

var ErrUnknownField = errors.New("unknown profile field")

type leaf func(p *models.Profile) *string

var leaves = map[string]leaf{
	"Objective": func(p *models.Profile) *string { return &p.Objective },

	"Demographics.Age":                    func(p *models.Profile) *string { return &p.Demographics.Age },
	"Demographics.Salary":                 func(p *models.Profile) *string { return &p.Demographics.Salary },
	"Demographics.Gender":                 func(p *models.Profile) *string { return &p.Demographics.Gender },
	"Demographics.Occupation":             func(p *models.Profile) *string { return &p.Demographics.Occupation },
	"Demographics.Category":               func(p *models.Profile) *string { return &p.Demographics.Category },
	"Demographics.Location":               func(p *models.Profile) *string { return &p.Demographics.Location },
	"Demographics.Disabled":               func(p *models.Profile) *string { return &p.Demographics.Disabled },
	"Demographics.CriminalRecords":        func(p *models.Profile) *string { return &p.Demographics.CriminalRecords },
	"Demographics.Education":              func(p *models.Profile) *string { return &p.Demographics.Education },
	"Demographics.Married":                func(p *models.Profile) *string { return &p.Demographics.Married },
	"Demographics.NoOfChildren":           func(p *models.Profile) *string { return &p.Demographics.NoOfChildren },
	"Demographics.NoOfSiblings":           func(p *models.Profile) *string { return &p.Demographics.NoOfSiblings },
	"Demographics.SingleParent":           func(p *models.Profile) *string { return &p.Demographics.SingleParent },
	"Demographics.DependentFamilyMembers": func(p *models.Profile) *string { return &p.Demographics.DependentFamilyMembers },

	"SpecificRequirements.Description":   func(p *models.Profile) *string { return &p.SpecificRequirements.Description },
	"SpecificRequirements.TypeOfBenefit": func(p *models.Profile) *string { return &p.SpecificRequirements.TypeOfBenefit },

	"AdditionalInformation.PreviousBeneficiaryStatus": func(p *models.Profile) *string {
		return &p.AdditionalInformation.PreviousBeneficiaryStatus
	},
}

// Update returns a copy of p with the single leaf identified by path and name
// set to value. p itself is left untouched. Path is empty for top-level
// fields and holds the group name for nested ones.
func Update(p models.Profile, path []string, name, value string) (models.Profile, error) {
	key := FieldKey(path, name)
	get, ok := leaves[key]
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	next := p
	*get(&next) = value
	return next, nil
}

// UpdateKey is Update for a dotted key such as "Demographics.Age".
func UpdateKey(p models.Profile, key, value string) (models.Profile, error) {
	path, name := SplitKey(key)
	return Update(p, path, name, value)
}

// Value reads the leaf at key.
func Value(p models.Profile, key string) (string, bool) {
	get, ok := leaves[key]
	if !ok {
		return "", false
	}
	return *get(&p), true
}

func FieldKey(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}

func SplitKey(key string) ([]string, string) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return nil, key
	}
	return strings.Split(key[:i], "."), key[i+1:]
}
