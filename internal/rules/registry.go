package rules

import (
	"fmt"
	"sort"

	"github.com/gnolang/solint/internal/naming"
)

// Constructor builds a fresh rule instance bound to reporter.
type Constructor func(reporter Reporter, config any) (Rule, error)

var constructors = map[string]Constructor{
	PrivateVarsLeadingUnderscoreLibID:       NewPrivateVarsLeadingUnderscoreLib,
	FuncParamNameTrailingUnderscoreID:       NewFuncParamNameTrailingUnderscore,
	FuncReturnParamNameTrailingUnderscoreID: NewFuncReturnParamNameTrailingUnderscore,
	ScopedVarsLeadingUnderscoreID:           NewScopedVarsLeadingUnderscore,
}

// aliases maps retired rule ids to the rule that replaced them.
var aliases = map[string]string{
	"avoiding-naming-collision": ScopedVarsLeadingUnderscoreID,
}

// IDs returns the ids of all available rules, sorted.
func IDs() []string {
	ids := make([]string, 0, len(constructors))
	for id := range constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Canonical resolves id through the alias table. deprecated is true when
// id is a retired name.
func Canonical(id string) (canonical string, deprecated bool) {
	if target, ok := aliases[id]; ok {
		return target, true
	}
	return id, false
}

// Aliases returns a copy of the retired rule ids and their replacements.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for old, id := range aliases {
		out[old] = id
	}
	return out
}

// New builds the rule named id.
func New(id string, reporter Reporter, config any) (Rule, error) {
	id, _ = Canonical(id)
	ctor, ok := constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown rule %q", ErrConfiguration, id)
	}
	return ctor(reporter, config)
}

func shouldStartWith(name string) string {
	return fmt.Sprintf("'%s' should start with %s", name, naming.Marker)
}

func shouldNotStartWith(name string) string {
	return fmt.Sprintf("'%s' should not start with %s", name, naming.Marker)
}

func shouldEndWith(name string) string {
	return fmt.Sprintf("'%s' should end with %s", name, naming.Marker)
}

func shouldNotEndWith(name string) string {
	return fmt.Sprintf("'%s' should not end with %s", name, naming.Marker)
}
