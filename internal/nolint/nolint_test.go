package nolint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	const (
		paramRule  = "func-param-name-trailing-underscore"
		scopedRule = "scoped-vars-leading-underscore"
	)

	tests := []struct {
		name   string
		source string
		line   int
		rule   string
		want   bool
	}{
		{
			name: "next line, all rules",
			source: `contract C {
    // solhint-disable-next-line
    function f(uint a) public {}
}`,
			line: 3, rule: paramRule, want: true,
		},
		{
			name: "next line does not reach further",
			source: `// solhint-disable-next-line
uint a;
uint b;`,
			line: 3, rule: paramRule, want: false,
		},
		{
			name:   "same line, listed rule",
			source: `function f(uint a) public {} // solhint-disable-line func-param-name-trailing-underscore`,
			line:   1, rule: paramRule, want: true,
		},
		{
			name:   "same line, other rule",
			source: `function f(uint a) public {} // solhint-disable-line func-param-name-trailing-underscore`,
			line:   1, rule: scopedRule, want: false,
		},
		{
			name: "rule list with commas",
			source: `/* solhint-disable-next-line scoped-vars-leading-underscore, func-param-name-trailing-underscore */
function f(uint a) public {}`,
			line: 2, rule: scopedRule, want: true,
		},
		{
			name: "block range",
			source: `/* solhint-disable */
uint a;
uint b;
/* solhint-enable */
uint c;`,
			line: 3, rule: paramRule, want: true,
		},
		{
			name: "after block enable",
			source: `/* solhint-disable */
uint a;
/* solhint-enable */
uint c;`,
			line: 4, rule: paramRule, want: false,
		},
		{
			name: "disable never enabled",
			source: `// solhint-disable func-param-name-trailing-underscore
uint a;
uint b;`,
			line: 3, rule: paramRule, want: true,
		},
		{
			name: "enable one rule after disabling all",
			source: `/* solhint-disable */
uint a;
/* solhint-enable func-param-name-trailing-underscore */
uint c;`,
			line: 4, rule: paramRule, want: false,
		},
		{
			name: "others stay disabled",
			source: `/* solhint-disable */
uint a;
/* solhint-enable func-param-name-trailing-underscore */
uint c;`,
			line: 4, rule: scopedRule, want: true,
		},
		{
			name: "deprecated rule name",
			source: `// solhint-disable-next-line avoiding-naming-collision
uint _a;`,
			line: 2, rule: scopedRule, want: true,
		},
		{
			name: "enable by deprecated rule name",
			source: `/* solhint-disable scoped-vars-leading-underscore */
uint _a;
/* solhint-enable avoiding-naming-collision */
uint _b;`,
			line: 4, rule: scopedRule, want: false,
		},
		{
			name:   "directive text outside a comment",
			source: `string s = "solhint-disable-line";`,
			line:   1, rule: paramRule, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := ParseLines(strings.Split(tt.source, "\n"))
			assert.Equal(t, tt.want, m.IsNolint(tt.line, tt.rule))
		})
	}
}

func TestNilManager(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.False(t, m.IsNolint(1, "any"))
}
