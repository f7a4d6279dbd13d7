package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/regions/pkg/errors"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		def     PatternDef
		wantErr errors.ErrorCode
	}{
		{
			name: "valid minimal",
			def:  PatternDef{Name: "r", Watch: "/a/**", Emit: "t@v1"},
		},
		{
			name: "valid with all regexes",
			def: PatternDef{
				Name: "r", Watch: "/a/**", Emit: "t@v1",
				Extract: `(\d+)`, Guard: "on", Veto: "off",
			},
		},
		{
			name:    "missing name",
			def:     PatternDef{Watch: "/a/**"},
			wantErr: errors.ErrRuleInvalid,
		},
		{
			name:    "missing watch",
			def:     PatternDef{Name: "r"},
			wantErr: errors.ErrRuleInvalid,
		},
		{
			name:    "malformed extract",
			def:     PatternDef{Name: "r", Watch: "/a", Extract: `[bad`},
			wantErr: errors.ErrPatternInvalid,
		},
		{
			name:    "malformed guard",
			def:     PatternDef{Name: "r", Watch: "/a", Guard: `(`},
			wantErr: errors.ErrPatternInvalid,
		},
		{
			name:    "malformed veto",
			def:     PatternDef{Name: "r", Watch: "/a", Veto: `)`},
			wantErr: errors.ErrPatternInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, err := Compile(tt.def)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.def, cp.Def)
		})
	}
}

func TestApplyPattern(t *testing.T) {
	cp, err := Compile(PatternDef{
		Name:     "audit-users",
		Watch:    "/users/**",
		Emit:     "audit@v1",
		EmitPath: "/audit/${path.1}",
		Template: map[string]interface{}{"user_id": "${path.1}"},
	})
	require.NoError(t, err)

	doc := Document{Key: "/users/123", Type: "user@v1", Data: map[string]interface{}{}}

	reaction, ok := ApplyPattern(cp, doc)
	require.True(t, ok)
	assert.Equal(t, "/audit/123", reaction.Key)
	assert.Equal(t, "audit@v1", reaction.Type)
	assert.Equal(t, map[string]interface{}{"user_id": "123"}, reaction.Data)
	assert.Equal(t, 1, reaction.Metadata["version"])
	assert.Equal(t, "audit-users", reaction.Metadata["produced_by"])
}

func TestApplyPatternRoute(t *testing.T) {
	cp, err := Compile(PatternDef{Name: "r", Watch: "/users/**", Emit: "t"})
	require.NoError(t, err)

	_, ok := ApplyPattern(cp, Document{Key: "/orders/1"})
	assert.False(t, ok, "key outside the watch glob must not fire")
}

func TestApplyPatternGuardVeto(t *testing.T) {
	guarded, err := Compile(PatternDef{Name: "g", Watch: "/**", Emit: "t", Guard: "admin"})
	require.NoError(t, err)
	vetoed, err := Compile(PatternDef{Name: "v", Watch: "/**", Emit: "t", Veto: "deleted"})
	require.NoError(t, err)

	plain := Document{Key: "/d", Data: "just a user"}
	admin := Document{Key: "/d", Data: "an admin user"}
	deleted := Document{Key: "/d", Data: "deleted record"}

	_, ok := ApplyPattern(guarded, plain)
	assert.False(t, ok, "guard pattern absent from payload")
	_, ok = ApplyPattern(guarded, admin)
	assert.True(t, ok)

	_, ok = ApplyPattern(vetoed, deleted)
	assert.False(t, ok, "veto pattern present in payload")
	_, ok = ApplyPattern(vetoed, plain)
	assert.True(t, ok)
}

func TestApplyPatternExtract(t *testing.T) {
	cp, err := Compile(PatternDef{
		Name:     "r",
		Watch:    "/**",
		Emit:     "t",
		Extract:  `order-(\d+)`,
		EmitPath: "/extracted/${1}",
	})
	require.NoError(t, err)

	reaction, ok := ApplyPattern(cp, Document{Key: "/d", Data: "see order-77 now"})
	require.True(t, ok)
	assert.Equal(t, "/extracted/77", reaction.Key)

	// An extract pattern that matches nothing leaves captures empty but the
	// rule still fires.
	reaction, ok = ApplyPattern(cp, Document{Key: "/d", Data: "no orders"})
	require.True(t, ok)
	assert.Equal(t, "/extracted/", reaction.Key)
}

func TestApplyPatternStructuredPayloadSerialization(t *testing.T) {
	cp, err := Compile(PatternDef{
		Name:  "r",
		Watch: "/**",
		Emit:  "t",
		Guard: `"role":"admin"`,
	})
	require.NoError(t, err)

	// The guard runs against canonical JSON of the structured payload.
	_, ok := ApplyPattern(cp, Document{
		Key:  "/d",
		Data: map[string]interface{}{"role": "admin"},
	})
	assert.True(t, ok)

	_, ok = ApplyPattern(cp, Document{
		Key:  "/d",
		Data: map[string]interface{}{"role": "guest"},
	})
	assert.False(t, ok)
}

func TestApplyPatternInputPlaceholder(t *testing.T) {
	cp, err := Compile(PatternDef{
		Name:     "r",
		Watch:    "/**",
		Emit:     "t",
		EmitPath: "/copy",
		Template: map[string]interface{}{"original": "${input}"},
	})
	require.NoError(t, err)

	reaction, ok := ApplyPattern(cp, Document{Key: "/d", Data: "the payload"})
	require.True(t, ok)
	assert.Equal(t, "the payload", reaction.Data.(map[string]interface{})["original"])
}

func TestReactionIsIndependent(t *testing.T) {
	tmpl := map[string]interface{}{"v": "${path.0}"}
	cp, err := Compile(PatternDef{
		Name: "r", Watch: "/**", Emit: "t", EmitPath: "/out", Template: tmpl,
	})
	require.NoError(t, err)

	reaction, ok := ApplyPattern(cp, Document{Key: "/src", Data: "x"})
	require.True(t, ok)

	// Mutating the reaction must not touch the rule's template.
	reaction.Data.(map[string]interface{})["v"] = "mutated"
	assert.Equal(t, "${path.0}", tmpl["v"])
}
