package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyResolve(t *testing.T) {
	tests := []struct {
		name   string
		policy OverwritePolicy
		exists bool
		force  bool
		want   ConflictResolution
	}{
		{"overwrite new file", PolicyOverwrite, false, false, Overwrite},
		{"overwrite existing file", PolicyOverwrite, true, false, Overwrite},
		{"preserve new file", PolicyPreserve, false, false, Overwrite},
		{"preserve existing file", PolicyPreserve, true, false, Skip},
		{"preserve existing file with force", PolicyPreserve, true, true, Overwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Resolve(tt.exists, tt.force))
		})
	}
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "overwrite", PolicyOverwrite.String())
	assert.Equal(t, "preserve", PolicyPreserve.String())
	assert.Equal(t, "policy(7)", OverwritePolicy(7).String())
}
