package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "poker.yaml", "-a", "localhost:50051"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "poker.yaml"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"-config=alt.json", "-i", "3s"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-starting token is not a value",
			args:         []string{"-c", "-config=alt.json"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "-config=alt.json"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/poker.yaml", ConfigFileFlag([]string{"-c", "/etc/poker.yaml"}))
	assert.Equal(t, "/etc/poker.json", ConfigFileFlag([]string{"-config", "/etc/poker.json", "-a", ":1"}))
	assert.Equal(t, "b.json", ConfigFileFlag([]string{"-c", "a.json", "-config=b.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1", "-y", "2"}))
	assert.Empty(t, ConfigFileFlag(nil))
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("poker.yaml"))
	assert.True(t, IsYAML("POKER.YML"))
	assert.False(t, IsYAML("poker.json"))
	assert.False(t, IsYAML(""))
}
