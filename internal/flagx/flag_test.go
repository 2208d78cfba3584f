package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-f", "memos.db", "-a", "localhost:50051"},
			allowed: []string{"-f"},
			want:    []string{"-f", "memos.db"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-t"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-l", "en"},
			allowed: []string{"-c", "-l"},
			want:    []string{"-c", "-l", "en"},
		},
		{
			name:    "repeated flags keep order",
			args:    []string{"-l", "fr", "-l", "en"},
			allowed: []string{"-l"},
			want:    []string{"-l", "fr", "-l", "en"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/etc/voicememo.json", ConfigFilePath([]string{"-c", "/etc/voicememo.json"}))
	assert.Equal(t, "long.json", ConfigFilePath([]string{"-a", ":1", "-config", "long.json"}))
	assert.Equal(t, "2.json", ConfigFilePath([]string{"-c", "1.json", "-config=2.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-x", "1"}))
}

func TestJsonConfigFlags_ReadsProcessArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"voicememo", "-c", "cfg.json"}
	assert.Equal(t, "cfg.json", JsonConfigFlags())
}
