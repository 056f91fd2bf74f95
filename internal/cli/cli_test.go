package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"solve":      false,
		"play":       false,
		"trace":      false,
		"bench":      false,
		"serve":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want %v", c.Logger.GetLevel(), LogDebug)
	}
}

func TestTraceTarget(t *testing.T) {
	tests := []struct {
		name       string
		opts       traceOpts
		wantFormat string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "defaults to svg next to input",
			opts:       traceOpts{},
			wantFormat: "svg",
			wantOutput: "puzzle.svg",
		},
		{
			name:       "format from output extension",
			opts:       traceOpts{output: "tree.png"},
			wantFormat: "png",
			wantOutput: "tree.png",
		},
		{
			name:       "explicit format wins over extension",
			opts:       traceOpts{output: "tree.png", format: "dot"},
			wantFormat: "dot",
			wantOutput: "tree.png",
		},
		{
			name:       "explicit format without output",
			opts:       traceOpts{format: "dot"},
			wantFormat: "dot",
			wantOutput: "puzzle.dot",
		},
		{
			name:    "unknown format",
			opts:    traceOpts{format: "gif"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, output, err := traceTarget("puzzle.toml", &tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("traceTarget: %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
			if output != tt.wantOutput {
				t.Errorf("output = %q, want %q", output, tt.wantOutput)
			}
		})
	}
}
