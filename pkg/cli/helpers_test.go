// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
	"github.com/NVIDIA/restaurant-gateway/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
		},
		{
			name:       "upper case is accepted",
			format:     "YAML",
			wantFormat: serializer.FormatYAML,
		},
		{
			name:    "invalid format xml",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	op, ok := gateway.Lookup("orders.update_status")
	if !ok {
		t.Fatal("orders.update_status not registered")
	}

	path, query, err := parseParams(op, []string{"id=42", "status = paid", "empty="})
	if err != nil {
		t.Fatalf("parseParams() error = %v", err)
	}
	if path["id"] != "42" {
		t.Errorf("path[id] = %q, want 42", path["id"])
	}
	if query["status"] != "paid" {
		t.Errorf("query[status] = %q, want paid", query["status"])
	}
	if v, ok := query["empty"]; !ok || v != "" {
		t.Errorf("query[empty] = %q, %v; want empty and present", v, ok)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, _, err := parseParams(op, []string{bad}); err == nil {
			t.Errorf("parseParams(%q) expected error", bad)
		}
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	want := []string{"serve", "operations", "resolve", "probe", "synth", "cache", "config"}
	got := make(map[string]*cli.Command, len(root.Commands))
	for _, c := range root.Commands {
		got[c.Name] = c
	}
	for _, n := range want {
		if got[n] == nil {
			t.Errorf("expected command %q to be registered", n)
		}
	}

	flagNames := make(map[string]bool)
	for _, f := range root.Flags {
		for _, n := range f.Names() {
			flagNames[n] = true
		}
	}
	for _, n := range []string{"log-level", "env-file", "upstream-url", "api-prefix", "cache-backend", "cache-dir", "seed"} {
		if !flagNames[n] {
			t.Errorf("expected root flag %q to be defined", n)
		}
	}

	if c := got["cache"]; c != nil && len(c.Commands) != 2 {
		t.Errorf("cache subcommands = %d, want 2", len(c.Commands))
	}
}
