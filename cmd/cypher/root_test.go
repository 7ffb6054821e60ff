package main

import (
	"reflect"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "none",
			pairs: nil,
			want:  nil,
		},
		{
			name:  "json values",
			pairs: []string{"n=42", "flag=true", "tags=[1,2]"},
			want:  map[string]any{"n": float64(42), "flag": true, "tags": []any{float64(1), float64(2)}},
		},
		{
			name:  "bare string falls back",
			pairs: []string{"name=Alice"},
			want:  map[string]any{"name": "Alice"},
		},
		{
			name:  "value containing equals",
			pairs: []string{"expr=a=b"},
			want:  map[string]any{"expr": "a=b"},
		},
		{
			name:    "missing separator",
			pairs:   []string{"oops"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.pairs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseParams: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseParams(%v) = %v, want %v", tt.pairs, got, tt.want)
			}
		})
	}
}
