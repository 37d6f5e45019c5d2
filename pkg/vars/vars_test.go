package vars

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	vars := map[string]string{
		"base":  "http://x",
		"token": "abc123",
		"empty": "",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single placeholder",
			text: "{{base}}/users",
			want: "http://x/users",
		},
		{
			name: "multiple placeholders",
			text: "{{base}}/users?token={{token}}",
			want: "http://x/users?token=abc123",
		},
		{
			name: "missing placeholder left verbatim",
			text: "{{base}}/{{missing}}",
			want: "http://x/{{missing}}",
		},
		{
			name: "whitespace around name ignored",
			text: "{{ base }}/users",
			want: "http://x/users",
		},
		{
			name: "empty value substitutes to empty",
			text: "x{{empty}}y",
			want: "xy",
		},
		{
			name: "no placeholders",
			text: "plain text",
			want: "plain text",
		},
		{
			name: "substituted value is not re-scanned",
			text: "{{nested}}",
			want: "{{base}}",
		},
		{
			name: "repeated placeholder replaced per occurrence",
			text: "{{token}}-{{token}}",
			want: "abc123-abc123",
		},
	}

	vars["nested"] = "{{base}}"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.text, vars)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveJSON(t *testing.T) {
	vars := map[string]string{"tok": "abc"}

	t.Run("valid JSON parses after resolution", func(t *testing.T) {
		got := ResolveJSON(`{"t":"{{tok}}"}`, vars)
		want := map[string]interface{}{"t": "abc"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ResolveJSON() = %#v, want %#v", got, want)
		}
	})

	t.Run("invalid JSON returns resolved string", func(t *testing.T) {
		got := ResolveJSON(`not json {{tok}}`, vars)
		if got != "not json abc" {
			t.Errorf("ResolveJSON() = %#v, want resolved string", got)
		}
	})
}

func TestNames(t *testing.T) {
	got := Names("{{a}}/{{ b }}/{{a}}")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		map[string]string{"a": "1", "b": "2"},
		nil,
		map[string]string{"b": "override", "c": "3"},
	)
	want := map[string]string{"a": "1", "b": "override", "c": "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
}
