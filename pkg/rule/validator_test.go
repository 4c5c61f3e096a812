package rule_test

import (
	"testing"

	"github.com/yeisme/keepsake/pkg/rule"
)

type wishForm struct {
	Name    string `json:"name"    rule:"nonblank,max=100"`
	Message string `json:"message" rule:"nonblank,max=1000"`
}

func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Fatal("Engine() returned nil")
	}
}

func TestNonBlank(t *testing.T) {
	cases := []struct {
		in   string
		fail bool
	}{
		{"Aunt Sue", false},
		{"  x  ", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
	}

	for _, tc := range cases {
		err := rule.ValidateVar(tc.in, "nonblank")
		if (err != nil) != tc.fail {
			t.Errorf("nonblank(%q) err=%v, want fail=%v", tc.in, err, tc.fail)
		}
	}
}

func TestValidateStructMessage(t *testing.T) {
	if err := rule.ValidateStruct(wishForm{Name: "Grandma", Message: "Happy birthday"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	err := rule.ValidateStruct(wishForm{Name: "  ", Message: "hi"})
	if err == nil {
		t.Fatal("expected error for blank name")
	}

	if got := rule.Message(err); got != "name is required" {
		t.Errorf("Message = %q", got)
	}

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}

	err = rule.ValidateStruct(wishForm{Name: "x", Message: string(long)})
	if got := rule.Message(err); got != "message must be at most 1000 characters" {
		t.Errorf("Message = %q", got)
	}
}

func TestMessageNil(t *testing.T) {
	if got := rule.Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}
