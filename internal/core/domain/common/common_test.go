package common

import "testing"

func TestNewEmail(t *testing.T) {
	cases := []struct {
		raw      string
		expected Email
	}{
		{raw: "test@test.test", expected: Email("test@test.test")},
		{raw: "  test@test.test ", expected: Email("test@test.test")},
		{raw: "Test@Test.test", expected: Email("Test@Test.test")},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			if actual := NewEmail(c.raw); actual != c.expected {
				t.Fatalf("expected %v, got %v", c.expected, actual)
			}
		})
	}
}

func TestOptionalString(t *testing.T) {
	absent := Optional[string]{}
	if absent.String() != "[-]" {
		t.Fatalf("unexpected string for absent value: %v", absent.String())
	}
	present := NewOptional("value", true)
	if present.String() != "[value]" {
		t.Fatalf("unexpected string for present value: %v", present.String())
	}
}
