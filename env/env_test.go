package env

import "testing"

func TestOSLookup(t *testing.T) {
	t.Setenv("CONSTENV_TEST_KEY", "value")

	val, ok := OS{}.Lookup("CONSTENV_TEST_KEY")
	if !ok || val != "value" {
		t.Errorf("Lookup = %q, %v", val, ok)
	}

	if _, ok := (OS{}).Lookup("CONSTENV_TEST_MISSING"); ok {
		t.Error("Lookup found an unset key")
	}
}

func TestOSLookupInvalidUTF8(t *testing.T) {
	t.Setenv("CONSTENV_TEST_RAW", "\xff\xfe")

	if _, ok := (OS{}).Lookup("CONSTENV_TEST_RAW"); ok {
		t.Error("Lookup reported an undecodable value as present")
	}
}

func TestBuilder(t *testing.T) {
	p := NewBuilder().
		Set("A", "1").
		Set("B", "2").
		Set("A", "override").
		Build()

	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}

	if val, ok := p.Lookup("A"); !ok || val != "override" {
		t.Errorf("Lookup(A) = %q, %v", val, ok)
	}

	if _, ok := p.Lookup("C"); ok {
		t.Error("Lookup found an unset key")
	}
}

func TestBuildIsolation(t *testing.T) {
	b := NewBuilder().Set("A", "1")
	p := b.Build()

	b.Set("A", "changed").Set("B", "2")

	if val, _ := p.Lookup("A"); val != "1" {
		t.Errorf("Lookup(A) = %q, want the value at build time", val)
	}

	if _, ok := p.Lookup("B"); ok {
		t.Error("entry added after Build leaked into the provider")
	}
}
