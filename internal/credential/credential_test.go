package credential

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	for _, password := range []string{"s3cret", "correct horse battery staple", "", "päss🔑"} {
		cred := Hash(password)
		if !Verify(password, cred) {
			t.Fatalf("Verify(%q, Hash(%q)) = false", password, password)
		}
	}
}

func TestHash_FreshSaltEachCall(t *testing.T) {
	a := Hash("same-password")
	b := Hash("same-password")
	if a == b {
		t.Fatalf("two hashes of the same password are byte-equal: %s", a)
	}
	// Both must still verify.
	if !Verify("same-password", a) || !Verify("same-password", b) {
		t.Fatalf("fresh-salt hashes failed to verify")
	}
}

func TestHash_Format(t *testing.T) {
	cred := Hash("whatever")
	parts := strings.Split(cred, ":")
	if len(parts) != 2 {
		t.Fatalf("expected salt:digest, got %q", cred)
	}
	if parts[0] == "" || parts[1] == "" {
		t.Fatalf("empty part in credential %q", cred)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	cred := Hash("right")
	if Verify("wrong", cred) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, cred := range []string{
		"",
		"not-a-valid-format",
		"too:many:parts",
		"!!!:QUJD",  // undecodable salt
		"QUJD:!!!",  // undecodable digest
		":",         // empty parts
		"QUJD:QUJD", // digest of the wrong length
	} {
		if Verify("anything", cred) {
			t.Fatalf("malformed credential %q verified", cred)
		}
	}
}
