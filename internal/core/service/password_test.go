package service

import "testing"

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input must differ (random salt)")
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !VerifyPassword("correct horse", hash) {
		t.Fatalf("verify should accept the original plaintext")
	}
	if VerifyPassword("battery staple", hash) {
		t.Fatalf("verify should reject a different plaintext")
	}
}

func TestVerifyPassword_MalformedArtifactFailsClosed(t *testing.T) {
	for _, artifact := range []string{"", "not-a-bcrypt-hash", "$2a$xx$corrupted"} {
		if VerifyPassword("anything", artifact) {
			t.Fatalf("verify accepted malformed artifact %q", artifact)
		}
	}
}
