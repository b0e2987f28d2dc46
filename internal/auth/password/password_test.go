package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "S3cret!pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := Compare(hash, "S3cret!pass"); err != nil {
		t.Errorf("Compare rejected the right password: %v", err)
	}
	if err := Compare(hash, "wrong-password"); err == nil {
		t.Error("Compare accepted the wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of one password must differ")
	}
}
