package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Temp-Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Temp-Passw0rd!" {
		t.Fatal("hash equals the plaintext")
	}

	if !CheckPasswordHash("Temp-Passw0rd!", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}
