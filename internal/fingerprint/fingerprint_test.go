package fingerprint

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"strings"
	"testing"
)

func TestVoucher(t *testing.T) {
	// echo -n "" | sha256sum | xxd -r -p | base64
	if got, want := Voucher(""), "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="; got != want {
		t.Errorf("Voucher(\"\") = %q, want %q", got, want)
	}
	if Voucher("a.b.c") == Voucher("a.b.d") {
		t.Error("different vouchers share a fingerprint")
	}
}

func TestKey(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	fp := Key(&key.PublicKey)
	if parts := strings.Split(fp, ":"); len(parts) != 32 {
		t.Errorf("Key() = %q, want 32 colon separated bytes", fp)
	}
	if fp != Key(&key.PublicKey) {
		t.Error("Key() is not stable")
	}
	if got := Key(nil); got != "(n/a)" {
		t.Errorf("Key(nil) = %q", got)
	}
}
